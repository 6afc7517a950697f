package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/tablemd"
	"github.com/tsawler/tablemd/export"
)

func newGridCmd(a *app) *cobra.Command {
	var (
		formatName string
		flags      bool
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "grid [path]",
		Short: "Dump the resolved grid of each table",
		Long: `Grid prints the logical grid built for every table of a document: its size,
header depth, flattened column headers, cell values and the repairs made to
malformed tables. With no path, or "-", the document is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ef, err := export.ParseExportFormat(formatName)
			if err != nil {
				return err
			}

			var conv *tablemd.Converter
			path := stdinPath
			if len(args) == 1 && args[0] != stdinPath {
				path = args[0]
				conv = tablemd.Open(path)
			} else {
				conv = tablemd.FromReader(a.stdin)
			}

			results, warnings, err := a.converter(conv).Tables()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a.logWarnings(path, warnings)

			exported := make([]export.ExportedTable, len(results))
			for i, r := range results {
				exported[i] = export.NewExportedTable(r.Index, r.Span, r.Grid)
			}

			exp := export.NewExporterWithConfig(export.ExportConfig{
				Format:        ef,
				IncludeFlags:  flags,
				PrettyPrint:   pretty,
				IncludeHeader: true,
			})
			return exp.Export(exported, a.stdout)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "yaml", "Output format: yaml, json, jsonl, csv, tsv")
	cmd.Flags().BoolVar(&flags, "flags", false, "Include per-cell header flags")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}
