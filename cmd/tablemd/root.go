package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/tablemd"
	"github.com/tsawler/tablemd/internal/config"
	"github.com/tsawler/tablemd/internal/logger"
	"github.com/tsawler/tablemd/tables"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	configPath  string
	logLevel    string
	separator   string
	anyHeader   bool
	labelEmpty  string
	workers     int
	contentType string

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "tablemd",
		Short: "Convert HTML tables to Markdown",
		Long: `tablemd replaces every <table> in an HTML document with a GitHub-Flavored
Markdown table. Row and column spans are resolved, multi-row headers are
flattened ("Parent > Child") and everything outside tables is kept as is.

Examples:
  tablemd convert page.html                 # write to stdout
  curl -s https://example.com | tablemd convert
  tablemd convert site/ --out md/           # every **/*.{html,htm} under site/
  tablemd grid page.html --format json      # inspect the resolved grids`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/tablemd/tablemd.yaml or ./tablemd.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.separator, "separator", "", `Separator between header levels (default " > ")`)
	flags.BoolVar(&a.anyHeader, "any-header", false, "Treat leading rows with any <th> cell as header rows")
	flags.StringVar(&a.labelEmpty, "label-empty", "", `Label for blank column headers, e.g. "col_%d"`)
	flags.IntVar(&a.workers, "workers", 0, "Concurrent tables and files (default: number of CPUs)")
	flags.StringVar(&a.contentType, "content-type", "", `Charset hint, e.g. "text/html; charset=shift_jis"`)

	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newGridCmd(a))

	return rootCmd
}

// setup loads the configuration, applies flag overrides and creates the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("separator") {
		cfg.Separator = a.separator
	}
	if flags.Changed("any-header") {
		if a.anyHeader {
			cfg.HeaderMode = tables.HeaderAnyCell.String()
		} else {
			cfg.HeaderMode = tables.HeaderAllCells.String()
		}
	}
	if flags.Changed("label-empty") {
		cfg.EmptyHeaderLabel = a.labelEmpty
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.log = logger.NewWithLevel(a.stderr, cfg.Level())
	a.log.ConfigLoaded(cfg.File, cfg.Workers, cfg.HeaderMode)
	return nil
}

// converter applies the configuration to a Converter.
func (a *app) converter(c *tablemd.Converter) *tablemd.Converter {
	c = c.Separator(a.cfg.Separator).
		LabelEmptyHeaders(a.cfg.EmptyHeaderLabel).
		Workers(a.cfg.Workers).
		ContentType(a.contentType)
	if a.cfg.HeaderModeValue() == tables.HeaderAnyCell {
		c = c.AnyHeaderRows()
	}
	if !a.cfg.BlankLines {
		c = c.InPlace()
	}
	return c
}

// logWarnings reports conversion warnings for one input.
func (a *app) logWarnings(file string, warnings []tablemd.Warning) {
	for _, w := range warnings {
		a.log.TableWarning(file, w.String())
	}
}
