package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/tsawler/tablemd"
	"github.com/tsawler/tablemd/format"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// input is one document to convert.
type input struct {
	path string // file path, or stdinPath
	rel  string // output name relative to --out
}

// fileResult is the outcome of converting one input.
type fileResult struct {
	markdown string
	tables   int
	dest     string
	err      error
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		outDir  string
		glob    string
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Replace the tables of HTML documents with Markdown",
		Long: `Convert replaces every <table> element with a Markdown table and writes the
result. Paths may be files or directories; directories are searched with the
--glob pattern. With no paths, or "-", the document is read from stdin.

Without --out the results are written to stdout in argument order. With
--out each input is written to DIR with a .md extension, keeping the layout
of searched directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("glob") {
				a.cfg.Glob = glob
			}
			if inPlace {
				a.cfg.BlankLines = false
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return a.runConvert(args, outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: stdout)")
	cmd.Flags().StringVar(&glob, "glob", "", `Pattern for files inside directories (default "**/*.{html,htm}")`)
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Replace tables exactly, without surrounding blank lines")

	return cmd
}

// runConvert converts every input on a bounded pool of workers. Results go
// to stdout in input order, or to files under outDir.
func (a *app) runConvert(args []string, outDir string) error {
	inputs, err := a.collectInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		a.log.Warn("no HTML files found", "glob", a.cfg.Glob)
		return nil
	}

	workers := a.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(inputs))

	start := time.Now()
	if len(inputs) > 1 {
		a.log.BatchStarted(len(inputs), workers)
	}

	results := make([]fileResult, len(inputs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.convertOne(inputs[i], outDir)
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			a.log.FileError(inputs[i].path, res.err)
			continue
		}
		if outDir == "" {
			if _, err := io.WriteString(a.stdout, res.markdown); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		a.log.FileConverted(inputs[i].path, res.dest, res.tables)
	}

	if len(inputs) > 1 {
		a.log.BatchCompleted(len(inputs)-failed, failed, time.Since(start))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

// convertOne converts a single input and, when outDir is set, writes it.
func (a *app) convertOne(in input, outDir string) fileResult {
	var conv *tablemd.Converter
	if in.path == stdinPath {
		conv = tablemd.FromReader(a.stdin)
	} else {
		conv = tablemd.Open(in.path)
	}

	out, warnings, err := a.converter(conv).Convert()
	if err != nil {
		return fileResult{err: err}
	}
	a.logWarnings(in.path, warnings)

	res := fileResult{markdown: out.Markdown, tables: len(out.Tables), dest: "-"}
	if outDir == "" {
		return res
	}

	res.dest = filepath.Join(outDir, markdownName(in.rel))
	if err := os.MkdirAll(filepath.Dir(res.dest), 0o755); err != nil {
		return fileResult{err: fmt.Errorf("creating output directory: %w", err)}
	}
	if err := os.WriteFile(res.dest, []byte(out.Markdown), 0o644); err != nil {
		return fileResult{err: fmt.Errorf("writing output: %w", err)}
	}
	return res
}

// collectInputs expands the command line into documents. Directories are
// searched with the configured glob; files that are clearly not HTML are
// skipped.
func (a *app) collectInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		return []input{{path: stdinPath, rel: "stdin.html"}}, nil
	}

	var inputs []input
	sawStdin := false
	for _, arg := range args {
		if arg == stdinPath {
			// Standard input can only be read once.
			if sawStdin {
				a.log.Skipped(arg, "standard input already listed")
				continue
			}
			sawStdin = true
			inputs = append(inputs, input{path: stdinPath, rel: "stdin.html"})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		if !info.IsDir() {
			if f := a.detect(arg); f == format.Binary {
				a.log.Skipped(arg, "not an HTML document")
				continue
			}
			inputs = append(inputs, input{path: arg, rel: filepath.Base(arg)})
			continue
		}

		found, err := a.findFiles(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}

	return inputs, nil
}

// findFiles walks root and returns the HTML files whose slash-separated
// path relative to root matches the glob. Hidden files and directories are
// skipped.
func (a *app) findFiles(root string) ([]input, error) {
	var found []input

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		matched, err := doublestar.Match(a.cfg.Glob, filepath.ToSlash(rel))
		if err != nil || !matched {
			return nil
		}

		if f := a.detect(path); !f.IsHTML() && f != format.Unknown {
			a.log.Skipped(path, "not an HTML document")
			return nil
		}

		found = append(found, input{path: path, rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].rel < found[j].rel
	})
	return found, nil
}

// detect inspects the name and first bytes of a file.
func (a *app) detect(path string) format.Format {
	f, err := os.Open(path)
	if err != nil {
		return format.Detect(path)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	return format.DetectFile(path, head[:n])
}

// markdownName replaces the extension of an input name with .md.
func markdownName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".md"
}
