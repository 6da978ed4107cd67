package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unifylabs/unify/format"
	"github.com/unifylabs/unify/formatter"
)

var (
	inPlace   bool
	checkOnly bool
	recursive bool
	toStdout  bool
	quotePref string
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Normalize quote characters in the given files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths, or - for standard input")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cfg, err := resolveConfig()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		if len(args) == 1 && args[0] == "-" {
			runFormatStdin(cfg)
			return
		}

		runFormatFiles(ctx, args, cfg)
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Make changes to files instead of printing diffs")
	fmtCmd.Flags().BoolVarP(&checkOnly, "check-only", "c", false, "Exit with a status code of 1 if any changes are still needed")
	fmtCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Drill down directories recursively")
	fmtCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write formatted source to standard output instead of printing a diff")
	fmtCmd.Flags().StringVarP(&quotePref, "quote", "q", "", `Preferred quote character, ' or " (overrides the configuration file)`)
}

// resolveConfig layers the quote flag over the configuration file over the
// built-in defaults. A missing default configuration file is not an error;
// a missing file passed via --config is.
func resolveConfig() (format.Config, error) {
	path := cfgFile
	if path == "" {
		path = format.DefaultConfigName
	}

	cfg, err := format.LoadConfig(path)
	if err != nil {
		if !os.IsNotExist(err) || cfgFile != "" {
			return format.Config{}, err
		}
		cfg = format.DefaultConfig()
	}

	if quotePref != "" {
		cfg.Quote = quotePref
		if err := cfg.Validate(); err != nil {
			return format.Config{}, err
		}
	}

	return cfg, nil
}

func runFormatFiles(ctx context.Context, paths []string, cfg format.Config) {
	var procLogger *zap.Logger
	if verbose {
		procLogger = logger
	}

	results, err := format.ProcessPaths(ctx, procLogger, paths, cfg, recursive)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	var failed, changed bool
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "error processing %s: %v\n", r.Path, r.Err)
			failed = true
			continue
		}
		if r.Changed() {
			changed = true
		}

		switch {
		case inPlace:
			if err := format.Apply(r); err != nil {
				fmt.Fprintf(os.Stderr, "error writing %s: %v\n", r.Path, err)
				failed = true
				continue
			}
			if r.Changed() {
				fmt.Print(formatter.FormatChanges(r.Changes))
			}
		case toStdout:
			out, err := r.Output()
			if err != nil {
				fmt.Fprintf(os.Stderr, "error encoding %s: %v\n", r.Path, err)
				failed = true
				continue
			}
			os.Stdout.Write(out)
		default:
			if err := printDiff(os.Stdout, r); err != nil {
				fmt.Fprintf(os.Stderr, "error diffing %s: %v\n", r.Path, err)
				failed = true
			}
		}
	}

	// --in-place wins over --check-only; applied changes are not failures.
	if failed || (checkOnly && !inPlace && changed) {
		os.Exit(1)
	}
}

func runFormatStdin(cfg format.Config) {
	r := format.Reader("-", os.Stdin, cfg)
	if r.Err != nil {
		fmt.Fprintf(os.Stderr, "error processing standard input: %v\n", r.Err)
		os.Exit(1)
	}

	if checkOnly && !inPlace {
		if err := printDiff(os.Stdout, r); err != nil {
			fmt.Fprintf(os.Stderr, "error diffing standard input: %v\n", err)
			os.Exit(1)
		}
		if r.Changed() {
			os.Exit(1)
		}
		return
	}

	out, err := r.Output()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding standard input: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func printDiff(w io.Writer, r *format.Result) error {
	diff, err := formatter.Diff(r)
	if err != nil {
		return err
	}
	if diff == "" {
		return nil
	}
	fmt.Fprint(w, formatter.Colorize(diff))
	return nil
}
