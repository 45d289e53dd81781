package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walkerscm/codemerge/internal/merge"
)

func newMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [root]",
		Short: "Merge matching files under root into a single text file",
		Long: `Recursively scan root (default: current directory), keep files with an
included extension that are not under an excluded directory, sort them by
extension and then path, and write them to the output file, replacing it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMerge(cmd, args)
		},
	}

	cmd.Flags().String("root", "", "directory to scan (overrides config root)")
	cmd.Flags().String("output-file", "", "merged output path, relative to root unless absolute")
	cmd.Flags().StringSlice("exclude-dir", nil, "directory names to exclude (replaces configured list)")
	cmd.Flags().StringSlice("include-ext", nil, "file extensions to include (replaces configured list)")
	cmd.Flags().StringSlice("exclude-pattern", nil, "glob patterns on relative paths to exclude, e.g. '**/*.min.js'")
	cmd.Flags().String("decode-errors", "", "invalid UTF-8 handling (replace, ignore)")
	cmd.Flags().Int("rejected-sample", -1, "number of rejected files to list in the summary")
	cmd.Flags().String("report", "", "also write a markdown run report to this path")
	cmd.Flags().BoolP("quiet", "q", false, "do not draw a progress bar")
	return cmd
}

func (a *app) runMerge(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	flags := cmd.Flags()

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("output-file") {
		cfg.OutputFile, _ = flags.GetString("output-file")
	}
	if flags.Changed("exclude-dir") {
		cfg.ExcludeDirs, _ = flags.GetStringSlice("exclude-dir")
	}
	if flags.Changed("include-ext") {
		cfg.IncludeExts, _ = flags.GetStringSlice("include-ext")
	}
	if flags.Changed("exclude-pattern") {
		cfg.ExcludePatterns, _ = flags.GetStringSlice("exclude-pattern")
	}
	if flags.Changed("decode-errors") {
		cfg.DecodeErrors, _ = flags.GetString("decode-errors")
	}
	if flags.Changed("rejected-sample") {
		cfg.RejectedSample, _ = flags.GetInt("rejected-sample")
	}
	if flags.Changed("report") {
		cfg.Report, _ = flags.GetString("report")
	}
	quiet, _ := flags.GetBool("quiet")

	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := merge.New(merge.Options{
		Root:            cfg.Root,
		OutputFile:      cfg.OutputFile,
		ExcludeDirs:     cfg.ExcludeDirs,
		IncludeExts:     cfg.IncludeExts,
		ExcludePatterns: cfg.ExcludePatterns,
		DecodeErrors:    merge.ParseDecodeMode(cfg.DecodeErrors),
	}, a.log)
	if err != nil {
		return err
	}

	// In json mode stdout carries only the summary object.
	out := cmd.OutOrStdout()
	banner := out
	if cfg.Output == "json" {
		banner = cmd.ErrOrStderr()
	}
	printBanner(banner, m, cfg.ExcludeDirs, cfg.IncludeExts)

	plan, err := m.Scan()
	if err != nil {
		return err
	}

	bar := newProgressBar(cmd.ErrOrStderr(), len(plan.Candidates), !quiet)
	report := m.Write(plan, func(merge.FileResult) {
		bar.Add(1) //nolint:errcheck
	})
	bar.Finish() //nolint:errcheck

	if cfg.Output == "json" {
		if err := printJSONSummary(out, report, cfg.RejectedSample); err != nil {
			return err
		}
	} else {
		printSummary(out, report, cfg.RejectedSample)
	}

	if cfg.Report != "" {
		if err := writeMarkdown(cfg.Report, report); err != nil {
			return err
		}
		if cfg.Output != "json" {
			fmt.Fprintf(out, "Markdown report written to %s\n", cfg.Report)
		}
	}

	if report.WriteErr != nil {
		return fmt.Errorf("merge failed: %w", report.WriteErr)
	}
	return nil
}
