package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"

	"github.com/walkerscm/codemerge/internal/merge"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func printBanner(w io.Writer, m *merge.Merger, excludeDirs, includeExts []string) {
	fmt.Fprintln(w, "Starting file merge...")
	fmt.Fprintf(w, "Source directory: %s\n", m.Root())
	fmt.Fprintf(w, "Output file:      %s\n", m.OutputFile())
	fmt.Fprintf(w, "Ignored dirs:     %v\n", sorted(excludeDirs))
	fmt.Fprintf(w, "Including types:  %v\n", sorted(includeExts))
}

func printSummary(w io.Writer, r *merge.Report, sampleSize int) {
	if r.WriteErr != nil {
		errColor.Fprintf(w, "\nError writing output file: %v\n", r.WriteErr)
	} else {
		okColor.Fprintf(w, "\nSuccess! Wrote %d files to %s\n", r.Written(), r.OutputFile)
		if exts := r.Extensions(); len(exts) > 0 {
			counts := r.ByExtension()
			fmt.Fprintln(w, "By type:")
			for _, ext := range exts {
				label := ext
				if label == "" {
					label = "(no ext)"
				}
				fmt.Fprintf(w, "  %s: %d\n", label, counts[ext])
			}
		}
		if failed := r.ReadErrors(); len(failed) > 0 {
			errColor.Fprintf(w, "Unreadable (placeholder written): %d files\n", len(failed))
			for _, res := range failed {
				fmt.Fprintf(w, "  - %s: %v\n", res.Rel, res.Err)
			}
		}
	}

	warnColor.Fprintf(w, "\nRejected (not merged): %d files\n", len(r.Rejected))
	if len(r.Rejected) > 0 {
		sample, more := r.RejectedSample(sampleSize)
		if len(sample) > 0 {
			fmt.Fprintf(w, "First %d rejected:\n", len(sample))
			for _, rj := range sample {
				fmt.Fprintf(w, "  - %s (%s)\n", rj.Rel, rj.Reason)
			}
		}
		if more > 0 {
			fmt.Fprintf(w, "  ...and %d more\n", more)
		}
	}

	if len(r.WalkErrors) > 0 {
		warnColor.Fprintf(w, "\nSkipped %d unreadable entries during scan\n", len(r.WalkErrors))
	}

	fmt.Fprintln(w, "\nDone!")
}

func printJSONSummary(w io.Writer, r *merge.Report, sampleSize int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Summary(sampleSize)); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return nil
}

func sorted(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	return out
}
