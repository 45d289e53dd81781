package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/walkerscm/codemerge/internal/merge"
)

func writeMarkdown(path string, r *merge.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating markdown file: %w", err)
	}
	defer f.Close()

	status := "success"
	if r.WriteErr != nil {
		status = "failed: " + r.WriteErr.Error()
	}

	fmt.Fprintf(f, "# Merge Report\n\n")
	fmt.Fprintf(f, "**Root:** `%s`\n", r.Root)
	fmt.Fprintf(f, "**Output:** `%s`\n", r.OutputFile)
	fmt.Fprintf(f, "**Generated:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "**Status:** %s\n", status)
	fmt.Fprintf(f, "**Files Written:** %d\n", r.Written())
	fmt.Fprintf(f, "**Files Rejected:** %d\n\n", len(r.Rejected))

	counts := r.ByExtension()
	fmt.Fprintf(f, "| Extension | Files |\n")
	fmt.Fprintf(f, "|-----------|------:|\n")
	for _, ext := range r.Extensions() {
		fmt.Fprintf(f, "| `%s` | %d |\n", ext, counts[ext])
	}

	if failed := r.ReadErrors(); len(failed) > 0 {
		fmt.Fprintf(f, "\n## Read Errors\n\n")
		for _, res := range failed {
			fmt.Fprintf(f, "- `%s`: %v\n", res.Rel, res.Err)
		}
	}

	if len(r.Rejected) > 0 {
		fmt.Fprintf(f, "\n## Rejected\n\n")
		fmt.Fprintf(f, "| # | File | Reason |\n")
		fmt.Fprintf(f, "|---|------|--------|\n")
		for i, rj := range r.Rejected {
			fmt.Fprintf(f, "| %d | `%s` | %s |\n", i+1, rj.Rel, rj.Reason)
		}
	}

	return f.Close()
}
