// Package merge concatenates the eligible files of a directory tree into a
// single text file, one delimited block per file.
package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrRootNotFound is returned when the root directory does not exist or is
// not a directory.
var ErrRootNotFound = errors.New("root directory not found")

// Options configures a Merger. A relative OutputFile is resolved against Root.
type Options struct {
	Root            string
	OutputFile      string
	ExcludeDirs     []string
	IncludeExts     []string
	ExcludePatterns []string
	DecodeErrors    DecodeMode
}

// Plan is the result of the enumerate, filter and sort phases.
type Plan struct {
	Candidates []Candidate
	Rejected   []Rejected
	WalkErrors []error
}

// Merger runs one merge. It holds no state between runs.
type Merger struct {
	root   string
	output string
	mode   DecodeMode
	filter *Filter
	log    *zap.Logger
}

// New validates opts and returns a Merger. It does not touch the filesystem
// beyond resolving absolute paths.
func New(opts Options, log *zap.Logger) (*Merger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Root == "" {
		return nil, fmt.Errorf("root must not be empty")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", opts.Root, err)
	}

	output := opts.OutputFile
	if output == "" {
		return nil, fmt.Errorf("output file must not be empty")
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}
	output = filepath.Clean(output)

	filter, err := NewFilter(opts.ExcludeDirs, opts.IncludeExts, opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	mode := opts.DecodeErrors
	if mode == "" {
		mode = DecodeReplace
	}

	return &Merger{
		root:   root,
		output: output,
		mode:   mode,
		filter: filter,
		log:    log,
	}, nil
}

// Root returns the absolute root directory.
func (m *Merger) Root() string { return m.root }

// OutputFile returns the absolute output path.
func (m *Merger) OutputFile() string { return m.output }

// Scan enumerates the root, partitions regular files into candidates and
// rejected files, and sorts the candidates. The output file itself is in
// neither list.
func (m *Merger) Scan() (*Plan, error) {
	info, err := os.Stat(m.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, m.root)
	}
	walkRoot, err := filepath.EvalSymlinks(m.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRootNotFound, m.root, err)
	}

	m.log.Info("scanning", zap.String("root", walkRoot))
	entries, walkErrs, err := ScanDirectory(walkRoot)
	if err != nil {
		return nil, err
	}
	for _, werr := range walkErrs {
		m.log.Warn("skipped unreadable entry", zap.Error(werr))
	}

	outputID := resolveOutput(m.output)
	plan := &Plan{WalkErrors: walkErrs}

	for _, e := range entries {
		if !isRegular(e) {
			continue
		}
		resolved, err := filepath.EvalSymlinks(e.Path)
		if err != nil {
			plan.Rejected = append(plan.Rejected, Rejected{Rel: e.Rel, Reason: ReasonUnresolvable})
			continue
		}
		if resolved == outputID {
			m.log.Debug("skipping output file", zap.String("path", e.Rel))
			continue
		}
		if reason, ok := m.filter.Classify(e.Rel); !ok {
			m.log.Debug("rejected", zap.String("path", e.Rel), zap.String("reason", string(reason)))
			plan.Rejected = append(plan.Rejected, Rejected{Rel: e.Rel, Reason: reason})
			continue
		}
		plan.Candidates = append(plan.Candidates, Candidate{Path: e.Path, Rel: e.Rel, Ext: Ext(e.Rel)})
	}

	SortCandidates(plan.Candidates)
	m.log.Info("scan complete",
		zap.Int("candidates", len(plan.Candidates)),
		zap.Int("rejected", len(plan.Rejected)))
	return plan, nil
}

// Write merges the plan's candidates into the output file and returns the
// report. onFile, when non-nil, is called after each candidate is handled.
func (m *Merger) Write(plan *Plan, onFile func(FileResult)) *Report {
	report := &Report{
		Root:       m.root,
		OutputFile: m.output,
		Rejected:   plan.Rejected,
		WalkErrors: plan.WalkErrors,
	}

	m.log.Info("writing", zap.String("output", m.output), zap.Int("files", len(plan.Candidates)))
	results, err := writeOutput(m.output, plan.Candidates, m.mode, func(res FileResult) {
		if res.Err != nil {
			m.log.Warn("read failed", zap.String("path", res.Rel), zap.Error(res.Err))
		}
		if onFile != nil {
			onFile(res)
		}
	})
	report.Results = results
	if err != nil {
		m.log.Error("write failed", zap.Error(err))
		report.WriteErr = err
		report.Results = nil
	}
	return report
}

// Run performs Scan followed by Write. The only returned error is a scan
// failure such as ErrRootNotFound; output failures are on Report.WriteErr.
func (m *Merger) Run() (*Report, error) {
	plan, err := m.Scan()
	if err != nil {
		return nil, err
	}
	return m.Write(plan, nil), nil
}

// isRegular reports whether e is a regular file, following a symlink to
// its target.
func isRegular(e Entry) bool {
	if e.Type.IsRegular() {
		return true
	}
	if e.Type&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(e.Path)
	return err == nil && info.Mode().IsRegular()
}

// resolveOutput returns the canonical form of the output path, which may
// not exist yet.
func resolveOutput(path string) string {
	if p, err := filepath.EvalSymlinks(path); err == nil {
		return p
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}
