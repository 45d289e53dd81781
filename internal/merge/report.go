package merge

import (
	"sort"
)

// Rejected is a regular file under the root that was not merged.
type Rejected struct {
	Rel    string
	Reason Reason
}

// Report summarizes one run. All counts are derived from Results and
// Rejected.
type Report struct {
	Root       string
	OutputFile string
	Results    []FileResult
	Rejected   []Rejected
	WalkErrors []error
	// WriteErr is set when the output file could not be created or written.
	WriteErr error
}

// Written returns the number of files copied without a read error.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// ByExtension counts written files per extension.
func (r *Report) ByExtension() map[string]int {
	counts := make(map[string]int)
	for _, res := range r.Results {
		if res.OK() {
			counts[res.Ext]++
		}
	}
	return counts
}

// Extensions returns the keys of ByExtension in ascending order.
func (r *Report) Extensions() []string {
	counts := r.ByExtension()
	exts := make([]string, 0, len(counts))
	for e := range counts {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// ReadErrors returns the results whose content was replaced by a placeholder.
func (r *Report) ReadErrors() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// RejectedSample returns at most n rejected files and how many were left out.
func (r *Report) RejectedSample(n int) ([]Rejected, int) {
	if n < 0 {
		n = 0
	}
	if len(r.Rejected) <= n {
		return r.Rejected, 0
	}
	return r.Rejected[:n], len(r.Rejected) - n
}

// Summary is the machine-readable form of a Report.
type Summary struct {
	Root           string         `json:"root"`
	OutputFile     string         `json:"output_file"`
	Success        bool           `json:"success"`
	WriteError     string         `json:"write_error,omitempty"`
	Written        int            `json:"written"`
	ByExtension    map[string]int `json:"by_extension"`
	ReadErrors     []FileError    `json:"read_errors,omitempty"`
	RejectedCount  int            `json:"rejected_count"`
	RejectedSample []RejectedFile `json:"rejected_sample"`
	RejectedMore   int            `json:"rejected_more"`
}

type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type RejectedFile struct {
	Path   string `json:"path"`
	Reason Reason `json:"reason"`
}

// Summary builds a Summary with a rejected sample of at most sampleSize.
func (r *Report) Summary(sampleSize int) Summary {
	s := Summary{
		Root:           r.Root,
		OutputFile:     r.OutputFile,
		Success:        r.WriteErr == nil,
		Written:        r.Written(),
		ByExtension:    r.ByExtension(),
		RejectedCount:  len(r.Rejected),
		RejectedSample: []RejectedFile{},
	}
	if r.WriteErr != nil {
		s.WriteError = r.WriteErr.Error()
	}
	for _, res := range r.ReadErrors() {
		s.ReadErrors = append(s.ReadErrors, FileError{Path: res.Rel, Error: res.Err.Error()})
	}
	sample, more := r.RejectedSample(sampleSize)
	for _, rj := range sample {
		s.RejectedSample = append(s.RejectedSample, RejectedFile{Path: rj.Rel, Reason: rj.Reason})
	}
	s.RejectedMore = more
	return s
}
