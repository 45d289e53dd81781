package merge

import (
	"cmp"
	"slices"
	"strings"
)

// Candidate is a file selected for merging.
type Candidate struct {
	Path string // absolute path
	Rel  string // slash-separated path relative to the root
	Ext  string // lowercased extension
}

// SortCandidates orders candidates by extension, then by relative path
// compared case-insensitively. Paths equal under case folding fall back to a
// byte-wise comparison so the order is total.
func SortCandidates(cands []Candidate) {
	slices.SortFunc(cands, compareCandidates)
}

func compareCandidates(a, b Candidate) int {
	if c := cmp.Compare(a.Ext, b.Ext); c != 0 {
		return c
	}
	if c := cmp.Compare(strings.ToLower(a.Rel), strings.ToLower(b.Rel)); c != 0 {
		return c
	}
	return cmp.Compare(a.Rel, b.Rel)
}
