package merge

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Reason explains why a regular file was not merged.
type Reason string

const (
	ReasonExcludedDir     Reason = "excluded directory"
	ReasonExcludedPattern Reason = "excluded pattern"
	ReasonExtension       Reason = "extension not included"
	ReasonUnresolvable    Reason = "path could not be resolved"
)

// Ext returns the lowercased extension of a file name: the suffix starting
// at the last dot. Names whose only dot is the leading one (".bashrc") and
// names ending in a dot have no extension.
func Ext(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// InExcludedDir reports whether any directory component of the
// slash-separated relative path rel exactly matches a name in excluded.
// The final component is the file name and is not checked.
func InExcludedDir(rel string, excluded map[string]struct{}) bool {
	if len(excluded) == 0 {
		return false
	}
	segs := strings.Split(rel, "/")
	for _, seg := range segs[:len(segs)-1] {
		if _, ok := excluded[seg]; ok {
			return true
		}
	}
	return false
}

// Filter holds the name-based eligibility rules. It never touches the
// filesystem; regular-file and output-path checks happen in the Merger.
type Filter struct {
	excludeDirs map[string]struct{}
	includeExts map[string]struct{}
	patterns    []string
}

// NewFilter builds a Filter. Extensions are matched case-insensitively and
// patterns are doublestar globs against the relative path.
func NewFilter(excludeDirs, includeExts, patterns []string) (*Filter, error) {
	f := &Filter{
		excludeDirs: make(map[string]struct{}, len(excludeDirs)),
		includeExts: make(map[string]struct{}, len(includeExts)),
	}
	for _, d := range excludeDirs {
		f.excludeDirs[d] = struct{}{}
	}
	for _, e := range includeExts {
		e = strings.ToLower(e)
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.includeExts[e] = struct{}{}
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, &PatternError{Pattern: p}
		}
		f.patterns = append(f.patterns, p)
	}
	return f, nil
}

// Classify returns ("", true) when the relative path is eligible for
// merging, or the rejection reason.
func (f *Filter) Classify(rel string) (Reason, bool) {
	if InExcludedDir(rel, f.excludeDirs) {
		return ReasonExcludedDir, false
	}
	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return ReasonExcludedPattern, false
		}
	}
	ext := Ext(rel)
	if ext == "" {
		return ReasonExtension, false
	}
	if _, ok := f.includeExts[ext]; !ok {
		return ReasonExtension, false
	}
	return "", true
}

// PatternError reports a malformed exclude pattern.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q", e.Pattern)
}
