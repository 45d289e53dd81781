package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rels(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Rel
	}
	return out
}

func cand(rel string) Candidate {
	return Candidate{Path: "/root/" + rel, Rel: rel, Ext: Ext(rel)}
}

func TestSortCandidates(t *testing.T) {
	cands := []Candidate{
		cand("z/a.py"),
		cand("a.py"),
		cand("B.js"),
		cand("a.js"),
		cand("Z.PY"),
		cand("lib/util.css"),
	}
	SortCandidates(cands)

	assert.Equal(t, []string{
		"lib/util.css",
		"a.js",
		"B.js",
		"a.py",
		"Z.PY",
		"z/a.py",
	}, rels(cands))
}

func TestSortCandidatesIndependentOfInputOrder(t *testing.T) {
	a := []Candidate{cand("b.py"), cand("A.py"), cand("a.py"), cand("c.go")}
	b := []Candidate{cand("c.go"), cand("a.py"), cand("b.py"), cand("A.py")}
	SortCandidates(a)
	SortCandidates(b)

	assert.Equal(t, rels(a), rels(b))
	assert.Equal(t, []string{"c.go", "A.py", "a.py", "b.py"}, rels(a))
}
