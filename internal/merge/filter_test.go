package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.py", ".py"},
		{"x.PY", ".py"},
		{"dir/archive.tar.gz", ".gz"},
		{".bashrc", ""},
		{"Makefile", ""},
		{"trailing.", ""},
		{"src/.hidden.js", ".js"},
		{"some.dir/noext", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ext(tt.name), tt.name)
	}
}

func TestInExcludedDir(t *testing.T) {
	excluded := map[string]struct{}{"venv": {}, "node_modules": {}}

	tests := []struct {
		rel  string
		want bool
	}{
		{"a.py", false},
		{"venv/c.py", true},
		{"src/pkg/node_modules/lib/index.js", true},
		{"venvs/c.py", false},
		{"src/venv.py", false},
		{"venv", false},
		{"Venv/c.py", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InExcludedDir(tt.rel, excluded), tt.rel)
	}

	assert.False(t, InExcludedDir("venv/c.py", nil))
}

func TestFilterClassify(t *testing.T) {
	f, err := NewFilter([]string{"venv"}, []string{".py", "JS"}, []string{"**/*.min.js"})
	require.NoError(t, err)

	tests := []struct {
		rel    string
		ok     bool
		reason Reason
	}{
		{"a.py", true, ""},
		{"b.JS", true, ""},
		{"README.md", false, ReasonExtension},
		{"Makefile", false, ReasonExtension},
		{"venv/c.py", false, ReasonExcludedDir},
		{"static/app.min.js", false, ReasonExcludedPattern},
	}
	for _, tt := range tests {
		reason, ok := f.Classify(tt.rel)
		assert.Equal(t, tt.ok, ok, tt.rel)
		assert.Equal(t, tt.reason, reason, tt.rel)
	}
}

func TestNewFilterRejectsBadPattern(t *testing.T) {
	_, err := NewFilter(nil, []string{".py"}, []string{"src/[a-"})
	var pe *PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "src/[a-", pe.Pattern)
}
