package merge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestHeaderAndPlaceholder(t *testing.T) {
	assert.Equal(t, "\n===== src/a.py =====\n\n", Header("src/a.py"))
	assert.Equal(t, "[Error reading file: boom]\n\n", Placeholder(errors.New("boom")))
}

func TestCopyCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("line 1\nline 2"), 0o644))

	var buf bytes.Buffer
	res, err := copyCandidate(&buf, Candidate{Path: path, Rel: "a.py", Ext: ".py"}, DecodeReplace, make([]byte, 4))
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Equal(t, int64(13), res.Bytes)
	assert.Equal(t, "\n===== a.py =====\n\nline 1\nline 2\n\n", buf.String())
}

func TestCopyCandidateReadErrorIsRecorded(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	res, err := copyCandidate(&buf, Candidate{Path: dir, Rel: "dir.py", Ext: ".py"}, DecodeReplace, make([]byte, 16))
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Contains(t, buf.String(), "===== dir.py =====\n\n[Error reading file: ")
}

func TestCopyCandidateOutputErrorIsReturned(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	w := &failingWriter{after: 1}
	res, err := copyCandidate(w, Candidate{Path: path, Rel: "a.py", Ext: ".py"}, DecodeReplace, make([]byte, 16))
	require.Error(t, err)
	assert.EqualError(t, err, "disk full")
	assert.NoError(t, res.Err, "output failures are not read failures")
}
