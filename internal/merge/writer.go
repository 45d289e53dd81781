package merge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const chunkSize = 64 * 1024

// FileResult is the outcome of merging one candidate. Err is set when the
// file could not be opened or read; the output then holds a placeholder.
type FileResult struct {
	Rel   string
	Ext   string
	Bytes int64
	Err   error
}

// OK reports whether the file was written in full.
func (r FileResult) OK() bool { return r.Err == nil }

// Header returns the delimiter line written before a file's content.
func Header(rel string) string {
	return "\n===== " + rel + " =====\n\n"
}

// Placeholder returns the text written in place of unreadable content.
func Placeholder(err error) string {
	return fmt.Sprintf("[Error reading file: %v]\n\n", err)
}

// outputError marks a failure writing the merged output, as opposed to
// reading a source file.
type outputError struct{ err error }

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// writeOutput truncates path and writes every candidate into it in order.
// onFile, when non-nil, is called after each candidate. Per-file read errors
// are recorded in the results; only failures on the output itself are
// returned.
func writeOutput(path string, cands []Candidate, mode DecodeMode, onFile func(FileResult)) (results []FileResult, err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	w := bufio.NewWriterSize(f, chunkSize)
	buf := make([]byte, chunkSize)
	results = make([]FileResult, 0, len(cands))

	for _, c := range cands {
		res, werr := copyCandidate(w, c, mode, buf)
		if werr != nil {
			return results, fmt.Errorf("writing output file: %w", werr)
		}
		results = append(results, res)
		if onFile != nil {
			onFile(res)
		}
	}

	if err := w.Flush(); err != nil {
		return results, fmt.Errorf("writing output file: %w", err)
	}
	return results, nil
}

// copyCandidate writes one block: header, decoded content (or placeholder),
// separator. The returned error is non-nil only when writing to w failed.
func copyCandidate(w io.Writer, c Candidate, mode DecodeMode, buf []byte) (FileResult, error) {
	res := FileResult{Rel: c.Rel, Ext: c.Ext}

	if _, err := io.WriteString(w, Header(c.Rel)); err != nil {
		return res, err
	}

	src, err := os.Open(c.Path)
	if err != nil {
		res.Err = err
		_, werr := io.WriteString(w, Placeholder(err))
		return res, werr
	}
	defer src.Close()

	n, err := copyText(w, newTextReader(src, mode), buf)
	res.Bytes = n
	if err != nil {
		var oe *outputError
		if errors.As(err, &oe) {
			return res, oe.err
		}
		res.Err = err
		_, werr := io.WriteString(w, Placeholder(err))
		return res, werr
	}

	_, err = io.WriteString(w, "\n\n")
	return res, err
}

// copyText copies r to w in chunks, wrapping write failures in outputError
// so they can be told apart from read failures.
func copyText(w io.Writer, r io.Reader, buf []byte) (int64, error) {
	var written int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, &outputError{werr}
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
