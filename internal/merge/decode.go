package merge

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodeMode selects what happens to byte sequences that are not valid UTF-8.
type DecodeMode string

const (
	// DecodeReplace substitutes U+FFFD for each invalid sequence.
	DecodeReplace DecodeMode = "replace"
	// DecodeIgnore drops invalid sequences. Literal U+FFFD characters in
	// the source are dropped as well.
	DecodeIgnore DecodeMode = "ignore"
)

// ParseDecodeMode returns DecodeReplace for anything other than "ignore".
func ParseDecodeMode(s string) DecodeMode {
	if DecodeMode(s) == DecodeIgnore {
		return DecodeIgnore
	}
	return DecodeReplace
}

// newTextReader wraps r so that reads yield valid UTF-8.
func newTextReader(r io.Reader, mode DecodeMode) io.Reader {
	var t transform.Transformer = unicode.UTF8.NewDecoder()
	if mode == DecodeIgnore {
		t = transform.Chain(t, runes.Remove(runes.Predicate(func(r rune) bool {
			return r == utf8.RuneError
		})))
	}
	return transform.NewReader(r, t)
}
