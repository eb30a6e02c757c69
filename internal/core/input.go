package core

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewInputReader wraps a CSV source so the parser sees clean UTF-8:
// a leading byte order mark (common in Windows exports) is dropped and
// invalid byte sequences are replaced with U+FFFD.
func NewInputReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}
