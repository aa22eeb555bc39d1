package server

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFilename folds a filename to a plain-ASCII form usable inside a
// quoted Content-Disposition parameter: diacritics stripped, anything
// else non-ASCII or quote-breaking replaced with underscores.
func asciiFilename(name string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r > unicode.MaxASCII, r < 0x20, r == '"', r == '\\', r == '/':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		out = "download"
	}
	return out
}

// contentDisposition builds an attachment header with an ASCII fallback
// and an RFC 5987 encoded form for the original name.
func contentDisposition(filename string) string {
	ascii := asciiFilename(filename)
	if ascii == filename {
		return fmt.Sprintf("attachment; filename=%q", ascii)
	}
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		ascii, url.PathEscape(filename))
}
