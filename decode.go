package markupguard

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxDecodePasses bounds how many layers of nested encoding
// (e.g. "&amp;#106;") are peeled off before inspecting a URL.
const maxDecodePasses = 4

// decodeObfuscation undoes character references and backslash escape
// notations that are commonly used to smuggle a scheme past filters.
func decodeObfuscation(s string) string {
	for pass := 0; pass < maxDecodePasses; pass++ {
		next := decodeEscapes(html.UnescapeString(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// decodeEscapes rewrites \uXXXX, \u{X...} and \xHH sequences into the
// characters they denote. Malformed sequences are left as they are.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		r, n := parseEscape(s[i+1:])
		if n == 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteRune(r)
		i += 1 + n
	}
	return b.String()
}

// parseEscape parses the part of an escape after the backslash and
// returns the rune and the number of bytes consumed, or 0 if s does not
// start with a recognised escape.
func parseEscape(s string) (rune, int) {
	switch {
	case strings.HasPrefix(s, "u{"):
		end := strings.IndexByte(s, '}')
		if end < 3 || end > 8 {
			return 0, 0
		}
		return hexRune(s[2:end], end+1)
	case strings.HasPrefix(s, "u") && len(s) >= 5:
		return hexRune(s[1:5], 5)
	case strings.HasPrefix(s, "x") && len(s) >= 3:
		return hexRune(s[1:3], 3)
	}
	return 0, 0
}

func hexRune(digits string, consumed int) (rune, int) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return r, consumed
}
