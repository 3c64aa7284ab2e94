package markupguard

import (
	"regexp"
	"strings"
	"unicode"
)

// schemeRe matches a URL scheme as defined by RFC 3986, without the colon.
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)

// allowedSchemes lists the only schemes a link target may carry.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// linkAttributes are attribute names whose values are URLs and therefore
// go through SanitizeURL regardless of the tag they appear on.
var linkAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"cite":       true,
	"poster":     true,
	"background": true,
	"xlink:href": true,
}

// SanitizeURL validates a link target. It returns the value to write and
// true if the URL is acceptable, or "" and false if the attribute must be
// dropped. Accepted values are http, https and scheme-less (relative,
// fragment, query or protocol-relative) URLs. The empty string is always
// accepted.
//
// Character references and \u / \x escapes are decoded before the scheme
// is inspected, so "jav&#x61;script:" is recognised as javascript:.
func SanitizeURL(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}

	decoded := decodeObfuscation(raw)
	if hasControlChar(decoded) {
		return "", false
	}

	scheme, ok := leadingScheme(decoded)
	if !ok {
		return "", false
	}
	if scheme == "" {
		return raw, true
	}
	if !allowedSchemes[scheme] {
		return "", false
	}
	return strings.ReplaceAll(raw, " ", "%20"), true
}

// leadingScheme returns the lowercased scheme of u, or "" when u is
// relative. ok is false when the prefix before the colon is a broken-up
// scheme such as "java script".
func leadingScheme(u string) (scheme string, ok bool) {
	colon := strings.IndexByte(u, ':')
	if colon < 0 {
		return "", true
	}
	// A colon after the first path, query or fragment delimiter belongs
	// to the relative reference, e.g. "/wiki/Help:Contents".
	if delim := strings.IndexAny(u, "/?#"); delim >= 0 && delim < colon {
		return "", true
	}

	prefix := u[:colon]
	if strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return "", false
	}
	if !schemeRe.MatchString(prefix) {
		return "", true
	}
	return strings.ToLower(prefix), true
}

func hasControlChar(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
