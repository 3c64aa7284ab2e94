package markupguard

import "strings"

// textEscaper deliberately leaves '&' alone so existing entities such as
// &amp; or &lt; survive a second pass unchanged.
var textEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText makes s inert inside HTML text and double-quoted attribute
// values. Unlike html.EscapeString it never rewrites '&'.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
