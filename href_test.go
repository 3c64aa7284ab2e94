package markupguard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/markupguard"
)

func TestSanitizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "empty", raw: "", want: "", ok: true},
		{name: "http", raw: "http://example.com", want: "http://example.com", ok: true},
		{name: "https upper case scheme", raw: "HTTPS://example.com", want: "HTTPS://example.com", ok: true},
		{name: "spaces encoded in absolute url", raw: "https://example.com/a b", want: "https://example.com/a%20b", ok: true},
		{name: "spaces kept in relative url", raw: "/a b", want: "/a b", ok: true},
		{name: "protocol relative", raw: "//example.com/x", want: "//example.com/x", ok: true},
		{name: "fragment", raw: "#top", want: "#top", ok: true},
		{name: "query", raw: "?q=a:b", want: "?q=a:b", ok: true},
		{name: "colon after path delimiter", raw: "/wiki/Help:Contents", want: "/wiki/Help:Contents", ok: true},
		{name: "relative file", raw: "page.html", want: "page.html", ok: true},
		{name: "not a scheme", raw: "1abc:foo", want: "1abc:foo", ok: true},
		{name: "javascript", raw: "javascript:alert(1)", ok: false},
		{name: "javascript mixed case", raw: "JaVaScRiPt:alert(1)", ok: false},
		{name: "hex reference", raw: "jav&#x61;script:alert(1)", ok: false},
		{name: "decimal reference", raw: "jav&#97;script:alert(1)", ok: false},
		{name: "reference without semicolon", raw: "&#106avascript:alert(1)", ok: false},
		{name: "named colon entity", raw: "javascript&colon;alert(1)", ok: false},
		{name: "double encoded", raw: "&amp;#106;avascript:alert(1)", ok: false},
		{name: "unicode escape", raw: `java\u0073cript:alert(1)`, ok: false},
		{name: "braced unicode escape", raw: `\u{6a}avascript:alert(1)`, ok: false},
		{name: "hex escape", raw: `\x6aavascript:alert(1)`, ok: false},
		{name: "tab inside scheme", raw: "java\tscript:alert(1)", ok: false},
		{name: "encoded newline", raw: "java&#x0a;script:alert(1)", ok: false},
		{name: "delete character", raw: "http://example.com/\x7f", ok: false},
		{name: "space inside scheme", raw: "java script:alert(1)", ok: false},
		{name: "leading space", raw: " javascript:alert(1)", ok: false},
		{name: "vbscript", raw: "vbscript:msgbox(1)", ok: false},
		{name: "data", raw: "data:text/html;base64,PHNjcmlwdD4=", ok: false},
		{name: "mailto", raw: "mailto:a@example.com", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := markupguard.SanitizeURL(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;it&#39;s&lt;/a&gt;", markupguard.EscapeText(`<a href="x">it's</a>`))
	assert.Equal(t, "Tom &amp; Jerry & co", markupguard.EscapeText("Tom &amp; Jerry & co"))
}
