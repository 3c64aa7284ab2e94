package markupguard_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/markupguard"
)

var propertyCorpus = []string{
	"",
	"<div>abc</div>",
	"<script>alert(1)</script>",
	`<b title='<script>'>x</b>`,
	`<b title="<script>">x</b>`,
	`<b title=<script>>x</b>`,
	`<b <script>>x</b>`,
	`<b x<script>y>z</b>`,
	`<a href="javascript:alert(1)" onclick=alert(1)>x</a>`,
	`<a href=" javascript:alert(1)">x</a>`,
	`<a href="jav&#x61;script:x">x</a>`,
	`<a href='data:text/html,<script>alert(1)</script>'>x</a>`,
	`<a href="https://ok.example/a b" target=_self>x</a>`,
	"<<b>>",
	"<b",
	"</b",
	`<b title="`,
	"<svg/onload=alert(1)>",
	"<img src=x onerror=alert(1)//>",
	"<!--<script>-->",
	"<i>nested <b>tags</b></i>",
	"<BR/><Br /><bR>",
	"see https://example.com/<script>x</script>",
	`https://x.example/"onmouseover="alert(1)`,
}

// tagOpenRe matches a raw '<' that starts or ends an element.
var tagOpenRe = regexp.MustCompile(`</?([a-zA-Z][^\t\n\f\r />]*)`)

func closurePolicy() *markupguard.Policy {
	return &markupguard.Policy{AllowedTags: []markupguard.TagRule{
		{TagName: "b"},
		{TagName: "br"},
		linkRule(),
	}}
}

// assertClosed checks that every raw tag in out names an allowed tag.
func assertClosed(t testing.TB, input, out string, allowed map[string]bool) {
	t.Helper()
	for _, m := range tagOpenRe.FindAllStringSubmatch(out, -1) {
		require.True(t, allowed[strings.ToLower(m[1])],
			"disallowed tag %q in output %q for input %q", m[1], out, input)
	}
}

func closurePolicyWithOptions() *markupguard.Policy {
	p := closurePolicy()
	p.StripDisallowed = true
	p.Linkify = true
	return p
}

func TestProperty_AllowListClosure(t *testing.T) {
	t.Parallel()

	allowed := map[string]bool{"b": true, "br": true, "a": true}
	for _, p := range []*markupguard.Policy{closurePolicy(), closurePolicyWithOptions()} {
		s := markupguard.New(p)
		for _, input := range propertyCorpus {
			assertClosed(t, input, s.Sanitize(input), allowed)
		}
	}
}

func TestProperty_NoPolicyLeavesNoRawTags(t *testing.T) {
	t.Parallel()

	for _, input := range propertyCorpus {
		out := markupguard.Sanitize(input, nil)
		assert.NotContains(t, out, "<", "input %q", input)
		assert.NotContains(t, out, ">", "input %q", input)
	}
}

func TestProperty_EscapingIsStable(t *testing.T) {
	t.Parallel()

	for _, input := range propertyCorpus {
		once := markupguard.Sanitize(input, nil)
		assert.Equal(t, once, markupguard.Sanitize(once, nil), "input %q", input)
	}
}

func TestProperty_HrefSchemeGate(t *testing.T) {
	t.Parallel()

	s := markupguard.New(closurePolicy())
	for _, input := range propertyCorpus {
		out := s.Sanitize(input)
		lower := strings.ToLower(out)
		for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
			assert.NotContains(t, lower, `href="`+scheme, "input %q", input)
			assert.NotContains(t, lower, `href='`+scheme, "input %q", input)
		}
	}
}

func TestProperty_FilterPurity(t *testing.T) {
	t.Parallel()

	s := markupguard.New(&markupguard.Policy{AllowedTags: []markupguard.TagRule{{
		TagName:     "p",
		OnAttribute: func(name, _ string) bool { return !strings.HasPrefix(name, "on") },
		DefaultAttributes: []markupguard.Attr{
			{Name: "class", Value: "user"},
		},
	}}})

	assert.Equal(t, `<p id="x" class="user">t</p>`, s.Sanitize(`<p onclick="a()" id=x ONMOUSEOVER='b()'>t</p>`))
	// The author's class suppresses the default even though it was kept.
	assert.Equal(t, `<p class="mine">t</p>`, s.Sanitize(`<p class="mine">t</p>`))
}

func FuzzSanitize(f *testing.F) {
	for _, input := range propertyCorpus {
		f.Add(input)
	}
	s := markupguard.New(closurePolicy())
	withOptions := markupguard.New(closurePolicyWithOptions())
	allowed := map[string]bool{"b": true, "br": true, "a": true}
	f.Fuzz(func(t *testing.T, input string) {
		assertClosed(t, input, s.Sanitize(input), allowed)
		assertClosed(t, input, withOptions.Sanitize(input), allowed)
		assert.Equal(t, markupguard.EscapeText(input), markupguard.Sanitize(input, nil))
	})
}
