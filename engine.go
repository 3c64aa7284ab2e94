package markupguard

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// linkRe matches http and https URLs inside text. Trailing punctuation is
// left out so "see https://example.com." links without the full stop.
var linkRe = regexp.MustCompile(`https?://[^\s<>"']+[^\s<>"'.,;:!?)\]]`)

// engine applies a compiled policy to the tokens of one input.
type engine struct {
	policy compiledPolicy
	input  string
	out    *renderer
	log    *slog.Logger

	// anchorDepth counts allowed <a> tags currently open; text inside
	// them is not linkified.
	anchorDepth int
}

func (e *engine) run(tokens []Token) {
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case *Text:
			e.text(tok.Span.In(e.input))
		case *OpenTag:
			e.openTag(tok)
		case *CloseTag:
			e.closeTag(tok)
		default:
			panic(fmt.Sprintf("markupguard: unexpected token type %T", tok))
		}
	}
}

func (e *engine) text(s string) {
	if !e.policy.linkify || e.anchorDepth > 0 {
		e.out.escaped(s)
		return
	}
	rule, ok := e.policy.rules.lookup("a")
	if !ok {
		e.out.escaped(s)
		return
	}

	last := 0
	for _, m := range linkRe.FindAllStringIndex(s, -1) {
		href := Attribute{Name: "href", Value: s[m[0]:m[1]], Quote: QuoteDouble}
		value, keep := e.attribute("a", rule, href)
		if !keep {
			continue
		}
		e.out.escaped(s[last:m[0]])
		e.out.openTagStart("a")
		e.out.attribute(href.Name, value, href.Quote)
		e.defaults(rule, []Attribute{href})
		e.out.openTagEnd(false)
		e.out.escaped(href.Value)
		e.out.closeTag("a")
		last = m[1]
	}
	e.out.escaped(s[last:])
}

func (e *engine) openTag(tok *OpenTag) {
	rule, ok := e.policy.rules.lookup(tok.Name)
	if !ok {
		e.disallowed(tok.Name, tok.Span)
		return
	}
	if isAnchor(tok.Name) && !tok.SelfClosing {
		e.anchorDepth++
	}

	e.out.openTagStart(tok.Name)
	for _, a := range tok.Attributes {
		value, keep := e.attribute(tok.Name, rule, a)
		if !keep {
			continue
		}
		e.out.attribute(a.Name, value, a.Quote)
	}
	e.defaults(rule, tok.Attributes)
	e.out.openTagEnd(tok.SelfClosing)
}

// defaults writes the rule's default attributes that the source tag did
// not carry.
func (e *engine) defaults(rule tagRule, source []Attribute) {
	for i, d := range rule.defaults {
		if hasAttribute(source, d.Name) || hasDefault(rule.defaults[:i], d.Name) {
			continue
		}
		e.out.attribute(d.Name, d.Value, QuoteDouble)
	}
}

// disallowed escapes or strips a tag that has no rule.
func (e *engine) disallowed(name string, span Span) {
	if e.policy.stripDisallowed {
		e.log.Debug("stripping disallowed tag", slog.String("tag", name))
		return
	}
	e.log.Debug("escaping disallowed tag", slog.String("tag", name))
	e.out.escaped(span.In(e.input))
}

// attribute decides whether a is kept and returns the value to write.
func (e *engine) attribute(tag string, rule tagRule, a Attribute) (string, bool) {
	name := strings.ToLower(a.Name)
	if !writableAttributeName(name) {
		e.log.Debug("dropping attribute with unsafe name",
			slog.String("tag", tag), slog.String("attribute", a.Name))
		return "", false
	}

	value := a.Value
	if linkAttributes[name] && a.Quote != QuoteNone {
		v, ok := SanitizeURL(a.Value)
		if !ok {
			e.log.Debug("dropping unsafe url",
				slog.String("tag", tag), slog.String("attribute", a.Name))
			return "", false
		}
		value = v
	}

	if rule.onAttribute != nil && !rule.onAttribute(name, a.Value) {
		return "", false
	}
	return value, true
}

func (e *engine) closeTag(tok *CloseTag) {
	if _, ok := e.policy.rules.lookup(tok.Name); !ok {
		e.disallowed(tok.Name, tok.Span)
		return
	}
	if isAnchor(tok.Name) && e.anchorDepth > 0 {
		e.anchorDepth--
	}
	e.out.closeTag(tok.Name)
}

func isAnchor(name string) bool {
	return strings.EqualFold(name, "a")
}

// writableAttributeName reports whether name can be written back without
// breaking out of the tag. The tokenizer already excludes whitespace, '/',
// '>' and '='.
func writableAttributeName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `"'<`)
}

func hasAttribute(attrs []Attribute, name string) bool {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

func hasDefault(defaults []Attr, name string) bool {
	for _, d := range defaults {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}
