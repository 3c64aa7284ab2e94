package markupguard

import (
	"slices"
	"strings"

	"golang.org/x/net/html/atom"
)

// AttributeFilter decides whether an attribute of an allowed tag is kept.
// name is lowercased; value is the raw source text of the value.
type AttributeFilter func(name, value string) bool

// Attr is a name/value pair used for default attributes.
type Attr struct {
	Name  string
	Value string
}

// TagRule allows one tag and describes its attribute policy.
type TagRule struct {
	// TagName is matched case-insensitively.
	TagName string

	// OnAttribute filters the tag's attributes. When nil every attribute
	// is kept. Link attributes such as href are additionally checked by
	// SanitizeURL and dropped on rejection whatever the filter says.
	OnAttribute AttributeFilter

	// DefaultAttributes are appended, in order, when the tag did not
	// carry an attribute of the same name in the source, even one the
	// filter removed. An author's rel="x" on <a> therefore suppresses a
	// default rel even when OnAttribute drops it, and the tag ends up
	// with no rel at all.
	DefaultAttributes []Attr
}

// Policy is the allow-list. Tags without a rule are escaped.
// A Policy may be changed freely after it has been passed to New; the
// Sanitizer works on its own compiled copy.
type Policy struct {
	AllowedTags []TagRule

	// StripDisallowed removes disallowed tags from the output instead of
	// escaping them. The text between them is kept, escaped as usual:
	// "<script>x</script>" becomes "x".
	StripDisallowed bool

	// Linkify turns http and https URLs found in text into links. It only
	// has an effect when <a> is allowed; the generated href goes through
	// the <a> rule's OnAttribute and SanitizeURL, and the rule's default
	// attributes are added. Text already inside an <a> is left alone.
	Linkify bool
}

// AllowAttributes returns an AttributeFilter that keeps only the named
// attributes. Names are compared case-insensitively.
func AllowAttributes(names ...string) AttributeFilter {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return func(name, _ string) bool {
		return set[name]
	}
}

// tagRule is the compiled, immutable form of a TagRule.
type tagRule struct {
	onAttribute AttributeFilter
	defaults    []Attr
}

// ruleSet maps lowercased tag names to their rules.
type ruleSet map[string]tagRule

// compiledPolicy is the immutable form of a Policy.
type compiledPolicy struct {
	rules           ruleSet
	stripDisallowed bool
	linkify         bool
}

// compile builds the lookup table for p. Rules with an empty name are
// ignored; when a tag is listed twice the later rule wins.
func compile(p *Policy) compiledPolicy {
	if p == nil {
		return compiledPolicy{rules: ruleSet{}}
	}
	rules := make(ruleSet, len(p.AllowedTags))
	for _, r := range p.AllowedTags {
		name := strings.ToLower(strings.TrimSpace(r.TagName))
		if name == "" {
			continue
		}
		rules[name] = tagRule{
			onAttribute: r.OnAttribute,
			defaults:    append([]Attr(nil), r.DefaultAttributes...),
		}
	}
	return compiledPolicy{
		rules:           rules,
		stripDisallowed: p.StripDisallowed,
		linkify:         p.Linkify,
	}
}

// unknownElements returns the allowed tag names that are neither HTML
// elements known to the atom table nor custom elements (which contain a
// hyphen). They are usually typos in a policy.
func (rs ruleSet) unknownElements() []string {
	var names []string
	for name := range rs {
		if atom.Lookup([]byte(name)) == 0 && !strings.Contains(name, "-") {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (rs ruleSet) lookup(tag string) (tagRule, bool) {
	r, ok := rs[strings.ToLower(tag)]
	return r, ok
}
