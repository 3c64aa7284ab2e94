package markupguard

// noAttributes rejects every attribute.
func noAttributes(string, string) bool { return false }

// linkDefaults are added to every <a> that does not set them itself.
var linkDefaults = []Attr{
	{Name: "target", Value: "_blank"},
	{Name: "rel", Value: "noopener noreferrer"},
}

func bareTags(tags ...string) []TagRule {
	rules := make([]TagRule, 0, len(tags))
	for _, t := range tags {
		rules = append(rules, TagRule{TagName: t, OnAttribute: noAttributes})
	}
	return rules
}

// DefaultPolicy returns a Policy for rich user text: inline formatting,
// paragraphs, lists, quotes, code, links and the legacy <font> tag.
// Links may only point to http, https or relative targets and always
// open in a new tab with rel="noopener noreferrer" unless the author set
// target or rel explicitly.
func DefaultPolicy() *Policy {
	rules := bareTags(
		"b", "strong", "i", "em", "u", "s", "del", "ins",
		"small", "mark", "sub", "sup", "code", "kbd", "pre",
		"p", "br", "hr", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	rules = append(rules,
		TagRule{
			TagName:     "blockquote",
			OnAttribute: AllowAttributes("cite"),
		},
		TagRule{
			TagName:           "a",
			OnAttribute:       AllowAttributes("href", "title"),
			DefaultAttributes: append([]Attr(nil), linkDefaults...),
		},
		TagRule{
			TagName:     "font",
			OnAttribute: AllowAttributes("size", "color", "face"),
		},
		TagRule{
			TagName:     "span",
			OnAttribute: AllowAttributes("title", "lang", "dir"),
		},
	)
	return &Policy{AllowedTags: rules}
}

// StrictPolicy returns a Policy allowing only basic inline formatting
// and line breaks, with no attributes.
func StrictPolicy() *Policy {
	return &Policy{AllowedTags: bareTags(
		"b", "strong", "i", "em", "br",
	)}
}
