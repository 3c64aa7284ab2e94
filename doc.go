// Package markupguard sanitizes untrusted, HTML-like text so it can be
// injected into a page as raw HTML.
//
// # Overview
//
// markupguard does not build a DOM. It scans the input once with a small
// state machine ([Scan]), groups the resulting events into a flat list of
// tokens ([Tokenize]) and then decides, token by token, whether a tag is
// written back in canonical form or escaped into inert text. By default
// tags are never silently removed: a tag that is not allowed, or that is
// cut off by the end of the input, appears in the output as escaped text.
//
// [StripTags] removes every tag and returns plain text.
//
// # Policies
//
// A [Policy] lists the allowed tags. Each [TagRule] may carry:
//   - an [AttributeFilter] deciding which attributes are kept
//   - default attributes added when the author did not set them
//
// Tags not listed are escaped, so a nil Policy escapes every tag. Two
// switches change the output further:
//   - [Policy.StripDisallowed] removes disallowed tags instead of escaping them
//   - [Policy.Linkify] turns plain-text http and https URLs into links
//
// Two built-in policies are provided:
//   - [DefaultPolicy]: formatting, lists, quotes, code, links and <font>.
//   - [StrictPolicy]: a handful of inline tags and no attributes.
//
// Policies can also be loaded from YAML with [LoadPolicy].
//
// # Security
//
//   - Every character outside an allowed tag is escaped: < > " and ' are
//     replaced with entities. '&' is left alone so existing entities are
//     not double-escaped.
//   - Link attributes (href, src, action, ...) only accept http, https and
//     relative URLs; see [SanitizeURL]. Character references and \u
//     escapes are decoded before the check.
//   - Attribute values are re-quoted, so a value can never break out of
//     its attribute.
//
// # Thread Safety
//
// A [Sanitizer] is immutable after [New] and safe for concurrent use.
//
// # Example
//
//	s := markupguard.New(markupguard.DefaultPolicy())
//	clean := s.Sanitize(userInput)
package markupguard
