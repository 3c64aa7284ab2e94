package markupguard

import "strings"

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// renderer serializes the engine's decisions into the output string.
type renderer struct {
	b strings.Builder
}

func newRenderer(size int) *renderer {
	r := &renderer{}
	r.b.Grow(size + size/4)
	return r
}

// escaped writes s with the text escape table applied. It is used both
// for character data and for the source of rejected tags.
func (r *renderer) escaped(s string) {
	_, _ = textEscaper.WriteString(&r.b, s)
}

func (r *renderer) openTagStart(name string) {
	r.b.WriteByte('<')
	r.b.WriteString(name)
}

// attribute writes one attribute. Single-quoted values keep their quotes
// and any '"' inside them; only angle brackets are escaped so the output
// never contains a raw '<' outside an allowed tag. Everything else is
// escaped inside double quotes.
func (r *renderer) attribute(name, value string, quote QuoteStyle) {
	r.b.WriteByte(' ')
	r.b.WriteString(name)
	switch quote {
	case QuoteNone:
		return
	case QuoteSingle:
		r.b.WriteString("='")
		_, _ = angleEscaper.WriteString(&r.b, value)
		r.b.WriteByte('\'')
	default:
		r.b.WriteString(`="`)
		r.escaped(value)
		r.b.WriteByte('"')
	}
}

func (r *renderer) openTagEnd(selfClosing bool) {
	if selfClosing {
		r.b.WriteString(" />")
		return
	}
	r.b.WriteByte('>')
}

func (r *renderer) closeTag(name string) {
	r.b.WriteString("</")
	r.b.WriteString(name)
	r.b.WriteByte('>')
}

func (r *renderer) String() string {
	return r.b.String()
}
