package markupguard

// Span is a half-open [Start, End) byte range into the sanitized input.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// In returns the substring of input covered by s.
func (s Span) In(input string) string { return input[s.Start:s.End] }

// QuoteStyle records how an attribute value was written in the source.
type QuoteStyle uint8

const (
	// QuoteNone means the attribute had no value at all (<input disabled>).
	QuoteNone QuoteStyle = iota
	// QuoteUnquoted means name=value.
	QuoteUnquoted
	// QuoteSingle means name='value'.
	QuoteSingle
	// QuoteDouble means name="value".
	QuoteDouble
)

func (q QuoteStyle) String() string {
	switch q {
	case QuoteNone:
		return "none"
	case QuoteUnquoted:
		return "unquoted"
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	}
	return "unknown"
}

// Attribute is a single attribute of an open tag. Name keeps the source
// case and Value is the raw, undecoded source text.
type Attribute struct {
	Name  string
	Value string
	Quote QuoteStyle
}

// Token is one lexical unit of the input: *Text, *OpenTag or *CloseTag.
// The set is closed; no other package can implement it.
type Token interface {
	// Pos returns the token's span in the original input.
	Pos() Span
	token()
}

// Text is a run of character data.
type Text struct {
	Span Span
}

// OpenTag is a start tag, or a self-closing tag when SelfClosing is set.
// Span covers everything from '<' through the closing '>'.
type OpenTag struct {
	Span        Span
	Name        string
	Attributes  []Attribute
	SelfClosing bool
}

// CloseTag is an end tag. Span covers everything from "</" through '>'.
type CloseTag struct {
	Span Span
	Name string
}

func (t *Text) Pos() Span     { return t.Span }
func (t *OpenTag) Pos() Span  { return t.Span }
func (t *CloseTag) Pos() Span { return t.Span }

func (*Text) token()     {}
func (*OpenTag) token()  {}
func (*CloseTag) token() {}
