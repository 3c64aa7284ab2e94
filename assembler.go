package markupguard

// assembler turns tokenizer events into a flat slice of tokens. It keeps
// the in-flight tag between OnOpenTagName and the event that closes it.
type assembler struct {
	buf    string
	tokens []Token

	// cursor is the end of the last emitted token, which is always the
	// position of the '<' of the tag currently being assembled.
	cursor int

	inTag     bool
	tagName   string
	attrs     []Attribute
	attrName  string
	attrValue string

	closeName string
	inClose   bool
}

var _ Listener = (*assembler)(nil)

// Tokenize splits input into text and tag tokens. The spans of the
// returned tokens are contiguous and together cover input exactly.
func Tokenize(input string) []Token {
	a := &assembler{buf: input}
	Scan(input, a)
	return a.tokens
}

func (a *assembler) emit(tok Token) {
	a.tokens = append(a.tokens, tok)
	a.cursor = tok.Pos().End
}

func (a *assembler) reset() {
	a.inTag = false
	a.inClose = false
	a.tagName = ""
	a.closeName = ""
	a.attrs = nil
	a.attrName = ""
	a.attrValue = ""
}

func (a *assembler) OnText(start, end int) {
	// A text event while a tag is pending only happens when the input
	// ends inside that tag; the flushed text replaces it.
	a.reset()
	a.emit(&Text{Span: Span{Start: start, End: end}})
}

func (a *assembler) OnOpenTagName(start, end int) {
	a.reset()
	a.inTag = true
	a.tagName = a.buf[start:end]
}

func (a *assembler) OnAttribName(start, end int) {
	a.attrName = a.buf[start:end]
	a.attrValue = ""
}

func (a *assembler) OnAttribData(start, end int) {
	a.attrValue = a.buf[start:end]
}

func (a *assembler) OnAttribEnd(quote QuoteStyle, _ int) {
	a.attrs = append(a.attrs, Attribute{
		Name:  a.attrName,
		Value: a.attrValue,
		Quote: quote,
	})
	a.attrName = ""
	a.attrValue = ""
}

func (a *assembler) OnOpenTagEnd(end int) {
	a.freezeOpenTag(end, false)
}

func (a *assembler) OnSelfClosingTag(end int) {
	a.freezeOpenTag(end, true)
}

func (a *assembler) freezeOpenTag(end int, selfClosing bool) {
	if !a.inTag {
		return
	}
	tok := &OpenTag{
		Span:        Span{Start: a.cursor, End: end + 1},
		Name:        a.tagName,
		Attributes:  a.attrs,
		SelfClosing: selfClosing,
	}
	a.reset()
	a.emit(tok)
}

func (a *assembler) OnCloseTag(start, end int) {
	a.reset()
	a.inClose = true
	a.closeName = a.buf[start:end]
}

func (a *assembler) OnCloseTagEnd(end int) {
	if !a.inClose {
		return
	}
	tok := &CloseTag{
		Span: Span{Start: a.cursor, End: end + 1},
		Name: a.closeName,
	}
	a.reset()
	a.emit(tok)
}

func (a *assembler) OnEnd() {
	a.reset()
}
