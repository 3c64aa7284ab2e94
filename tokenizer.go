package markupguard

// Listener receives positional events from Scan. All offsets are byte
// offsets into the scanned string; no substrings are produced by the
// tokenizer itself.
type Listener interface {
	OnText(start, end int)
	OnOpenTagName(start, end int)
	OnOpenTagEnd(end int)
	OnSelfClosingTag(end int)
	OnCloseTag(start, end int)
	OnCloseTagEnd(end int)
	OnAttribName(start, end int)
	OnAttribData(start, end int)
	OnAttribEnd(quote QuoteStyle, end int)
	OnEnd()
}

type scanState uint8

const (
	stateText scanState = iota
	stateBeforeTagName
	stateInTagName
	stateBeforeClosingTagName
	stateInClosingTagName
	stateAfterClosingTagName
	stateBeforeAttributeName
	stateInAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateInAttributeValueDq
	stateInAttributeValueSq
	stateInAttributeValueNq
	stateInSelfClosingTag
)

// tokenizer holds the scan state for a single Scan call.
type tokenizer struct {
	buf          string
	l            Listener
	state        scanState
	index        int
	sectionStart int
	// tagStart is the offset of the '<' that opened the construct in
	// progress; used to flush it as text if the input ends early.
	tagStart int
}

// Scan runs the tokenizer over input, reporting events to l. It never
// fails: bytes that do not form a complete tag are reported as text.
func Scan(input string, l Listener) {
	t := tokenizer{buf: input, l: l}
	t.run()
}

func (t *tokenizer) run() {
	for t.index < len(t.buf) {
		if t.step(t.buf[t.index]) {
			t.index++
		}
	}
	t.finish()
}

// step feeds c to the current state. It returns false when the byte must
// be reconsumed by the (new) state without advancing the cursor.
func (t *tokenizer) step(c byte) bool {
	switch t.state {
	case stateText:
		return t.text(c)
	case stateBeforeTagName:
		return t.beforeTagName(c)
	case stateInTagName:
		return t.inTagName(c)
	case stateBeforeClosingTagName:
		return t.beforeClosingTagName(c)
	case stateInClosingTagName:
		return t.inClosingTagName(c)
	case stateAfterClosingTagName:
		return t.afterClosingTagName(c)
	case stateBeforeAttributeName:
		return t.beforeAttributeName(c)
	case stateInAttributeName:
		return t.inAttributeName(c)
	case stateAfterAttributeName:
		return t.afterAttributeName(c)
	case stateBeforeAttributeValue:
		return t.beforeAttributeValue(c)
	case stateInAttributeValueDq:
		return t.inQuotedValue(c, '"', QuoteDouble)
	case stateInAttributeValueSq:
		return t.inQuotedValue(c, '\'', QuoteSingle)
	case stateInAttributeValueNq:
		return t.inUnquotedValue(c)
	case stateInSelfClosingTag:
		return t.inSelfClosingTag(c)
	}
	return true
}

func (t *tokenizer) text(c byte) bool {
	if c == '<' {
		if t.index > t.sectionStart {
			t.l.OnText(t.sectionStart, t.index)
		}
		t.state = stateBeforeTagName
		t.sectionStart = t.index
		t.tagStart = t.index
	}
	return true
}

func (t *tokenizer) beforeTagName(c byte) bool {
	switch {
	case isASCIIAlpha(c):
		t.state = stateInTagName
		t.sectionStart = t.index
		return true
	case c == '/':
		t.state = stateBeforeClosingTagName
		return true
	}
	// Not a tag after all; the '<' stays part of the text section.
	t.state = stateText
	return false
}

func (t *tokenizer) inTagName(c byte) bool {
	if isEndOfTagSection(c) {
		t.l.OnOpenTagName(t.sectionStart, t.index)
		t.state = stateBeforeAttributeName
		return false
	}
	return true
}

func (t *tokenizer) beforeClosingTagName(c byte) bool {
	switch {
	case isWhitespace(c):
	case c == '>':
		// "</>" and friends: abandon and keep everything as text.
		t.state = stateText
	case isASCIIAlpha(c):
		t.state = stateInClosingTagName
		t.sectionStart = t.index
	}
	return true
}

func (t *tokenizer) inClosingTagName(c byte) bool {
	if c == '>' || isWhitespace(c) {
		t.l.OnCloseTag(t.sectionStart, t.index)
		t.state = stateAfterClosingTagName
		return false
	}
	return true
}

func (t *tokenizer) afterClosingTagName(c byte) bool {
	if c == '>' {
		t.l.OnCloseTagEnd(t.index)
		t.state = stateText
		t.sectionStart = t.index + 1
	}
	return true
}

func (t *tokenizer) beforeAttributeName(c byte) bool {
	switch {
	case c == '>':
		t.l.OnOpenTagEnd(t.index)
		t.state = stateText
		t.sectionStart = t.index + 1
	case c == '/':
		t.state = stateInSelfClosingTag
	case !isWhitespace(c):
		t.state = stateInAttributeName
		t.sectionStart = t.index
	}
	return true
}

func (t *tokenizer) inAttributeName(c byte) bool {
	if c == '=' || isEndOfTagSection(c) {
		t.l.OnAttribName(t.sectionStart, t.index)
		t.sectionStart = -1
		t.state = stateAfterAttributeName
		return false
	}
	return true
}

func (t *tokenizer) afterAttributeName(c byte) bool {
	switch {
	case c == '=':
		t.state = stateBeforeAttributeValue
	case c == '/' || c == '>':
		t.l.OnAttribEnd(QuoteNone, t.index)
		t.state = stateBeforeAttributeName
		return false
	case !isWhitespace(c):
		t.l.OnAttribEnd(QuoteNone, t.index)
		t.state = stateInAttributeName
		t.sectionStart = t.index
	}
	return true
}

func (t *tokenizer) beforeAttributeValue(c byte) bool {
	switch {
	case c == '"':
		t.state = stateInAttributeValueDq
		t.sectionStart = t.index + 1
	case c == '\'':
		t.state = stateInAttributeValueSq
		t.sectionStart = t.index + 1
	case !isWhitespace(c):
		t.state = stateInAttributeValueNq
		t.sectionStart = t.index
		return false
	}
	return true
}

func (t *tokenizer) inQuotedValue(c, quote byte, style QuoteStyle) bool {
	if c == quote {
		t.l.OnAttribData(t.sectionStart, t.index)
		t.l.OnAttribEnd(style, t.index+1)
		t.sectionStart = -1
		t.state = stateBeforeAttributeName
	}
	return true
}

func (t *tokenizer) inUnquotedValue(c byte) bool {
	if c == '>' || isWhitespace(c) {
		t.l.OnAttribData(t.sectionStart, t.index)
		t.l.OnAttribEnd(QuoteUnquoted, t.index)
		t.sectionStart = -1
		t.state = stateBeforeAttributeName
		return false
	}
	return true
}

func (t *tokenizer) inSelfClosingTag(c byte) bool {
	switch {
	case c == '>':
		t.l.OnSelfClosingTag(t.index)
		t.state = stateText
		t.sectionStart = t.index + 1
	case !isWhitespace(c):
		t.state = stateBeforeAttributeName
		return false
	}
	return true
}

// finish flushes whatever is left once the input is exhausted. A
// construct that never reached its closing '>' is emitted verbatim as
// text starting at its '<'.
func (t *tokenizer) finish() {
	end := len(t.buf)
	start := t.sectionStart
	if t.state != stateText {
		start = t.tagStart
	}
	if start < end {
		t.l.OnText(start, end)
	}
	t.l.OnEnd()
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isASCIIAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isEndOfTagSection(c byte) bool {
	return c == '/' || c == '>' || isWhitespace(c)
}
