package markupguard

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Sanitizer applies a compiled Policy. It is safe for concurrent use.
type Sanitizer struct {
	policy compiledPolicy
	logger *slog.Logger
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithLogger sets the logger used for diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sanitizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New compiles p into a Sanitizer. A nil policy allows no tags at all,
// so every tag in the input is escaped. Allowed tag names that are not
// HTML elements are logged as a warning.
func New(p *Policy, opts ...Option) *Sanitizer {
	s := &Sanitizer{
		policy: compile(p),
		logger: nopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, name := range s.policy.rules.unknownElements() {
		s.logger.Warn("policy allows unknown element", slog.String("tag", name))
	}
	return s
}

// Sanitize returns input with every disallowed tag escaped and every
// allowed tag rewritten in canonical form. It never fails: if an
// AttributeFilter panics, the whole input is returned escaped instead.
func (s *Sanitizer) Sanitize(input string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sanitize failed, escaping whole input",
				slog.Any("panic", r), slog.Int("input_len", len(input)))
			out = EscapeText(input)
		}
	}()

	e := &engine{
		policy: s.policy,
		input:  input,
		out:    newRenderer(len(input)),
		log:    s.logger,
	}
	e.run(Tokenize(input))
	return e.out.String()
}

// SanitizeValue sanitizes an arbitrary value. Strings and byte slices are
// used as they are; anything else is converted with fmt.Sprint and a
// warning is logged. A nil value yields "".
func (s *Sanitizer) SanitizeValue(v any) string {
	switch v := v.(type) {
	case string:
		return s.Sanitize(v)
	case []byte:
		return s.Sanitize(string(v))
	case nil:
		s.logger.Warn("sanitize called with nil input")
		return ""
	default:
		s.logger.Warn("sanitize called with non-string input, coercing",
			slog.String("type", fmt.Sprintf("%T", v)))
		return s.Sanitize(fmt.Sprint(v))
	}
}

// SanitizeReader reads all of r and sanitizes it. The only errors are
// those returned by r.
func (s *Sanitizer) SanitizeReader(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return s.Sanitize(string(b)), nil
}

// Sanitize is shorthand for New(p).Sanitize(input). Callers sanitizing
// many inputs with the same policy should build a Sanitizer once.
func Sanitize(input string, p *Policy) string {
	return New(p).Sanitize(input)
}

// SanitizeValue is shorthand for New(p).SanitizeValue(v).
func SanitizeValue(v any, p *Policy) string {
	return New(p).SanitizeValue(v)
}

// SanitizeReader is shorthand for New(p).SanitizeReader(r).
func SanitizeReader(r io.Reader, p *Policy) (string, error) {
	return New(p).SanitizeReader(r)
}

// StripTags returns the text of input with every tag removed and
// character references decoded. The result is plain text, not HTML, and
// must be escaped again before it is embedded in a page.
func StripTags(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, tok := range Tokenize(input) {
		if t, ok := tok.(*Text); ok {
			b.WriteString(html.UnescapeString(t.Span.In(input)))
		}
	}
	return b.String()
}

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
