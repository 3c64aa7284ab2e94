package markupguard

import "errors"

var (
	// ErrInvalidPolicy is returned when a policy document cannot be decoded.
	ErrInvalidPolicy = errors.New("markupguard: invalid policy")

	// ErrEmptyTagName is returned when a policy document has a rule without a tag name.
	ErrEmptyTagName = errors.New("markupguard: tag rule without name")
)
