package markupguard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// anyAttribute in a rule's attribute list keeps every attribute.
const anyAttribute = "*"

type policyDocument struct {
	AllowedTags     []tagDocument `yaml:"allowed_tags"`
	StripDisallowed bool          `yaml:"strip_disallowed"`
	Linkify         bool          `yaml:"linkify"`
}

type tagDocument struct {
	Name              string         `yaml:"name"`
	Attributes        []string       `yaml:"attributes"`
	DefaultAttributes []attrDocument `yaml:"default_attributes"`
}

type attrDocument struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// LoadPolicy decodes a YAML policy document:
//
//	strip_disallowed: false
//	linkify: true
//	allowed_tags:
//	  - name: a
//	    attributes: [href, title]
//	    default_attributes:
//	      - {name: rel, value: noopener noreferrer}
//
// A tag without an attributes list keeps no attributes; the list ["*"]
// keeps all of them. An empty document yields a policy with no allowed
// tags.
func LoadPolicy(r io.Reader) (*Policy, error) {
	var doc policyDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	p := &Policy{
		AllowedTags:     make([]TagRule, 0, len(doc.AllowedTags)),
		StripDisallowed: doc.StripDisallowed,
		Linkify:         doc.Linkify,
	}
	for i, t := range doc.AllowedTags {
		rule, err := t.rule()
		if err != nil {
			return nil, fmt.Errorf("allowed_tags[%d]: %w", i, err)
		}
		p.AllowedTags = append(p.AllowedTags, rule)
	}
	return p, nil
}

// LoadPolicyFile reads a YAML policy document from path.
func LoadPolicyFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening policy %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadPolicy(f)
	if err != nil {
		return nil, fmt.Errorf("loading policy %q: %w", path, err)
	}
	return p, nil
}

func (t tagDocument) rule() (TagRule, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return TagRule{}, ErrEmptyTagName
	}

	rule := TagRule{TagName: name}
	if !slices.Contains(t.Attributes, anyAttribute) {
		rule.OnAttribute = AllowAttributes(t.Attributes...)
	}
	for _, d := range t.DefaultAttributes {
		if !validDefaultName(d.Name) {
			return TagRule{}, fmt.Errorf("%w: default attribute name %q on <%s>", ErrInvalidPolicy, d.Name, name)
		}
		rule.DefaultAttributes = append(rule.DefaultAttributes, Attr{Name: d.Name, Value: d.Value})
	}
	return rule, nil
}

func validDefaultName(name string) bool {
	return writableAttributeName(name) && !strings.ContainsAny(name, " \t\n\r\f/>=")
}
