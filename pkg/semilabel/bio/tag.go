// Package bio implements BIO (Begin/Inside/Outside) tags and the IOB encoder
// that turns marker-annotated token streams into per-token tags.
package bio

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the position of a token relative to an entity span.
type Kind uint8

const (
	Outside Kind = iota
	Begin
	Inside
)

// Tag is a BIO tag. The zero value is O.
type Tag struct {
	Kind  Kind
	Label string
}

// O is the outside tag.
var O = Tag{}

// B returns the tag for the first token of a label span.
func B(label string) Tag { return Tag{Kind: Begin, Label: label} }

// I returns the tag for a continuation token of a label span.
func I(label string) Tag { return Tag{Kind: Inside, Label: label} }

// IsOutside reports whether t is O.
func (t Tag) IsOutside() bool { return t.Kind == Outside }

// SameEntity reports whether both tags belong to an entity of the same label.
func (t Tag) SameEntity(other Tag) bool {
	return !t.IsOutside() && !other.IsOutside() && t.Label == other.Label
}

func (t Tag) String() string {
	switch t.Kind {
	case Begin:
		return "B-" + t.Label
	case Inside:
		return "I-" + t.Label
	default:
		return "O"
	}
}

var ErrInvalidTag = errors.New("bio: invalid tag")

// ParseTag parses "O", "B-<label>" or "I-<label>". The label is everything
// after the first hyphen, so labels may contain hyphens themselves.
func ParseTag(s string) (Tag, error) {
	if s == "O" {
		return O, nil
	}
	prefix, label, ok := strings.Cut(s, "-")
	if !ok || label == "" {
		return O, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	switch prefix {
	case "B":
		return B(label), nil
	case "I":
		return I(label), nil
	}
	return O, fmt.Errorf("%w: %q", ErrInvalidTag, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := ParseTag(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Strings formats a tag sequence.
func Strings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// ParseTags parses a tag sequence, failing on the first invalid tag.
func ParseTags(ss []string) ([]Tag, error) {
	out := make([]Tag, len(ss))
	for i, s := range ss {
		t, err := ParseTag(s)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// Span is a run of tokens [Start, End) carrying one entity label.
type Span struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Spans groups a tag sequence into entity spans. A span starts at B, or at an
// I that does not continue an entity of the same label, and runs while I tags
// of that label follow.
func Spans(tags []Tag) []Span {
	var spans []Span
	open := -1
	for i, t := range tags {
		switch {
		case t.Kind == Inside && open >= 0 && spans[open].Label == t.Label:
			spans[open].End = i + 1
		case t.IsOutside():
			open = -1
		default:
			spans = append(spans, Span{Label: t.Label, Start: i, End: i + 1})
			open = len(spans) - 1
		}
	}
	return spans
}
