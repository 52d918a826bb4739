package bio

import (
	"errors"
	"fmt"
	"strings"
)

const (
	startPrefix  = "__START_"
	endPrefix    = "__END_"
	markerSuffix = "__"
)

var (
	ErrNestedSpan    = errors.New("bio: start marker inside an open span")
	ErrUnbalancedEnd = errors.New("bio: end marker does not close the open span")
)

// StartMarker returns the boundary token opening a span of label.
func StartMarker(label string) string { return startPrefix + label + markerSuffix }

// EndMarker returns the boundary token closing a span of label.
func EndMarker(label string) string { return endPrefix + label + markerSuffix }

// ParseMarker reports whether tok is a boundary marker and, if so, its label
// and whether it opens a span.
func ParseMarker(tok string) (label string, start, ok bool) {
	if !strings.HasSuffix(tok, markerSuffix) {
		return "", false, false
	}
	switch {
	case strings.HasPrefix(tok, startPrefix):
		label = tok[len(startPrefix) : len(tok)-len(markerSuffix)]
		start = true
	case strings.HasPrefix(tok, endPrefix):
		label = tok[len(endPrefix) : len(tok)-len(markerSuffix)]
	default:
		return "", false, false
	}
	if label == "" {
		return "", false, false
	}
	return label, start, true
}

// Tagged pairs an ordinary token with its tag.
type Tagged struct {
	Token string
	Tag   Tag
}

// Encoder is the OUTSIDE / INSIDE(label) state machine over a token stream
// that may contain boundary markers. Encode resets it, so an Encoder can be
// reused across documents but must not be shared between goroutines.
type Encoder struct {
	label  string // active label, "" when OUTSIDE
	inside bool
	first  bool
}

// NewEncoder returns an encoder in the OUTSIDE state.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Reset returns the encoder to OUTSIDE.
func (e *Encoder) Reset() {
	e.label = ""
	e.inside = false
	e.first = false
}

// Encode tags every ordinary token of toks. Markers produce no output.
// An unterminated span at the end of the stream is accepted.
func (e *Encoder) Encode(toks []string) ([]Tagged, error) {
	e.Reset()
	out := make([]Tagged, 0, len(toks))
	for i, tok := range toks {
		if label, start, ok := ParseMarker(tok); ok {
			if err := e.transition(label, start); err != nil {
				return nil, fmt.Errorf("token %d %q: %w", i, tok, err)
			}
			continue
		}
		out = append(out, Tagged{Token: tok, Tag: e.next()})
	}
	return out, nil
}

// Tags is Encode without the tokens.
func (e *Encoder) Tags(toks []string) ([]Tag, error) {
	tagged, err := e.Encode(toks)
	if err != nil {
		return nil, err
	}
	tags := make([]Tag, len(tagged))
	for i, tt := range tagged {
		tags[i] = tt.Tag
	}
	return tags, nil
}

func (e *Encoder) transition(label string, start bool) error {
	if start {
		if e.inside {
			return fmt.Errorf("%w: %s opened while %s is open", ErrNestedSpan, label, e.label)
		}
		e.label, e.inside, e.first = label, true, true
		return nil
	}
	if !e.inside {
		return fmt.Errorf("%w: %s closed while outside", ErrUnbalancedEnd, label)
	}
	if label != e.label {
		return fmt.Errorf("%w: %s closed while %s is open", ErrUnbalancedEnd, label, e.label)
	}
	e.Reset()
	return nil
}

func (e *Encoder) next() Tag {
	if !e.inside {
		return O
	}
	if e.first {
		e.first = false
		return B(e.label)
	}
	return I(e.label)
}
