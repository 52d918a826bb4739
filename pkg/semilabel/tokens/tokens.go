// Package tokens holds the document token model and the joiner that maps
// regex offsets over joined text back onto discrete tokens.
package tokens

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Token is one unit produced by the external HTML tokenizer.
type Token struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// FromStrings builds tokens with sequential indices.
func FromStrings(texts []string) []Token {
	toks := make([]Token, len(texts))
	for i, s := range texts {
		toks[i] = Token{Text: s, Index: i}
	}
	return toks
}

// Texts returns the token texts in order.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// Join concatenates token texts with a single ASCII space.
// strings.Fields(Join(toks)) == Texts(toks) whenever Validate(toks) is nil.
func Join(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// Validate checks that every token survives a join/split round trip.
func Validate(toks []Token) error {
	for i, t := range toks {
		if t.Text == "" {
			return &AlignmentError{Tokens: len(toks), Tags: -1, Index: i, Reason: "empty token"}
		}
		if strings.IndexFunc(t.Text, unicode.IsSpace) >= 0 {
			return &AlignmentError{Tokens: len(toks), Tags: -1, Index: i, Reason: fmt.Sprintf("token %q contains whitespace", t.Text)}
		}
	}
	return nil
}

// AlignmentError reports that a tag sequence can no longer be aligned with
// the document tokens. The labeling of that document is unreliable.
type AlignmentError struct {
	Tokens int
	Tags   int // -1 when no tags were produced
	Index  int // offending token, -1 when not tied to one token
	Reason string
}

func (e *AlignmentError) Error() string {
	msg := "alignment error"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (token %d)", e.Index)
	}
	if e.Tags >= 0 {
		msg += fmt.Sprintf(" (len(tokens)=%d, len(tags)=%d)", e.Tokens, e.Tags)
	}
	return msg
}

// CheckLength returns an AlignmentError unless tags and tokens have equal length.
func CheckLength(numTokens, numTags int) error {
	if numTokens != numTags {
		return &AlignmentError{Tokens: numTokens, Tags: numTags, Index: -1, Reason: "tag count does not match token count"}
	}
	return nil
}

// Index is the joined text of a document together with the byte offsets of
// every token inside it.
type Index struct {
	text   string
	starts []int
	ends   []int
}

// NewIndex validates toks and builds the offset index once.
func NewIndex(toks []Token) (*Index, error) {
	if err := Validate(toks); err != nil {
		return nil, err
	}
	ix := &Index{
		starts: make([]int, len(toks)),
		ends:   make([]int, len(toks)),
	}
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		ix.starts[i] = b.Len()
		b.WriteString(t.Text)
		ix.ends[i] = b.Len()
	}
	ix.text = b.String()
	return ix, nil
}

// Text returns the joined text.
func (ix *Index) Text() string { return ix.text }

// Len returns the number of tokens.
func (ix *Index) Len() int { return len(ix.starts) }

// Bounds returns the byte range of token i in the joined text.
func (ix *Index) Bounds(i int) (start, end int) {
	return ix.starts[i], ix.ends[i]
}

// Covering returns the half-open token range [first, last) lying inside the
// byte range [start, end). A range boundary that falls strictly inside a token
// is an AlignmentError. first == last means no token is covered.
func (ix *Index) Covering(start, end int) (first, last int, err error) {
	n := len(ix.starts)
	first = sort.Search(n, func(i int) bool { return ix.ends[i] > start })
	last = sort.Search(n, func(i int) bool { return ix.starts[i] >= end })
	if first >= last {
		return first, first, nil
	}
	if ix.starts[first] < start {
		return 0, 0, &AlignmentError{Tokens: n, Tags: -1, Index: first, Reason: fmt.Sprintf("span start %d splits a token", start)}
	}
	if ix.ends[last-1] > end {
		return 0, 0, &AlignmentError{Tokens: n, Tags: -1, Index: last - 1, Reason: fmt.Sprintf("span end %d splits a token", end)}
	}
	return first, last, nil
}
