// Package merge folds position-aligned BIO tag sequences into one.
package merge

import (
	"errors"
	"fmt"

	"github.com/cognicore/semilabel/pkg/semilabel/bio"
)

var (
	ErrNoSequences    = errors.New("merge: no tag sequences")
	ErrLengthMismatch = errors.New("merge: tag sequences differ in length")
)

// Conflict records a position where a later sequence overwrote an entity of
// a different label.
type Conflict struct {
	Position int     `json:"position"`
	Sequence int     `json:"sequence"` // index of the overriding sequence
	Previous bio.Tag `json:"previous"`
	Winner   bio.Tag `json:"winner"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict BIO tag %s %s at position %d", c.Previous, c.Winner, c.Position)
}

// Merge folds seqs left to right at every position: a non-O tag replaces
// the running tag, an O leaves it unchanged. Later sequences therefore take
// priority. Overwriting a non-O tag of another label is reported as a
// Conflict but never stops the merge.
func Merge(seqs ...[]bio.Tag) ([]bio.Tag, []Conflict, error) {
	if len(seqs) == 0 {
		return nil, nil, ErrNoSequences
	}
	n := len(seqs[0])
	for i, s := range seqs[1:] {
		if len(s) != n {
			return nil, nil, fmt.Errorf("%w: sequence %d has %d tags, sequence 0 has %d", ErrLengthMismatch, i+1, len(s), n)
		}
	}

	merged := make([]bio.Tag, n)
	copy(merged, seqs[0])
	var conflicts []Conflict
	for k, s := range seqs[1:] {
		for pos, y := range s {
			x := merged[pos]
			if y.IsOutside() {
				continue
			}
			if !x.IsOutside() && x.Label != y.Label {
				conflicts = append(conflicts, Conflict{Position: pos, Sequence: k + 1, Previous: x, Winner: y})
			}
			merged[pos] = y
		}
	}
	return merged, conflicts, nil
}

// Strings is Merge over textual tags.
func Strings(seqs ...[]string) ([]string, []Conflict, error) {
	parsed := make([][]bio.Tag, len(seqs))
	for i, s := range seqs {
		tags, err := bio.ParseTags(s)
		if err != nil {
			return nil, nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		parsed[i] = tags
	}
	merged, conflicts, err := Merge(parsed...)
	if err != nil {
		return nil, nil, err
	}
	return bio.Strings(merged), conflicts, nil
}
