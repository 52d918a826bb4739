package tokens

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRoundTrip(t *testing.T) {
	texts := []string{"013-Witgoedreparaties.nl", "Postbus", "27", "\u200b4500", "AA", "Oostburg"}
	toks := FromStrings(texts)

	require.NoError(t, Validate(toks))
	joined := Join(toks)
	assert.Equal(t, "013-Witgoedreparaties.nl Postbus 27 \u200b4500 AA Oostburg", joined)
	assert.Equal(t, texts, strings.Fields(joined))
}

func TestJoinEmpty(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	require.NoError(t, Validate(nil))
}

func TestValidateRejectsWhitespace(t *testing.T) {
	cases := map[string][]string{
		"space": {"Postbus 27"},
		"nbsp":  {"ok", "Postbus\u00a027"},
		"tab":   {"a\tb"},
		"empty": {"a", "", "b"},
	}
	for name, texts := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(FromStrings(texts))
			var aerr *AlignmentError
			require.True(t, errors.As(err, &aerr), "expected AlignmentError, got %v", err)
			assert.GreaterOrEqual(t, aerr.Index, 0)
		})
	}
}

func TestCheckLength(t *testing.T) {
	require.NoError(t, CheckLength(3, 3))

	err := CheckLength(3, 4)
	var aerr *AlignmentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 3, aerr.Tokens)
	assert.Equal(t, 4, aerr.Tags)
	assert.Contains(t, err.Error(), "len(tokens)=3, len(tags)=4")
}

func TestIndexBounds(t *testing.T) {
	ix, err := NewIndex(FromStrings([]string{"Postbus", "27", "Oostburg"}))
	require.NoError(t, err)

	assert.Equal(t, "Postbus 27 Oostburg", ix.Text())
	assert.Equal(t, 3, ix.Len())
	for i, want := range []string{"Postbus", "27", "Oostburg"} {
		s, e := ix.Bounds(i)
		assert.Equal(t, want, ix.Text()[s:e])
	}
}

func TestIndexCovering(t *testing.T) {
	// "Postbus 27 Oostburg"
	//  0      7 8 10     19
	ix, err := NewIndex(FromStrings([]string{"Postbus", "27", "Oostburg"}))
	require.NoError(t, err)

	tests := []struct {
		name        string
		start, end  int
		first, last int
	}{
		{"whole text", 0, 19, 0, 3},
		{"single token", 8, 10, 1, 2},
		{"leading and trailing spaces", 7, 11, 1, 2},
		{"two tokens", 0, 10, 0, 2},
		{"only whitespace", 7, 8, 1, 1},
		{"empty at token start", 8, 8, 1, 1},
		{"past the end", 19, 19, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, err := ix.Covering(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestIndexCoveringSplitsToken(t *testing.T) {
	ix, err := NewIndex(FromStrings([]string{"Postbus", "27", "Oostburg"}))
	require.NoError(t, err)

	for _, r := range [][2]int{{2, 10}, {0, 9}, {3, 4}} {
		_, _, err := ix.Covering(r[0], r[1])
		var aerr *AlignmentError
		assert.ErrorAs(t, err, &aerr, "range %v", r)
	}
}

func TestNewIndexRejectsInvalidTokens(t *testing.T) {
	_, err := NewIndex(FromStrings([]string{"Postbus 27"}))
	var aerr *AlignmentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 0, aerr.Index)
}
