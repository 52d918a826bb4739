package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

func tok(s string) tokens.Token { return tokens.Token{Text: s} }

func TestLooksLikeNLZipcode(t *testing.T) {
	tests := []struct {
		name string
		doc  []string
		want bool
	}{
		{"split", []string{"1616", "TR", "Hoogkarspel"}, true},
		{"joined", []string{"1616TR", "Hoogkarspel"}, true},
		{"no letters", []string{"1616", "Hoogkarspel"}, false},
		{"lowercase", []string{"1616", "tr"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tokens.FromStrings(tt.doc)
			got := LooksLikeNLZipcode(doc[0], doc)
			assert.Equal(t, tt.want, got[NLZipcode])
		})
	}
}

func TestLooksLikeNLZipcodeOutOfRange(t *testing.T) {
	doc := tokens.FromStrings([]string{"1616", "TR"})
	assert.False(t, LooksLikeNLZipcode(tokens.Token{Text: "1616", Index: 9}, doc)[NLZipcode])
	assert.True(t, LooksLikeNLZipcode(tokens.Token{Text: "1616TR", Index: -1}, nil)[NLZipcode])
}

func TestLooksLikeEmail(t *testing.T) {
	assert.True(t, LooksLikeEmail(tok("info@013-witgoedreparaties.nl"))[Email])
	assert.True(t, LooksLikeEmail(tok("mail:jan.jansen@example.com"))[Email])
	assert.False(t, LooksLikeEmail(tok("@example"))[Email])
	assert.False(t, LooksLikeEmail(tok("jan@example"))[Email])
}

func TestLooksLikeYear(t *testing.T) {
	assert.True(t, LooksLikeYear(tok("1999"))[Year])
	assert.True(t, LooksLikeYear(tok("2024"))[Year])
	assert.False(t, LooksLikeYear(tok("1850"))[Year])
	assert.False(t, LooksLikeYear(tok("20245"))[Year])
	assert.False(t, LooksLikeYear(tok("20a4"))[Year])
}

func TestCalendarNames(t *testing.T) {
	for _, s := range []string{"January", "mei", "März", "déc.", "OKT"} {
		assert.True(t, LooksLikeMonth(tok(s))[Month], s)
	}
	assert.False(t, LooksLikeMonth(tok("janu"))[Month])

	for _, s := range []string{"Monday", "zo.", "Mittwoch", "sábado"} {
		assert.True(t, LooksLikeWeekday(tok(s))[Weekday], s)
	}
	assert.False(t, LooksLikeWeekday(tok("weekend"))[Weekday])
}

func TestLooksLikeTime(t *testing.T) {
	assert.True(t, LooksLikeTime(tok("9:30"))[Time])
	assert.True(t, LooksLikeTime(tok("09.30u"))[Time])
	assert.False(t, LooksLikeTime(tok("930"))[Time])
}

func TestLooksLikeStreetPart(t *testing.T) {
	f := LooksLikeStreetPart(tok("Straat"))
	assert.True(t, f[CommonStreetPart])
	assert.False(t, f[CommonAddressPart])
	assert.False(t, f[Direction])

	assert.True(t, LooksLikeStreetPart(tok("Suite"))[CommonAddressPart])
	assert.True(t, LooksLikeStreetPart(tok("NW"))[Direction])
	assert.True(t, LooksLikeRange(tok("t/m"))[Range])
	assert.False(t, LooksLikeRange(tok("tm"))[Range])
}

func TestEmptyTokenHasEveryFeature(t *testing.T) {
	doc := []tokens.Token{{Text: "", Index: 0}}
	got := Extract(doc, 0)
	for _, name := range []string{Email, Year, Month, Weekday, Time, CommonStreetPart, CommonAddressPart, Direction, Range, NLZipcode} {
		v, ok := got[name]
		require.True(t, ok, name)
		assert.False(t, v, name)
	}
}

func TestExtractAll(t *testing.T) {
	doc := tokens.FromStrings([]string{"Postbus", "27", "4500", "AA", "Oostburg"})
	all := ExtractAll(doc)
	require.Len(t, all, len(doc))
	assert.True(t, all[0][NLZipcode])
	assert.True(t, all[1][NLZipcode])
	assert.True(t, all[2][NLZipcode])
	assert.False(t, all[3][NLZipcode])

	only := ExtractAll(doc, Single(LooksLikeYear))
	assert.Equal(t, Features{Year: false}, only[0])
}
