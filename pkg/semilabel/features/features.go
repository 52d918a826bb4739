// Package features holds stateless lookalike classifiers that describe a
// single token with named boolean features for sequence models.
//
// Every function returns a complete map for any input, including the empty
// token, and is safe for concurrent use.
package features

import (
	"regexp"
	"strings"

	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

// Features maps a feature name to its value.
type Features map[string]bool

// Feature names.
const (
	Email             = "looks_like_email"
	Year              = "looks_like_year"
	Month             = "looks_like_month"
	Weekday           = "looks_like_weekday"
	Time              = "looks_like_time"
	CommonStreetPart  = "common_street_part"
	CommonAddressPart = "common_address_part"
	Direction         = "direction"
	Range             = "looks_like_range"
	NLZipcode         = "looks_like_nl_zipcode"
)

var (
	emailRe = regexp.MustCompile(`(?i)(?P<space>(\s|%20|\b))` +
		`(?P<username>\w[\w.-]*)@(?P<domain>\w[\w.-]*)\.` +
		`(?P<zone>[a-z]{2}|` + strings.Join(emailZones, "|") + `)\b`)
	monthRe     = namesRe(months)
	weekdayRe   = namesRe(weekdays)
	timeRe      = regexp.MustCompile(`^\d{1,2}[.:]\d{2}`)
	nlZipcodeRe = regexp.MustCompile(`\d{4}\s*[A-Z]{2}`)
)

// namesRe builds an anchored, case-insensitive alternation of literal names.
func namesRe(tables [][]string) *regexp.Regexp {
	seen := make(map[string]struct{})
	var alts []string
	for _, table := range tables {
		for _, name := range table {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			alts = append(alts, regexp.QuoteMeta(name))
		}
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(alts, "|") + `)$`)
}

func set(words string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		m[strings.ToLower(w)] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, s string) bool {
	_, ok := m[s]
	return ok
}

// LooksLikeEmail detects an embedded e-mail address.
func LooksLikeEmail(tok tokens.Token) Features {
	return Features{Email: emailRe.MatchString(tok.Text)}
}

// LooksLikeYear accepts four ASCII digits starting with 19 or 20.
func LooksLikeYear(tok tokens.Token) Features {
	s := tok.Text
	year := len(s) == 4 && strings.Trim(s, "0123456789") == "" &&
		(strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20"))
	return Features{Year: year}
}

// LooksLikeMonth matches month names and abbreviations.
func LooksLikeMonth(tok tokens.Token) Features {
	return Features{Month: monthRe.MatchString(tok.Text)}
}

// LooksLikeWeekday matches weekday names and abbreviations.
func LooksLikeWeekday(tok tokens.Token) Features {
	return Features{Weekday: weekdayRe.MatchString(tok.Text)}
}

// LooksLikeTime matches a leading "9:30" or "09.30".
func LooksLikeTime(tok tokens.Token) Features {
	return Features{Time: timeRe.MatchString(tok.Text)}
}

// LooksLikeStreetPart reports street vocabulary, generic address words and
// compass directions.
func LooksLikeStreetPart(tok tokens.Token) Features {
	s := strings.ToLower(tok.Text)
	return Features{
		CommonStreetPart:  in(streetParts, s),
		CommonAddressPart: in(addressParts, s),
		Direction:         in(directions, s),
	}
}

// LooksLikeRange matches range connectors such as "to" or "t/m".
func LooksLikeRange(tok tokens.Token) Features {
	return Features{Range: in(ranges, strings.ToLower(tok.Text))}
}

// LooksLikeNLZipcode searches for a Dutch postcode ("1616 TR", "1616TR")
// anywhere in the text from tok up to the end of doc. Tokens whose Index does
// not point into doc are checked on their own.
func LooksLikeNLZipcode(tok tokens.Token, doc []tokens.Token) Features {
	text := tok.Text
	if tok.Index >= 0 && tok.Index < len(doc) {
		text = tokens.Join(doc[tok.Index:])
	}
	return Features{NLZipcode: nlZipcodeRe.MatchString(text)}
}

// Func computes features for one token of doc.
type Func func(tok tokens.Token, doc []tokens.Token) Features

// Single adapts a classifier that needs no context.
func Single(f func(tokens.Token) Features) Func {
	return func(tok tokens.Token, _ []tokens.Token) Features { return f(tok) }
}

// Default lists every lookalike classifier.
var Default = []Func{
	Single(LooksLikeEmail),
	Single(LooksLikeYear),
	Single(LooksLikeMonth),
	Single(LooksLikeWeekday),
	Single(LooksLikeTime),
	Single(LooksLikeStreetPart),
	Single(LooksLikeRange),
	LooksLikeNLZipcode,
}

// Extract merges the features of funcs (Default when none) for doc[i].
func Extract(doc []tokens.Token, i int, funcs ...Func) Features {
	if len(funcs) == 0 {
		funcs = Default
	}
	out := make(Features)
	for _, f := range funcs {
		for k, v := range f(doc[i], doc) {
			out[k] = v
		}
	}
	return out
}

// ExtractAll returns Extract for every token of doc.
func ExtractAll(doc []tokens.Token, funcs ...Func) []Features {
	out := make([]Features, len(doc))
	for i := range doc {
		out[i] = Extract(doc, i, funcs...)
	}
	return out
}
