package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// A substitution costs as much as a deletion plus an insertion, so the
// distance is the indel distance and Ratio equals 2*M/T.
var indel = levenshtein.NewParams().SubCost(2)

// FullProcess drops non-ASCII runes, maps everything but letters, digits and
// underscores to spaces, lowercases and trims.
func FullProcess(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// Ratio is the normalized indel similarity of a and b. Either string empty
// scores 0.
func Ratio(a, b string) int {
	return round(ratio(a, b))
}

func ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	total := la + lb
	d := levenshtein.Distance(a, b, indel)
	return 100 * float64(total-d) / float64(total)
}

// PartialRatio scores the shorter string against the best aligned window of
// the longer one.
func PartialRatio(a, b string) int {
	return round(partialRatio(a, b))
}

func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > 99.5 {
			return 100
		}
		if r > best {
			best = r
		}
	}
	return best
}

// TokenSortRatio compares the alphabetically sorted tokens of both strings.
func TokenSortRatio(a, b string) int {
	return round(ratio(sortedTokens(FullProcess(a)), sortedTokens(FullProcess(b))))
}

// TokenSetRatio compares the shared tokens against each side's remainder.
func TokenSetRatio(a, b string) int {
	return round(tokenSet(FullProcess(a), FullProcess(b), ratio))
}

// WRatio combines the ratios above with weights that depend on how different
// the string lengths are. Inputs are run through FullProcess first.
func WRatio(a, b string) int {
	p1, p2 := FullProcess(a), FullProcess(b)
	l1, l2 := utf8.RuneCountInString(p1), utf8.RuneCountInString(p2)
	if l1 == 0 || l2 == 0 {
		return 0
	}

	const unbaseScale = 0.95
	partialScale := 0.90

	base := ratio(p1, p2)
	lenRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	if lenRatio < 1.5 {
		tsor := ratio(sortedTokens(p1), sortedTokens(p2)) * unbaseScale
		tser := tokenSet(p1, p2, ratio) * unbaseScale
		return round(math.Max(base, math.Max(tsor, tser)))
	}

	if lenRatio > 8 {
		partialScale = 0.6
	}
	partial := partialRatio(p1, p2) * partialScale
	ptsor := partialRatio(sortedTokens(p1), sortedTokens(p2)) * unbaseScale * partialScale
	ptser := tokenSet(p1, p2, partialRatio) * unbaseScale * partialScale
	return round(math.Max(math.Max(base, partial), math.Max(ptsor, ptser)))
}

func sortedTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

func tokenSet(p1, p2 string, score func(a, b string) float64) float64 {
	set1, set2 := tokenSetOf(p1), tokenSetOf(p2)

	var inter, diff12, diff21 []string
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			inter = append(inter, tok)
		} else {
			diff12 = append(diff12, tok)
		}
	}
	for tok := range set2 {
		if _, ok := set1[tok]; !ok {
			diff21 = append(diff21, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(diff12)
	sort.Strings(diff21)

	sect := strings.Join(inter, " ")
	combined12 := strings.TrimSpace(sect + " " + strings.Join(diff12, " "))
	combined21 := strings.TrimSpace(sect + " " + strings.Join(diff21, " "))

	return math.Max(score(sect, combined12), math.Max(score(sect, combined21), score(combined12, combined21)))
}

func tokenSetOf(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range strings.Fields(s) {
		set[f] = struct{}{}
	}
	return set
}

func round(f float64) int {
	return int(math.Round(f))
}
