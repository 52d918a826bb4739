// Package fuzzy scores how closely a candidate string resembles a set of
// reference strings. Scores are integers in [0, 100].
package fuzzy

import "sort"

// Match is one scored reference choice.
type Match struct {
	Choice string
	Index  int // position of Choice in the input slice
	Score  int
}

// Scorer ranks reference choices against a query.
type Scorer interface {
	// Extract returns every choice ranked by descending score.
	Extract(query string, choices []string) []Match
	// BestMatches returns the top choices scoring at least cutoff.
	BestMatches(query string, choices []string, cutoff int) []Match
}

// ScoreFunc compares two strings.
type ScoreFunc func(a, b string) int

// DefaultLimit caps BestMatches results.
const DefaultLimit = 5

// Extractor is a Scorer built on a ScoreFunc. Query and choices are passed
// through Processor before scoring.
type Extractor struct {
	Score     ScoreFunc
	Processor func(string) string
	Limit     int // <= 0 means unlimited
}

// New returns an Extractor using WRatio, FullProcess and DefaultLimit.
func New() *Extractor {
	return &Extractor{Score: WRatio, Processor: FullProcess, Limit: DefaultLimit}
}

func (x *Extractor) Extract(query string, choices []string) []Match {
	return x.rank(query, choices, -1, 0)
}

func (x *Extractor) BestMatches(query string, choices []string, cutoff int) []Match {
	return x.rank(query, choices, cutoff, x.Limit)
}

func (x *Extractor) rank(query string, choices []string, cutoff, limit int) []Match {
	score := x.Score
	if score == nil {
		score = WRatio
	}
	process := x.Processor
	if process == nil {
		process = func(s string) string { return s }
	}

	q := process(query)
	matches := make([]Match, 0, len(choices))
	for i, c := range choices {
		s := score(q, process(c))
		if s >= cutoff {
			matches = append(matches, Match{Choice: c, Index: i, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
