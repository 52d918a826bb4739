package match

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cognicore/semilabel/pkg/semilabel/bio"
	"github.com/cognicore/semilabel/pkg/semilabel/fuzzy"
	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

// Matcher is a compiled Rule. It holds no per-document state and is safe
// for concurrent use when its Scorer is.
type Matcher struct {
	rule   Rule
	re     *regexp.Regexp
	post   PostProcessFunc
	cutoff int
	scorer fuzzy.Scorer
	logger zerolog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithScorer replaces the default fuzzy.WRatio extractor.
func WithScorer(s fuzzy.Scorer) Option {
	return func(m *Matcher) { m.scorer = s }
}

// WithLogger logs every candidate at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// Compile validates r and compiles its pattern.
func Compile(r Rule, opts ...Option) (*Matcher, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	re, err := compilePattern(r)
	if err != nil {
		return nil, err
	}
	named, err := LookupPostProcess(r.PostProcess)
	if err != nil {
		return nil, &ConfigError{Rule: r.displayName(), Field: "postprocess", Err: err}
	}
	m := &Matcher{
		rule:   r,
		re:     re,
		post:   Chain(named, r.Post),
		cutoff: int(math.Ceil(r.threshold()*100 - 1e-9)),
		scorer: fuzzy.New(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(r Rule, opts ...Option) *Matcher {
	m, err := Compile(r, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Rule returns the rule m was compiled from.
func (m *Matcher) Rule() Rule { return m.rule }

// Name returns the rule name, falling back to its label.
func (m *Matcher) Name() string { return m.rule.displayName() }

// Candidate is one pattern match in the joined text.
type Candidate struct {
	Start    int    // byte offset in the joined text
	End      int    // exclusive
	Text     string // raw matched text
	Query    string // Text after post-processing
	Choice   string // best reference choice, "" when none reached the cutoff
	Score    int
	Accepted bool
}

// Span is an accepted region of the joined text.
type Span struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Label  string `json:"label"`
	Text   string `json:"text"`
	Choice string `json:"choice"`
	Score  int    `json:"score"`
}

// Candidates scans text left to right for non-overlapping matches and
// scores each one. A rejected match is still consumed.
func (m *Matcher) Candidates(text string) []Candidate {
	locs := m.re.FindAllStringIndex(text, -1)
	out := make([]Candidate, 0, len(locs))
	for _, loc := range locs {
		c := Candidate{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]}
		c.Query = m.post(c.Text)
		if best := m.scorer.BestMatches(c.Query, m.rule.Choices, m.cutoff); len(best) > 0 {
			c.Choice, c.Score, c.Accepted = best[0].Choice, best[0].Score, true
		}
		m.logger.Debug().
			Str("rule", m.Name()).
			Str("query", c.Query).
			Str("choice", c.Choice).
			Int("score", c.Score).
			Bool("accepted", c.Accepted).
			Msg("candidate")
		out = append(out, c)
	}
	return out
}

// Spans returns the accepted candidates of text.
func (m *Matcher) Spans(text string) []Span {
	var spans []Span
	for _, c := range m.Candidates(text) {
		if !c.Accepted {
			continue
		}
		spans = append(spans, Span{
			Start:  c.Start,
			End:    c.End,
			Label:  m.rule.Label,
			Text:   c.Text,
			Choice: c.Choice,
			Score:  c.Score,
		})
	}
	return spans
}

// AssignBIOTags returns one tag per token: B-label for the first token of
// every accepted span, I-label for the rest of it, O elsewhere.
func (m *Matcher) AssignBIOTags(toks []tokens.Token) ([]bio.Tag, error) {
	ix, err := tokens.NewIndex(toks)
	if err != nil {
		return nil, m.alignment(err)
	}
	tags := make([]bio.Tag, ix.Len())
	for _, sp := range m.Spans(ix.Text()) {
		first, last, err := ix.Covering(sp.Start, sp.End)
		if err != nil {
			return nil, m.alignment(err)
		}
		for i := first; i < last; i++ {
			if i == first {
				tags[i] = bio.B(m.rule.Label)
			} else {
				tags[i] = bio.I(m.rule.Label)
			}
		}
	}
	if err := tokens.CheckLength(len(toks), len(tags)); err != nil {
		return nil, m.alignment(err)
	}
	return tags, nil
}

// Annotate renders the joined text with every accepted span wrapped in
// space-padded boundary markers, the form consumed by bio.Encoder.
func (m *Matcher) Annotate(toks []tokens.Token) (string, error) {
	if err := tokens.Validate(toks); err != nil {
		return "", m.alignment(err)
	}
	text := tokens.Join(toks)
	var b strings.Builder
	prev := 0
	for _, sp := range m.Spans(text) {
		b.WriteString(text[prev:sp.Start])
		b.WriteString(" " + bio.StartMarker(sp.Label) + " ")
		b.WriteString(sp.Text)
		b.WriteString(" " + bio.EndMarker(sp.Label) + " ")
		prev = sp.End
	}
	b.WriteString(text[prev:])
	return b.String(), nil
}

func (m *Matcher) alignment(err error) error {
	return fmt.Errorf("rule %q: %w", m.Name(), err)
}

// AssignBIOTags compiles r and tags toks with it.
func AssignBIOTags(toks []tokens.Token, r Rule, opts ...Option) ([]bio.Tag, error) {
	m, err := Compile(r, opts...)
	if err != nil {
		return nil, err
	}
	return m.AssignBIOTags(toks)
}
