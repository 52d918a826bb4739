// Package semilabel bootstraps BIO training labels for documents from
// pattern-plus-reference rules.
package semilabel

import (
	"context"
	"crypto/rand"
	"runtime"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/cognicore/semilabel/pkg/semilabel/bio"
	"github.com/cognicore/semilabel/pkg/semilabel/features"
	"github.com/cognicore/semilabel/pkg/semilabel/fuzzy"
	"github.com/cognicore/semilabel/pkg/semilabel/match"
	"github.com/cognicore/semilabel/pkg/semilabel/merge"
	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

// ErrNoRules is returned by New when Options carries no rules.
var ErrNoRules = errors.New("semilabel: no rules")

// Labeler applies an ordered list of rules to documents and merges their tag
// sequences. Later rules win on overlap.
type Labeler struct {
	matchers []*match.Matcher
	logger   zerolog.Logger
	features bool

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Labeler
type Options struct {
	Rules    []match.Rule
	Scorer   fuzzy.Scorer    // nil uses fuzzy.New()
	Logger   *zerolog.Logger // nil disables logging
	Features bool            // attach lookalike features to every Result
}

// New compiles every rule. The first invalid rule aborts with its
// *match.ConfigError.
func New(opts Options) (*Labeler, error) {
	if len(opts.Rules) == 0 {
		return nil, ErrNoRules
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	mopts := []match.Option{match.WithLogger(logger)}
	if opts.Scorer != nil {
		mopts = append(mopts, match.WithScorer(opts.Scorer))
	}

	l := &Labeler{
		logger:   logger,
		features: opts.Features,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	for i, r := range opts.Rules {
		m, err := match.Compile(r, mopts...)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		logger.Debug().Str("rule", m.Name()).Str("label", r.Label).Int("choices", len(r.Choices)).Msg("compiled rule")
		l.matchers = append(l.matchers, m)
	}
	return l, nil
}

// Rules returns the compiled rules in merge order.
func (l *Labeler) Rules() []match.Rule {
	rules := make([]match.Rule, len(l.matchers))
	for i, m := range l.matchers {
		rules[i] = m.Rule()
	}
	return rules
}

// Document is one tokenized input.
type Document struct {
	ID     string
	Tokens []tokens.Token
}

// RuleTags is the tag sequence a single rule produced.
type RuleTags struct {
	Rule string
	Tags []bio.Tag
}

// Entity is a merged span with its covered text.
type Entity struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Result is the outcome of labeling one document. Err is set when the
// document could not be labeled; the other fields are then empty.
type Result struct {
	DocID     string
	RunID     string
	Tags      []bio.Tag
	PerRule   []RuleTags
	Conflicts []merge.Conflict
	Entities  []Entity
	Features  []features.Features
	Err       error
}

// Label runs every rule over doc and merges the results.
func (l *Labeler) Label(doc Document) Result {
	res := Result{DocID: doc.ID}

	seqs := make([][]bio.Tag, 0, len(l.matchers))
	for _, m := range l.matchers {
		tags, err := m.AssignBIOTags(doc.Tokens)
		if err != nil {
			l.logger.Error().Err(err).Str("doc", doc.ID).Msg("alignment failed")
			res.Err = errors.Wrapf(err, "document %q", doc.ID)
			return res
		}
		res.PerRule = append(res.PerRule, RuleTags{Rule: m.Name(), Tags: tags})
		seqs = append(seqs, tags)
	}

	merged, conflicts, err := merge.Merge(seqs...)
	if err != nil {
		res.Err = errors.Wrapf(err, "document %q", doc.ID)
		res.PerRule = nil
		return res
	}
	for _, c := range conflicts {
		l.logger.Warn().
			Str("doc", doc.ID).
			Int("position", c.Position).
			Stringer("previous", c.Previous).
			Stringer("winner", c.Winner).
			Msg("conflict BIO tag")
	}
	res.Tags = merged
	res.Conflicts = conflicts
	res.Entities = entities(doc.Tokens, merged)
	if l.features {
		res.Features = features.ExtractAll(doc.Tokens)
	}
	return res
}

func entities(toks []tokens.Token, tags []bio.Tag) []Entity {
	var out []Entity
	for _, sp := range bio.Spans(tags) {
		out = append(out, Entity{
			Label: sp.Label,
			Start: sp.Start,
			End:   sp.End,
			Text:  tokens.Join(toks[sp.Start:sp.End]),
		})
	}
	return out
}

// NewRunID returns a fresh, monotonically increasing run identifier.
func (l *Labeler) NewRunID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ulid.MustNew(ulid.Now(), l.entropy).String()
}

// LabelBatch labels docs on at most workers goroutines (NumCPU when
// workers <= 0). Results keep the order of docs and share one run ID.
// Per-document failures are reported in Result.Err. When ctx is cancelled,
// documents not yet labeled carry ctx.Err() and it is also returned.
func (l *Labeler) LabelBatch(ctx context.Context, docs []Document, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	runID := l.NewRunID()
	results := make([]Result, len(docs))

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{DocID: doc.ID, RunID: runID, Err: err}
				return err
			}
			res := l.Label(doc)
			res.RunID = runID
			results[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return results, errors.Wrapf(ctx.Err(), "run %s", runID)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	l.logger.Debug().Str("run", runID).Int("docs", len(docs)).Int("failed", failed).Msg("batch labeled")
	return results, nil
}
