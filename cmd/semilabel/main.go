package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cognicore/semilabel/internal/docs"
	"github.com/cognicore/semilabel/internal/logging"
	"github.com/cognicore/semilabel/pkg/semilabel"
	"github.com/cognicore/semilabel/pkg/semilabel/bio"
	"github.com/cognicore/semilabel/pkg/semilabel/config"
	"github.com/cognicore/semilabel/pkg/semilabel/features"
	"github.com/cognicore/semilabel/pkg/semilabel/match"
	"github.com/cognicore/semilabel/pkg/semilabel/merge"
	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

const usage = `usage: semilabel <command> [flags]

commands:
  label     tag documents with the configured rules, one JSON line per document
  annotate  print documents with accepted spans wrapped in boundary markers
  encode    convert marker-annotated lines to token<TAB>tag pairs
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "label":
		err = runLabel(ctx, os.Args[2:], os.Stdout, os.Stderr)
	case "annotate":
		err = runAnnotate(os.Args[2:], os.Stdout, os.Stderr)
	case "encode":
		err = runEncode(os.Args[2:], os.Stdin, os.Stdout)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "semilabel:", err)
		os.Exit(1)
	}
}

type labelFlags struct {
	rules    string
	input    string
	config   string
	out      string
	logLevel string
	workers  int
	features bool
}

func parseLabelFlags(name string, args []string, stderr io.Writer) (*labelFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &labelFlags{}
	fs.StringVar(&f.rules, "rules", "", "Rules YAML file (or the \"rules\" setting)")
	fs.StringVar(&f.input, "input", "", "Input .jsonl or .html file (required)")
	fs.StringVar(&f.config, "config", "", "Settings file (optional)")
	fs.StringVar(&f.out, "out", "", "Output file (default stdout)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level, overrides the log.level setting")
	fs.IntVar(&f.workers, "workers", 0, "Parallel documents, overrides the workers setting")
	fs.BoolVar(&f.features, "features", false, "Emit lookalike features per token")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.input == "" {
		return nil, errors.New("--input required")
	}
	return f, nil
}

// setup loads settings and rules and returns the labeler with its logger.
func setup(f *labelFlags, stderr io.Writer) (*config.Components, zerolog.Logger, error) {
	settings, err := config.LoadSettings(f.config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := settings.Log.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	logger, err := logging.New(level, stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	loader := config.Loader{
		RulesPath:    f.rules,
		SettingsPath: f.config,
		Features:     f.features,
		Logger:       &logger,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, logger, errors.Wrap(err, "failed to load configuration")
	}
	logger.Info().Int("rules", len(comp.Rules)).Str("file", comp.Settings.Rules).Msg("loaded rules")
	return comp, logger, nil
}

// record is one line of label output.
type record struct {
	ID        string              `json:"id"`
	RunID     string              `json:"run_id"`
	Tokens    []string            `json:"tokens"`
	Tags      []bio.Tag           `json:"tags"`
	Entities  []semilabel.Entity  `json:"entities"`
	Conflicts []string            `json:"conflicts"`
	Features  []features.Features `json:"features,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func newRecord(doc semilabel.Document, res semilabel.Result) record {
	rec := record{
		ID:        res.DocID,
		RunID:     res.RunID,
		Tokens:    tokens.Texts(doc.Tokens),
		Tags:      res.Tags,
		Entities:  res.Entities,
		Conflicts: conflictStrings(res.Conflicts),
		Features:  res.Features,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	if rec.Tags == nil {
		rec.Tags = []bio.Tag{}
	}
	if rec.Entities == nil {
		rec.Entities = []semilabel.Entity{}
	}
	return rec
}

func conflictStrings(cs []merge.Conflict) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func runLabel(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseLabelFlags("label", args, stderr)
	if err != nil {
		return err
	}
	comp, logger, err := setup(f, stderr)
	if err != nil {
		return err
	}

	documents, err := docs.Load(f.input, logger)
	if err != nil {
		return errors.Wrap(err, "failed to load documents")
	}
	logger.Info().Msgf("Loaded %d documents from %s", len(documents), f.input)

	workers := comp.Settings.Workers
	if f.workers > 0 {
		workers = f.workers
	}
	results, err := comp.Labeler.LabelBatch(ctx, documents, workers)
	if err != nil {
		return err
	}

	w := stdout
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return errors.Wrapf(err, "create %s", f.out)
		}
		defer file.Close()
		w = file
	}
	failed, err := writeRecords(w, documents, results)
	if err != nil {
		return err
	}
	logger.Info().Str("run", runID(results)).Msgf("Labeled %d/%d documents", len(results)-failed, len(results))
	return nil
}

func writeRecords(w io.Writer, documents []semilabel.Document, results []semilabel.Result) (failed int, err error) {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, res := range results {
		if res.Err != nil {
			failed++
		}
		if err := enc.Encode(newRecord(documents[i], res)); err != nil {
			return failed, errors.Wrap(err, "write output")
		}
	}
	return failed, bw.Flush()
}

func runID(results []semilabel.Result) string {
	if len(results) == 0 {
		return ""
	}
	return results[0].RunID
}

func runAnnotate(args []string, stdout, stderr io.Writer) error {
	f, err := parseLabelFlags("annotate", args, stderr)
	if err != nil {
		return err
	}
	comp, logger, err := setup(f, stderr)
	if err != nil {
		return err
	}
	documents, err := docs.Load(f.input, logger)
	if err != nil {
		return errors.Wrap(err, "failed to load documents")
	}
	return annotate(stdout, comp.Rules, documents)
}

func annotate(w io.Writer, rules []match.Rule, documents []semilabel.Document) error {
	matchers := make([]*match.Matcher, len(rules))
	for i, r := range rules {
		m, err := match.Compile(r)
		if err != nil {
			return err
		}
		matchers[i] = m
	}
	for _, doc := range documents {
		for _, m := range matchers {
			text, err := m.Annotate(doc.Tokens)
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\terror: %v\n", doc.ID, m.Name(), err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", doc.ID, m.Name(), strings.Join(strings.Fields(text), " "))
		}
	}
	return nil
}

func runEncode(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	input := fs.String("input", "", "Marker-annotated text file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r := stdin
	if *input != "" {
		file, err := os.Open(*input)
		if err != nil {
			return errors.Wrapf(err, "open %s", *input)
		}
		defer file.Close()
		r = file
	}
	return encodeLines(r, stdout)
}

// encodeLines treats every non-blank line as one document and prints its
// tokens CoNLL style, documents separated by a blank line.
func encodeLines(r io.Reader, w io.Writer) error {
	enc := bio.NewEncoder()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	bw := bufio.NewWriter(w)
	line, written := 0, 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		tagged, err := enc.Encode(fields)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if written > 0 {
			bw.WriteString("\n")
		}
		for _, t := range tagged {
			fmt.Fprintf(bw, "%s\t%s\n", t.Token, t.Tag)
		}
		written++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
