// Package docs loads documents to label from JSONL or HTML files.
package docs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cognicore/semilabel/internal/htmltok"
	"github.com/cognicore/semilabel/pkg/semilabel"
	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

// Item is one JSONL record. Tokens wins over HTML when both are set.
type Item struct {
	ID     string   `json:"id"`
	Tokens []string `json:"tokens"`
	HTML   string   `json:"html"`
}

// Document converts the item, tokenizing HTML when needed. Items without an
// ID are named after their line number.
func (it Item) Document(line int) (semilabel.Document, error) {
	id := it.ID
	if id == "" {
		id = "line-" + strconv.Itoa(line)
	}
	if it.Tokens != nil {
		return semilabel.Document{ID: id, Tokens: tokens.FromStrings(it.Tokens)}, nil
	}
	toks, err := htmltok.TokenizeString(it.HTML)
	if err != nil {
		return semilabel.Document{}, errors.Wrapf(err, "document %s", id)
	}
	return semilabel.Document{ID: id, Tokens: toks}, nil
}

// ReadJSONL decodes one Item per non-blank line. Malformed lines are logged
// and skipped.
func ReadJSONL(r io.Reader, name string, logger zerolog.Logger) ([]semilabel.Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var out []semilabel.Document
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var it Item
		if err := json.Unmarshal([]byte(text), &it); err != nil {
			logger.Warn().Err(err).Str("file", name).Int("line", line).Msg("skipping malformed JSON")
			continue
		}
		doc, err := it.Document(line)
		if err != nil {
			logger.Warn().Err(err).Str("file", name).Int("line", line).Msg("skipping document")
			continue
		}
		out = append(out, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("no valid documents found in %s", name)
	}
	return out, nil
}

// Load reads path: .html/.htm files become a single document named after
// the file, anything else is read as JSONL.
func Load(path string, logger zerolog.Logger) ([]semilabel.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		toks, err := htmltok.Tokenize(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return []semilabel.Document{{ID: filepath.Base(path), Tokens: toks}}, nil
	default:
		return ReadJSONL(f, path, logger)
	}
}
