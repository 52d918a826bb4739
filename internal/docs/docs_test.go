package docs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

func TestReadJSONL(t *testing.T) {
	input := `{"id": "a", "tokens": ["Postbus", "27"]}

not json
{"html": "<p>Postbus <b>27</b></p>"}
`
	var logs bytes.Buffer
	docs, err := ReadJSONL(strings.NewReader(input), "docs.jsonl", zerolog.New(&logs))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, []string{"Postbus", "27"}, tokens.Texts(docs[0].Tokens))
	assert.Equal(t, "line-4", docs[1].ID)
	assert.Equal(t, []string{"Postbus", "27"}, tokens.Texts(docs[1].Tokens))

	assert.Contains(t, logs.String(), "skipping malformed JSON")
	assert.Contains(t, logs.String(), `"line":3`)
}

func TestReadJSONLEmpty(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader("\n\n"), "empty.jsonl", zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>Postbus 27 Oostburg</p>"), 0644))

	docs, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "contact.html", docs[0].ID)
	assert.Equal(t, []string{"Postbus", "27", "Oostburg"}, tokens.Texts(docs[0].Tokens))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/docs.jsonl", zerolog.Nop())
	assert.Error(t, err)
}
