// Package htmltok turns an HTML page into the token stream consumed by the
// labeler: visible text split on Unicode whitespace, indexed in document
// order.
package htmltok

import (
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

// Tokenize reads r to EOF. Text inside script, style, noscript and template
// elements is skipped.
func Tokenize(r io.Reader) ([]tokens.Token, error) {
	z := html.NewTokenizer(r)
	var words []string
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrap(err, "tokenize html")
			}
			return tokens.FromStrings(words), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if hidden(atom.Lookup(name)) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if hidden(atom.Lookup(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words = append(words, strings.FieldsFunc(string(z.Text()), unicode.IsSpace)...)
			}
		}
	}
}

// TokenizeString is Tokenize over a string.
func TokenizeString(s string) ([]tokens.Token, error) {
	return Tokenize(strings.NewReader(s))
}

func hidden(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}
