package match

import (
	"regexp"
	"strings"
)

// SpacesClass matches one whitespace rune, including the no-break and
// zero-width variants found in scraped HTML. Tokens are joined with plain
// ASCII spaces, so patterns that must cross token boundaries in documents
// with mixed whitespace should use it.
const SpacesClass = `[\s\x{000b}\x{00a0}\x{1680}\x{18e0}\x{2000}-\x{200d}\x{202f}\x{205f}\x{2060}\x{3000}\x{feff}]`

// SpacesPattern matches a run of SpacesClass.
const SpacesPattern = SpacesClass + `+`

// SpacesPlaceholder is replaced by SpacesPattern in rule patterns.
const SpacesPlaceholder = "{SPACES}"

var spacesRe = regexp.MustCompile(SpacesPattern)

// ExpandPattern substitutes SpacesPlaceholder.
func ExpandPattern(pattern string) string {
	return strings.ReplaceAll(pattern, SpacesPlaceholder, SpacesPattern)
}
