package match

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PostProcessFunc rewrites matched text before it is compared with the
// reference choices. The matched span itself is never changed.
type PostProcessFunc func(string) string

// Identity returns s unchanged.
func Identity(s string) string { return s }

// NFKC applies Unicode compatibility composition.
func NFKC(s string) string { return norm.NFKC.String(s) }

// CollapseSpaces replaces every SpacesPattern run with one ASCII space.
func CollapseSpaces(s string) string { return spacesRe.ReplaceAllString(s, " ") }

// Normalize collapses whitespace, trims and applies NFKC.
func Normalize(s string) string {
	return NFKC(strings.TrimSpace(CollapseSpaces(s)))
}

var postProcessors = map[string]PostProcessFunc{
	"identity":  Identity,
	"nfkc":      NFKC,
	"spaces":    CollapseSpaces,
	"trim":      strings.TrimSpace,
	"lower":     strings.ToLower,
	"normalize": Normalize,
}

// PostProcessNames lists the names accepted by LookupPostProcess.
func PostProcessNames() []string {
	names := make([]string, 0, len(postProcessors))
	for name := range postProcessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPostProcess resolves a chain of named post-processors.
func LookupPostProcess(names []string) (PostProcessFunc, error) {
	fs := make([]PostProcessFunc, 0, len(names))
	for _, name := range names {
		f, ok := postProcessors[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown post-processor %q (known: %s)", name, strings.Join(PostProcessNames(), ", "))
		}
		fs = append(fs, f)
	}
	return Chain(fs...), nil
}

// Chain applies fs left to right. Nil entries are skipped.
func Chain(fs ...PostProcessFunc) PostProcessFunc {
	return func(s string) string {
		for _, f := range fs {
			if f != nil {
				s = f(s)
			}
		}
		return s
	}
}
