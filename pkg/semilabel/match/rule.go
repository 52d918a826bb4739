// Package match finds candidate entity spans in the joined text of a
// document with a regular expression, accepts them by fuzzy similarity to a
// set of reference choices, and assigns BIO tags to the covered tokens.
package match

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// DefaultThreshold is the acceptance threshold used when a rule sets none.
const DefaultThreshold = 0.9

// Rule describes one extraction rule.
type Rule struct {
	Name    string
	Label   string
	Pattern string // RE2 syntax; {SPACES} expands to SpacesPattern
	Choices []string
	// Threshold is the minimum best score / 100 for acceptance, in (0, 1].
	// Zero selects DefaultThreshold.
	Threshold   float64
	PostProcess []string        // named post-processors, see LookupPostProcess
	Post        PostProcessFunc // applied after the named chain
}

// ConfigError reports a rule rejected before any text is scanned.
type ConfigError struct {
	Rule  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("rule %q: invalid %s: %v", e.Rule, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	errEmptyLabel   = errors.New("label is empty")
	errLabelSpace   = errors.New("label contains whitespace")
	errNoChoices    = errors.New("no reference choices")
	errEmptyPattern = errors.New("pattern is empty")
)

// displayName is the rule name used in errors and logs.
func (r Rule) displayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Label
}

func (r Rule) threshold() float64 {
	if r.Threshold == 0 {
		return DefaultThreshold
	}
	return r.Threshold
}

// Validate checks a rule without compiling its pattern.
func (r Rule) Validate() error {
	name := r.displayName()
	if r.Label == "" {
		return &ConfigError{Rule: name, Field: "label", Err: errEmptyLabel}
	}
	if strings.IndexFunc(r.Label, unicode.IsSpace) >= 0 {
		return &ConfigError{Rule: name, Field: "label", Err: errLabelSpace}
	}
	if strings.TrimSpace(r.Pattern) == "" {
		return &ConfigError{Rule: name, Field: "pattern", Err: errEmptyPattern}
	}
	if len(r.Choices) == 0 {
		return &ConfigError{Rule: name, Field: "choices", Err: errNoChoices}
	}
	if t := r.Threshold; math.IsNaN(t) || t < 0 || t > 1 {
		return &ConfigError{Rule: name, Field: "threshold", Err: fmt.Errorf("%v is outside (0, 1]", t)}
	}
	return nil
}

// compilePattern applies the always-on flags: case-insensitive, multi-line
// anchors, and dot matching newlines.
func compilePattern(r Rule) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?ims)" + ExpandPattern(r.Pattern))
	if err != nil {
		return nil, &ConfigError{Rule: r.displayName(), Field: "pattern", Err: err}
	}
	return re, nil
}
