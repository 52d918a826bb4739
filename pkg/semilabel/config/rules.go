package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/semilabel/pkg/semilabel/match"
)

// RuleFile is the YAML layout of a rules file. Rule order is merge priority:
// later rules win.
type RuleFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one rule as written in YAML.
type RuleSpec struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Pattern     string   `yaml:"pattern"`
	Choices     []string `yaml:"choices"`
	Threshold   *float64 `yaml:"threshold"`
	PostProcess []string `yaml:"postprocess"`
}

var errZeroThreshold = errors.New("threshold must be greater than 0")

// Rule converts s, using threshold when s sets none. An explicit zero is
// rejected instead of silently meaning "default".
func (s RuleSpec) Rule(threshold float64) (match.Rule, error) {
	r := match.Rule{
		Name:        s.Name,
		Label:       s.Label,
		Pattern:     s.Pattern,
		Choices:     s.Choices,
		Threshold:   threshold,
		PostProcess: s.PostProcess,
	}
	if s.Threshold != nil {
		if *s.Threshold == 0 {
			return r, &match.ConfigError{Rule: s.Name, Field: "threshold", Err: errZeroThreshold}
		}
		r.Threshold = *s.Threshold
	}
	return r, r.Validate()
}

// ParseRules decodes a rules document. Unknown keys are an error.
func ParseRules(data []byte, threshold float64) ([]match.Rule, error) {
	var file RuleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode rules")
	}
	if len(file.Rules) == 0 {
		return nil, errors.New("no rules defined")
	}

	rules := make([]match.Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		r, err := spec.Rule(threshold)
		if err != nil {
			return nil, errors.Wrapf(err, "rules[%d]", i)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// LoadRules reads a YAML rules file.
func LoadRules(path string, threshold float64) ([]match.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := ParseRules(data, threshold)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return rules, nil
}
