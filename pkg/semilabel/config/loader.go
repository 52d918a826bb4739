// Package config loads rule files and run settings and assembles a Labeler.
package config

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cognicore/semilabel/pkg/semilabel"
	"github.com/cognicore/semilabel/pkg/semilabel/match"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	RulesPath    string // overrides the "rules" setting
	SettingsPath string
	Features     bool // forces lookalike features on
	Logger       *zerolog.Logger
}

// Components holds all loaded configuration components
type Components struct {
	Settings *Settings
	Rules    []match.Rule
	Labeler  *semilabel.Labeler
}

// Load reads settings, then rules, and compiles them into a Labeler.
func (l *Loader) Load() (*Components, error) {
	settings, err := LoadSettings(l.SettingsPath)
	if err != nil {
		return nil, errors.Wrap(err, "load settings")
	}

	path := l.RulesPath
	if path == "" {
		path = settings.Rules
	}
	if path == "" {
		return nil, errors.New("no rules file configured")
	}
	rules, err := LoadRules(path, settings.Threshold)
	if err != nil {
		return nil, errors.Wrap(err, "load rules")
	}

	settings.Rules = path
	settings.Features = settings.Features || l.Features

	labeler, err := semilabel.New(semilabel.Options{
		Rules:    rules,
		Logger:   l.Logger,
		Features: settings.Features,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build labeler")
	}

	return &Components{Settings: settings, Rules: rules, Labeler: labeler}, nil
}
