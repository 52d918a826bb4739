package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/semilabel/pkg/semilabel"
	"github.com/cognicore/semilabel/pkg/semilabel/match"
	"github.com/cognicore/semilabel/pkg/semilabel/tokens"
)

const rulesYAML = `rules:
  - name: address
    label: ADDR
    pattern: '(^|{SPACES})Postbus.*?Oostburg({SPACES}|$)'
    choices: ["Postbus 22 4500AA Oostburg"]
  - name: org
    label: ORG
    pattern: '013-witgoedreparaties\.nl'
    choices: ["013-witgoedreparaties.nl"]
    threshold: 0.8
    postprocess: [nfkc, trim]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(rulesYAML), 0.85)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}
	if rules[0].Label != "ADDR" || rules[0].Threshold != 0.85 {
		t.Errorf("Rule 0 should inherit default threshold, got %+v", rules[0])
	}
	if rules[1].Threshold != 0.8 {
		t.Errorf("Expected threshold 0.8, got %v", rules[1].Threshold)
	}
	if len(rules[1].PostProcess) != 2 || rules[1].PostProcess[0] != "nfkc" {
		t.Errorf("Unexpected postprocess chain %v", rules[1].PostProcess)
	}
}

func TestParseRulesRejects(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"zero threshold", "rules:\n  - {name: a, label: A, pattern: x, choices: [x], threshold: 0}\n", "threshold"},
		{"threshold above one", "rules:\n  - {name: a, label: A, pattern: x, choices: [x], threshold: 1.5}\n", "threshold"},
		{"no choices", "rules:\n  - {name: a, label: A, pattern: x}\n", "choices"},
		{"label with space", "rules:\n  - {name: a, label: 'A B', pattern: x, choices: [x]}\n", "label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml), match.DefaultThreshold)
			var ce *match.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, ce.Field)
			}
		})
	}
}

func TestParseRulesUnknownKey(t *testing.T) {
	_, err := ParseRules([]byte("rules:\n  - {name: a, lable: A}\n"), match.DefaultThreshold)
	if err == nil {
		t.Error("Should reject unknown keys")
	}
	_, err = ParseRules([]byte("rules: []\n"), match.DefaultThreshold)
	if err == nil {
		t.Error("Should reject an empty rule list")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules("/nonexistent/rules.yaml", match.DefaultThreshold); err == nil {
		t.Error("Should error on nonexistent rules file")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Threshold != match.DefaultThreshold {
		t.Errorf("Expected default threshold, got %v", s.Threshold)
	}
	if s.Workers <= 0 {
		t.Errorf("Expected positive workers, got %d", s.Workers)
	}
	if s.Log.Level != "info" {
		t.Errorf("Expected info log level, got %q", s.Log.Level)
	}
	if s.Features {
		t.Error("Features should default to false")
	}
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", "threshold: 0.75\nworkers: 2\nlog:\n  level: debug\n")
	t.Setenv("SEMILABEL_WORKERS", "6")
	t.Setenv("SEMILABEL_FEATURES", "true")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Threshold != 0.75 {
		t.Errorf("Expected threshold 0.75, got %v", s.Threshold)
	}
	if s.Workers != 6 {
		t.Errorf("Environment should override workers, got %d", s.Workers)
	}
	if !s.Features {
		t.Error("Environment should enable features")
	}
	if s.Log.Level != "debug" {
		t.Errorf("Expected debug, got %q", s.Log.Level)
	}
}

func TestLoadSettingsBadThreshold(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.yaml", "threshold: 0\n")
	if _, err := LoadSettings(path); err == nil {
		t.Error("Should reject threshold 0")
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.yaml", rulesYAML)
	settingsPath := writeFile(t, dir, "settings.yaml", "rules: "+rulesPath+"\nfeatures: true\n")

	comp, err := (&Loader{SettingsPath: settingsPath}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(comp.Rules) != 2 || comp.Labeler == nil {
		t.Fatalf("Unexpected components %+v", comp)
	}
	if comp.Settings.Rules != rulesPath {
		t.Errorf("Expected rules path %q, got %q", rulesPath, comp.Settings.Rules)
	}

	toks := tokens.FromStrings(strings.Fields("Bel ons: Postbus 27 4500 AA Oostburg"))
	res := comp.Labeler.Label(semilabel.Document{ID: "addr", Tokens: toks})
	if res.Err != nil {
		t.Fatalf("Label: %v", res.Err)
	}
	if got := res.Tags[2].String(); got != "B-ADDR" {
		t.Errorf("Expected B-ADDR at Postbus, got %s", got)
	}
	if len(res.Features) != len(toks) {
		t.Errorf("Expected features for every token, got %d", len(res.Features))
	}
}

func TestLoaderNoRules(t *testing.T) {
	if _, err := (&Loader{}).Load(); err == nil {
		t.Error("Should error without a rules file")
	}
	if _, err := (&Loader{RulesPath: "/nonexistent/rules.yaml"}).Load(); err == nil {
		t.Error("Should error on nonexistent rules file")
	}
}
