package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEngineLiteralAndRegexRules(t *testing.T) {
	t.Parallel()

	rulesPath := writeRules(t, `
# literal
pull request => PR
# regex with default case-insensitive
s/\bdeep\s*gram\b/Deepgram/g
`)

	engine, err := NewEngine(rulesPath)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	output, err := engine.Apply("deep gram pull request")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "Deepgram PR" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestEngineIteratesUntilStable(t *testing.T) {
	t.Parallel()

	rulesPath := writeRules(t, `
a => b
b => c
`)

	engine, err := NewEngine(rulesPath)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	output, err := engine.Apply("a")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "c" {
		t.Fatalf("expected c, got %q", output)
	}
}

func TestEngineLiteralRuleStartingWithS(t *testing.T) {
	t.Parallel()

	rulesPath := writeRules(t, `
solid complaint => SOLID-compliant
`)

	engine, err := NewEngine(rulesPath)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	output, err := engine.Apply("solid complaint plan")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "SOLID-compliant plan" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestEngineMissingFilePassesThrough(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(filepath.Join(t.TempDir(), "does-not-exist.rules"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}

	output, err := engine.Apply("unchanged")
	if err != nil || output != "unchanged" {
		t.Fatalf("unexpected result: %q %v", output, err)
	}
}

func TestRegexRuleWithoutGlobalReplacesFirstMatchOnly(t *testing.T) {
	t.Parallel()

	r, err := parseRegexRule(`s/foo/bar/`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if output := r.apply("foo foo"); output != "bar foo" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestParseRegexRuleUnsupportedFlag(t *testing.T) {
	t.Parallel()

	if _, err := parseRegexRule(`s/foo/bar/x`); err == nil {
		t.Fatalf("expected unsupported flag error")
	}
}

func TestEngineRejectsUnsupportedLine(t *testing.T) {
	t.Parallel()

	rulesPath := writeRules(t, "not-a-rule\n")
	if _, err := NewEngine(rulesPath); err == nil {
		t.Fatalf("expected unsupported rule format error")
	}
}

func writeRules(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "substitutions.rules")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}
