package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/latexmerge/latexmerge/internal/decision"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(body)), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindFallsBackToDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Find("", filepath.Join(dir, "paper.tex"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	def, overrides := cfg.Policies()
	if def != decision.Ask {
		t.Fatalf("default policy = %v, want ask", def)
	}
	if len(overrides) != 0 {
		t.Fatalf("expected no overrides, got %v", overrides)
	}
	if !cfg.BackupEnabled() {
		t.Fatalf("backup must default to enabled")
	}
}

func TestFindParsesYamlBesideInput(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: 1
default_policy: accept
commands:
  comment: reject
  highlight: keep
backup: false
log_file: merge.log
`)
	cfg, err := Find("", filepath.Join(dir, "paper.tex"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	def, overrides := cfg.Policies()
	if def != decision.Accept {
		t.Fatalf("default policy = %v, want accept", def)
	}
	if overrides["comment"] != decision.Reject || overrides["highlight"] != decision.Keep {
		t.Fatalf("overrides = %v", overrides)
	}
	if cfg.BackupEnabled() {
		t.Fatalf("backup must honor an explicit false")
	}
	if cfg.LogFile != "merge.log" {
		t.Fatalf("log_file = %q", cfg.LogFile)
	}
}

func TestLoadRejectsUnknownCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: 1
commands:
  footnote: accept
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "footnote") {
		t.Fatalf("expected unknown-command error, got %v", err)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: 1
default_policy: sometimes
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown-policy error")
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `version: 2`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected version error")
	}
}
