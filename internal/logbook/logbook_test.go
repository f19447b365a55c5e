package logbook

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/latexmerge/latexmerge/internal/changes"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merge.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestNilLogbookIsSilent(t *testing.T) {
	var book *Logbook
	book.Warn("dropped")
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("nil logbook must report nothing")
	}
}

func TestLogbookActsAsEngineDiagnostics(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "merge.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	src := changes.SourceFunc(func(changes.Command, []string) (changes.Decision, error) {
		return changes.DecisionAccept, nil
	})
	p := changes.NewProcessor(src, changes.WithDiagnostics(book))
	if _, err := p.Process(`\added{unbalanced`); err != nil {
		t.Fatalf("process: %v", err)
	}
	lines, total := book.Tail(1)
	if total != 1 || len(lines) != 1 {
		t.Fatalf("expected one warning, got %d", total)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], `\added`) {
		t.Fatalf("warning line = %q", lines[0])
	}
}
