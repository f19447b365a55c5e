package changes

import "testing"

func TestMatchBracesSimpleGroup(t *testing.T) {
	content, end, ok := MatchBraces("{hello} world", 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if content != "hello" {
		t.Fatalf("content = %q, want %q", content, "hello")
	}
	if end != 7 {
		t.Fatalf("end = %d, want 7", end)
	}
}

func TestMatchBracesEmptyGroup(t *testing.T) {
	content, end, ok := MatchBraces("{}", 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if content != "" {
		t.Fatalf("content = %q, want empty", content)
	}
	if end != 2 {
		t.Fatalf("end = %d, want 2", end)
	}
}

func TestMatchBracesNested(t *testing.T) {
	text := `{\emph{deep {deeper}} tail}rest`
	content, end, ok := MatchBraces(text, 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if want := `\emph{deep {deeper}} tail`; content != want {
		t.Fatalf("content = %q, want %q", content, want)
	}
	if text[end:] != "rest" {
		t.Fatalf("remainder = %q, want %q", text[end:], "rest")
	}
}

func TestMatchBracesDeepNesting(t *testing.T) {
	// Ten levels of nesting must resolve to the outermost close.
	text := ""
	for i := 0; i < 10; i++ {
		text += "{a"
	}
	for i := 0; i < 10; i++ {
		text += "}"
	}
	content, end, ok := MatchBraces(text, 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if end != len(text) {
		t.Fatalf("end = %d, want %d", end, len(text))
	}
	if content != text[1:len(text)-1] {
		t.Fatalf("content = %q, want inner text", content)
	}
}

func TestMatchBracesAdjacentSiblings(t *testing.T) {
	text := "{first}{second}"
	content, end, ok := MatchBraces(text, 0)
	if !ok || content != "first" {
		t.Fatalf("first group = %q ok=%v, want %q", content, ok, "first")
	}
	content, end, ok = MatchBraces(text, end)
	if !ok || content != "second" {
		t.Fatalf("second group = %q ok=%v, want %q", content, ok, "second")
	}
	if end != len(text) {
		t.Fatalf("end = %d, want %d", end, len(text))
	}
}

func TestMatchBracesFailures(t *testing.T) {
	if _, _, ok := MatchBraces("no braces", 0); ok {
		t.Fatalf("non-brace start must not match")
	}
	if _, _, ok := MatchBraces("{unclosed", 0); ok {
		t.Fatalf("unbalanced group must not match")
	}
	if _, _, ok := MatchBraces("{}", 5); ok {
		t.Fatalf("out-of-range position must not match")
	}
	if _, _, ok := MatchBraces("{a{b}", 0); ok {
		t.Fatalf("group that never returns to depth zero must not match")
	}
}
