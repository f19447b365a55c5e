package changes

import "testing"

func TestLookupKnowsEveryRegisteredCommand(t *testing.T) {
	for _, name := range Names() {
		cmd, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missed a registered command", name)
		}
		if cmd.Name != name {
			t.Fatalf("Lookup(%q).Name = %q", name, cmd.Name)
		}
		if cmd.NumArgs < 1 {
			t.Fatalf("%s: NumArgs = %d, want >= 1", name, cmd.NumArgs)
		}
	}
	if _, ok := Lookup("footnote"); ok {
		t.Fatalf("Lookup must reject commands outside the change set")
	}
}

func TestTransformSemantics(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		accept string
		reject string
	}{
		{"added", []string{"new"}, "new", ""},
		{"deleted", []string{"old"}, "", "old"},
		{"replaced", []string{"new", "old"}, "new", "old"},
		{"highlight", []string{"text"}, "text", "text"},
		{"comment", []string{"note"}, "", ""},
	}
	for _, tc := range cases {
		cmd, ok := Lookup(tc.name)
		if !ok {
			t.Fatalf("missing command %q", tc.name)
		}
		if got := cmd.Accept(tc.args); got != tc.accept {
			t.Fatalf("%s accept = %q, want %q", tc.name, got, tc.accept)
		}
		if got := cmd.Reject(tc.args); got != tc.reject {
			t.Fatalf("%s reject = %q, want %q", tc.name, got, tc.reject)
		}
	}
}
