package diff

import (
	"strings"
	"testing"
)

func TestLinesEqualInput(t *testing.T) {
	a := []string{"one", "two", "three"}
	ops := Lines(a, a)
	for _, op := range ops {
		if op.Type != Equal {
			t.Fatalf("identical inputs produced op %v %q", op.Type, op.Line)
		}
	}
	if len(ops) != 3 {
		t.Errorf("ops length: got %d, want 3", len(ops))
	}
}

func TestLinesInsertOnly(t *testing.T) {
	ops := Lines(nil, []string{"a", "b"})
	if len(ops) != 2 {
		t.Fatalf("ops length: got %d, want 2", len(ops))
	}
	for _, op := range ops {
		if op.Type != Insert {
			t.Errorf("op type: got %v, want Insert", op.Type)
		}
	}
}

func TestLinesDeleteOnly(t *testing.T) {
	ops := Lines([]string{"a", "b"}, nil)
	if len(ops) != 2 {
		t.Fatalf("ops length: got %d, want 2", len(ops))
	}
	for _, op := range ops {
		if op.Type != Delete {
			t.Errorf("op type: got %v, want Delete", op.Type)
		}
	}
}

func TestLinesSingleModification(t *testing.T) {
	a := []string{"one", "two", "three"}
	b := []string{"one", "TWO", "three"}
	ops := Lines(a, b)

	var deletes, inserts []string
	for _, op := range ops {
		switch op.Type {
		case Delete:
			deletes = append(deletes, op.Line)
		case Insert:
			inserts = append(inserts, op.Line)
		}
	}
	if len(deletes) != 1 || deletes[0] != "two" {
		t.Errorf("deletes: got %v, want [two]", deletes)
	}
	if len(inserts) != 1 || inserts[0] != "TWO" {
		t.Errorf("inserts: got %v, want [TWO]", inserts)
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); got != nil {
		t.Errorf("SplitLines(\"\"): got %v, want nil", got)
	}
	if got := SplitLines("a\nb\n"); len(got) != 2 {
		t.Errorf("SplitLines trailing newline: got %v, want 2 lines", got)
	}
	if got := SplitLines("a\nb"); len(got) != 2 {
		t.Errorf("SplitLines no trailing newline: got %v, want 2 lines", got)
	}
}

func TestUnifiedIdenticalContent(t *testing.T) {
	if out := Unified("same\n", "same\n", "a/x", "b/x"); out != "" {
		t.Errorf("identical content: got %q, want empty", out)
	}
}

func TestUnifiedSingleLineChange(t *testing.T) {
	old := "one\ntwo\nthree\n"
	new := "one\nTWO\nthree\n"
	out := Unified(old, new, "a/f.txt", "b/f.txt")

	want := "--- a/f.txt\n" +
		"+++ b/f.txt\n" +
		"@@ -1,3 +1,3 @@\n" +
		" one\n" +
		"-two\n" +
		"+TWO\n" +
		" three\n"
	if out != want {
		t.Errorf("Unified:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestUnifiedTrailingNewlineOnlyChange(t *testing.T) {
	out := Unified("alpha\nomega", "alpha\nomega\n", "a/f.txt", "b/f.txt")

	want := "--- a/f.txt\n" +
		"+++ b/f.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		" alpha\n" +
		"-omega\n" +
		"\\ No newline at end of file\n" +
		"+omega\n"
	if out != want {
		t.Errorf("newline added at EOF:\ngot:\n%s\nwant:\n%s", out, want)
	}

	out = Unified("alpha\nomega\n", "alpha\nomega", "a/f.txt", "b/f.txt")
	if !strings.HasSuffix(out, "+omega\n\\ No newline at end of file\n") {
		t.Errorf("newline removed at EOF not marked:\n%s", out)
	}
}

func TestUnifiedSeparateHunks(t *testing.T) {
	var a, b []string
	for i := 0; i < 20; i++ {
		a = append(a, "line")
		b = append(b, "line")
	}
	a[0] = "start-old"
	b[0] = "start-new"
	a[19] = "end-old"
	b[19] = "end-new"

	out := Unified(strings.Join(a, "\n")+"\n", strings.Join(b, "\n")+"\n", "a/f", "b/f")
	if got := strings.Count(out, "@@"); got != 4 {
		t.Errorf("expected 2 hunks (4 @@ markers), got %d in:\n%s", got/2, out)
	}
}

func TestUnifiedAllAdditions(t *testing.T) {
	out := Unified("", "alpha\nbeta\n", "a/n.txt", "b/n.txt")
	if !strings.Contains(out, "+alpha\n+beta\n") {
		t.Errorf("all-additions diff missing added lines:\n%s", out)
	}
	if strings.Contains(out, "\n-") {
		t.Errorf("all-additions diff contains removals:\n%s", out)
	}
}
