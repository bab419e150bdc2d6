package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitEmpty(t *testing.T) {
	t.Parallel()
	if got := Split("", 2000); got != nil {
		t.Fatalf("Split of empty content = %v, want nil", got)
	}
}

func TestSplitUnderBudget(t *testing.T) {
	t.Parallel()
	content := "line one\nline two"
	got := Split(content, 2000)
	if len(got) != 1 || got[0] != content {
		t.Fatalf("Split = %v, want single segment equal to content", got)
	}
}

func TestSplitExactBudgetBoundary(t *testing.T) {
	t.Parallel()
	// Content exactly at budget: one segment. One byte over: two.
	const budget = 100
	head := strings.Repeat("a", budget-2)
	exact := head + "\nx" // exactly budget bytes
	if got := Split(exact, budget); len(got) != 1 {
		t.Fatalf("exact-budget content: %d segments, want 1", len(got))
	}
	over := head + "\nxy" // budget+1 bytes, last line forces a flush
	got := Split(over, budget)
	if len(got) != 2 {
		t.Fatalf("one-over content: %d segments, want 2 (%q)", len(got), got)
	}
	if got[0] != head || got[1] != "xy" {
		t.Fatalf("unexpected split: %q", got)
	}
}

func TestSplitReconstructs(t *testing.T) {
	t.Parallel()
	// ~5000 bytes of line-structured text against a 2000-byte budget.
	var b strings.Builder
	for i := 0; b.Len() < 5000; i++ {
		b.WriteString(strings.Repeat("x", 40+i%17))
		b.WriteString("\n")
	}
	content := strings.TrimSuffix(b.String(), "\n")

	const budget = 2000
	segments := Split(content, budget)
	if len(segments) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segments))
	}
	for i, s := range segments {
		if len(s) > budget {
			t.Fatalf("segment %d is %d bytes, budget %d", i, len(s), budget)
		}
	}
	if got := strings.Join(segments, "\n"); got != content {
		t.Fatalf("joined segments do not reproduce content (%d vs %d bytes)", len(got), len(content))
	}
}

func TestSplitMultiByteLines(t *testing.T) {
	t.Parallel()
	// CJK text: 3 bytes per rune. No segment may cut a rune.
	line := strings.Repeat("涨", 120) // 360 bytes per line
	content := strings.Join([]string{line, line, line, line}, "\n")

	segments := Split(content, 500)
	if len(segments) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segments))
	}
	for i, s := range segments {
		if len(s) > 500 {
			t.Fatalf("segment %d is %d bytes, budget 500", i, len(s))
		}
		if !utf8.ValidString(s) {
			t.Fatalf("segment %d contains a split rune", i)
		}
	}
	if strings.Join(segments, "\n") != content {
		t.Fatal("joined segments do not reproduce content")
	}
}

func TestSplitOversizedLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
	}{
		{name: "ascii", line: strings.Repeat("a", 10000)},
		{name: "cjk", line: strings.Repeat("股", 4000)},
		{name: "mixed", line: strings.Repeat("a股b票", 1500)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			const budget = 2000
			segments := Split(tt.line, budget)
			if len(segments) < 2 {
				t.Fatalf("expected forced slicing, got %d segments", len(segments))
			}
			var joined strings.Builder
			for i, s := range segments {
				if len(s) > budget {
					t.Fatalf("segment %d is %d bytes, budget %d", i, len(s), budget)
				}
				if !utf8.ValidString(s) {
					t.Fatalf("segment %d contains a split rune", i)
				}
				joined.WriteString(s)
			}
			// Forced slices carry no separators; plain concatenation restores the line.
			if joined.String() != tt.line {
				t.Fatal("concatenated slices do not reproduce the line")
			}
		})
	}
}

func TestSplitOversizedLineFlushesPending(t *testing.T) {
	t.Parallel()
	content := "short line\n" + strings.Repeat("z", 300)
	segments := Split(content, 100)
	if len(segments) < 2 {
		t.Fatalf("expected flush + slices, got %d segments", len(segments))
	}
	if segments[0] != "short line" {
		t.Fatalf("pending lines not flushed first: %q", segments[0])
	}
}

func TestTruncRunes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "hello", n: 10, want: "hello"},
		{in: "hello", n: 5, want: "hello"},
		{in: "hello", n: 4, want: "hell…"},
		{in: "涨停板", n: 2, want: "涨停…"},
		{in: "abc", n: 0, want: ""},
	}
	for _, tt := range tests {
		if got := TruncRunes(tt.in, tt.n); got != tt.want {
			t.Fatalf("TruncRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCutRunes(t *testing.T) {
	t.Parallel()
	if got := cutRunes("涨停板", 2); got != "涨停" {
		t.Fatalf("cutRunes = %q, want 涨停", got)
	}
	if got := cutRunes("ab", 5); got != "ab" {
		t.Fatalf("cutRunes = %q, want ab", got)
	}
}
