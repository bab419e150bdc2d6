package chunk

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPaginateSinglePassthrough(t *testing.T) {
	t.Parallel()
	in := []string{"just one segment"}
	got := Paginate(in, 4096)
	if len(got) != 1 || got[0] != in[0] {
		t.Fatalf("Paginate(single) = %v, want unmodified input", got)
	}
	if got := Paginate(nil, 4096); got != nil {
		t.Fatalf("Paginate(nil) = %v, want nil", got)
	}
}

func TestPaginateMarkers(t *testing.T) {
	t.Parallel()
	in := []string{"first", "second", "third"}
	got := Paginate(in, 4096)
	if len(got) != 3 {
		t.Fatalf("got %d segments, want 3", len(got))
	}
	for i, s := range got {
		wantPrefix := fmt.Sprintf("(%d/3)\n", i+1)
		if !strings.HasPrefix(s, wantPrefix) {
			t.Fatalf("segment %d = %q, want prefix %q", i, s, wantPrefix)
		}
		if body := strings.TrimPrefix(s, wantPrefix); body != in[i] {
			t.Fatalf("segment %d body = %q, want %q", i, body, in[i])
		}
	}
}

func TestPaginateScenario(t *testing.T) {
	t.Parallel()
	// 5000 bytes, budget 2000: three segments marked (1/3)..(3/3),
	// each under the 4096 hard limit.
	var b strings.Builder
	for b.Len() < 5000 {
		b.WriteString(strings.Repeat("m", 50))
		b.WriteString("\n")
	}
	content := strings.TrimSuffix(b.String(), "\n")

	segments := Split(content, 2000)
	if len(segments) != 3 {
		t.Fatalf("Split produced %d segments, want 3", len(segments))
	}
	pages := Paginate(segments, 4096)
	for i, p := range pages {
		if len(p) > 4096 {
			t.Fatalf("page %d is %d bytes, hard limit 4096", i, len(p))
		}
		if !strings.HasPrefix(p, fmt.Sprintf("(%d/3)\n", i+1)) {
			t.Fatalf("page %d missing marker: %q", i, p[:16])
		}
	}
}

func TestPaginateTruncationValve(t *testing.T) {
	t.Parallel()
	// A segment that exceeds the hard limit once the marker is added gets
	// its body truncated, keeping the marker intact.
	big := strings.Repeat("风", 2000) // 6000 bytes
	in := []string{big, "ok"}
	got := Paginate(in, 4096)

	if !strings.HasPrefix(got[0], "(1/2)\n") {
		t.Fatalf("marker lost on truncated segment: %q", got[0][:16])
	}
	if len(got[0]) > 4096 {
		t.Fatalf("truncated segment is %d bytes, hard limit 4096", len(got[0]))
	}
	if !strings.HasSuffix(got[0], truncNotice) {
		t.Fatalf("missing truncation notice: %q", got[0][len(got[0])-24:])
	}
	if !utf8.ValidString(got[0]) {
		t.Fatal("truncation split a rune")
	}
	if got[1] != "(2/2)\nok" {
		t.Fatalf("untouched segment mangled: %q", got[1])
	}
}
