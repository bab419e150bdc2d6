package chunk

import "fmt"

// Truncation valve for segments that exceed the hard limit even after
// chunking left headroom for the marker. Not expected to trigger in
// normal operation.
const (
	truncBodyRunes = 1000
	truncNotice    = "\n...(truncated)"
)

// Paginate prefixes each of N > 1 segments with a "(i/N)" marker line.
// A single segment is returned unmodified.
//
// After the marker is added each segment is re-measured against hardMax,
// the transport's absolute byte ceiling. A segment still over the ceiling
// has its body (never the marker) cut to a fixed safe rune length and a
// truncation notice appended, trading completeness for deliverability.
func Paginate(segments []string, hardMax int) []string {
	if len(segments) <= 1 {
		return segments
	}

	n := len(segments)
	out := make([]string, n)
	for i, seg := range segments {
		marked := fmt.Sprintf("(%d/%d)\n%s", i+1, n, seg)
		if hardMax > 0 && len(marked) > hardMax {
			marked = fmt.Sprintf("(%d/%d)\n%s%s", i+1, n, cutRunes(seg, truncBodyRunes), truncNotice)
		}
		out[i] = marked
	}
	return out
}
