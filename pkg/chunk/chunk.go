package chunk

import "strings"

// Split cuts content into ordered segments whose UTF-8 byte length is at
// most budget. Cuts happen on line boundaries; joining the segments back
// with "\n" reproduces content exactly.
//
// The only exception is a single line that is by itself larger than the
// budget: it is sliced into fixed-size rune windows (budget/4 runes, the
// worst case for UTF-8) so a multi-byte rune is never split. Line
// structure inside such a line is lost, byte bounds still hold.
//
// Empty content yields no segments. Content within budget yields exactly
// one segment equal to content.
func Split(content string, budget int) []string {
	if budget <= 0 || content == "" {
		return nil
	}
	if len(content) <= budget {
		return []string{content}
	}

	var segments []string
	var acc []string
	accSize := 0

	flush := func() {
		if len(acc) == 0 {
			return
		}
		segments = append(segments, strings.Join(acc, "\n"))
		acc = acc[:0]
		accSize = 0
	}

	for _, line := range strings.Split(content, "\n") {
		if len(line) > budget {
			// Pathological: one line with no break points.
			flush()
			segments = append(segments, sliceLine(line, budget)...)
			continue
		}

		// Each line contributes its trailing break to the running size.
		lineSize := len(line) + 1
		if accSize+lineSize > budget {
			flush()
		}
		acc = append(acc, line)
		accSize += lineSize
	}
	flush()

	return segments
}

// sliceLine cuts a single oversized line into rune windows of budget/4
// runes each. A UTF-8 rune encodes to at most 4 bytes, so every window is
// guaranteed to stay within budget.
func sliceLine(line string, budget int) []string {
	limit := budget / 4
	if limit < 1 {
		limit = 1
	}

	var out []string
	runes := 0
	start := 0
	for i := range line {
		if runes == limit {
			out = append(out, line[start:i])
			start = i
			runes = 0
		}
		runes++
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}
