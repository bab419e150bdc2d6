package report

import (
	"sort"
	"strings"
)

// Signal is the rendered severity level for one stock: advice bucket plus
// the traffic-light emoji used in message headers.
type Signal struct {
	Label string
	Emoji string
}

// SignalFor maps advice and score onto a display signal. Advice wins when
// present; the score bands cover analyzers that only emit a number.
func SignalFor(r AnalysisResult) Signal {
	advice := r.OperationAdvice
	score := r.SentimentScore

	switch {
	case advice == AdviceStrongBuy || score >= 80:
		return Signal{Label: "Strong Buy", Emoji: "💚"}
	case advice.IsBuySide() || score >= 65:
		return Signal{Label: "Buy", Emoji: "🟢"}
	case advice == AdviceHold || (score >= 55 && score < 65):
		return Signal{Label: "Hold", Emoji: "🟡"}
	case advice == AdviceWatch || (score >= 45 && score < 55):
		return Signal{Label: "Watch", Emoji: "⚪"}
	case advice == AdviceReduce || (score >= 35 && score < 45):
		return Signal{Label: "Reduce", Emoji: "🟠"}
	case advice.IsSellSide() || score < 35:
		return Signal{Label: "Sell", Emoji: "🔴"}
	default:
		return Signal{Label: "Watch", Emoji: "⚪"}
	}
}

// Stats aggregates one batch of results for the report header.
type Stats struct {
	Total    int
	Buy      int
	Hold     int
	Sell     int
	AvgScore float64
}

func Summarize(results []AnalysisResult) Stats {
	st := Stats{Total: len(results)}
	if len(results) == 0 {
		return st
	}
	sum := 0
	for _, r := range results {
		sum += r.SentimentScore
		switch {
		case r.OperationAdvice.IsBuySide():
			st.Buy++
		case r.OperationAdvice.IsSellSide():
			st.Sell++
		default:
			st.Hold++
		}
	}
	st.AvgScore = float64(sum) / float64(len(results))
	return st
}

// SortByScore returns a copy sorted by sentiment score, highest first.
// Ties keep their input order so repeated runs render identically.
func SortByScore(results []AnalysisResult) []AnalysisResult {
	sorted := make([]AnalysisResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentimentScore > sorted[j].SentimentScore
	})
	return sorted
}

// confidenceStars renders the 1..5 rating; unreported ratings show the
// analyzer's baseline of two stars.
func confidenceStars(n int) string {
	if n < 1 {
		n = 2
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("⭐", n)
}
