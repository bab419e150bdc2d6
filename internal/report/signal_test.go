package report

import "testing"

func TestSignalFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		advice Advice
		score  int
		want   string
	}{
		{name: "strong buy advice", advice: AdviceStrongBuy, score: 50, want: "Strong Buy"},
		{name: "strong buy score", advice: "", score: 85, want: "Strong Buy"},
		{name: "buy advice", advice: AdviceBuy, score: 50, want: "Buy"},
		{name: "add advice", advice: AdviceAdd, score: 50, want: "Buy"},
		{name: "buy score", advice: "", score: 70, want: "Buy"},
		{name: "hold", advice: AdviceHold, score: 60, want: "Hold"},
		{name: "hold score band", advice: "", score: 58, want: "Hold"},
		{name: "watch score band", advice: "", score: 50, want: "Watch"},
		{name: "reduce", advice: AdviceReduce, score: 40, want: "Reduce"},
		{name: "sell advice", advice: AdviceSell, score: 40, want: "Sell"},
		{name: "sell score", advice: "", score: 20, want: "Sell"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SignalFor(AnalysisResult{OperationAdvice: tt.advice, SentimentScore: tt.score})
			if got.Label != tt.want {
				t.Fatalf("SignalFor(%q, %d) = %q, want %q", tt.advice, tt.score, got.Label, tt.want)
			}
			if got.Emoji == "" {
				t.Fatal("signal missing emoji")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	results := []AnalysisResult{
		{OperationAdvice: AdviceBuy, SentimentScore: 80},
		{OperationAdvice: AdviceStrongBuy, SentimentScore: 90},
		{OperationAdvice: AdviceHold, SentimentScore: 50},
		{OperationAdvice: AdviceWatch, SentimentScore: 48},
		{OperationAdvice: AdviceSell, SentimentScore: 30},
	}
	st := Summarize(results)
	if st.Total != 5 || st.Buy != 2 || st.Hold != 2 || st.Sell != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if want := (80 + 90 + 50 + 48 + 30) / 5.0; st.AvgScore != want {
		t.Fatalf("avg = %v, want %v", st.AvgScore, want)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.AvgScore != 0 {
		t.Fatalf("empty stats = %+v", empty)
	}
}

func TestSortByScore(t *testing.T) {
	t.Parallel()
	in := []AnalysisResult{
		{Code: "a", SentimentScore: 40},
		{Code: "b", SentimentScore: 90},
		{Code: "c", SentimentScore: 40},
	}
	got := SortByScore(in)
	if got[0].Code != "b" || got[1].Code != "a" || got[2].Code != "c" {
		t.Fatalf("sorted order = %s %s %s", got[0].Code, got[1].Code, got[2].Code)
	}
	// Input must not be reordered.
	if in[0].Code != "a" {
		t.Fatal("SortByScore mutated its input")
	}
}

func TestConfidenceStars(t *testing.T) {
	t.Parallel()
	if got := confidenceStars(0); got != "⭐⭐" {
		t.Fatalf("default stars = %q", got)
	}
	if got := confidenceStars(5); got != "⭐⭐⭐⭐⭐" {
		t.Fatalf("five stars = %q", got)
	}
	if got := confidenceStars(9); got != "⭐⭐⭐⭐⭐" {
		t.Fatalf("clamped stars = %q", got)
	}
}
