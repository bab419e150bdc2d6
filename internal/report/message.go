package report

import (
	"fmt"
	"strings"
	"time"

	"stockpulse/pkg/chunk"
)

// RenderBatchSummary builds the short header message sent before the
// per-stock messages of a batch.
func RenderBatchSummary(results []AnalysisResult, at time.Time) string {
	st := Summarize(results)

	lines := []string{
		fmt.Sprintf("## 📅 %s Decision Dashboard", at.Format("2006-01-02")),
		"",
		fmt.Sprintf("> **%d** stocks analyzed", st.Total),
		fmt.Sprintf("> 🟢 buy: %d", st.Buy),
		fmt.Sprintf("> 🟡 hold: %d", st.Hold),
		fmt.Sprintf("> 🔴 sell: %d", st.Sell),
		"",
		"👇 *per-stock details follow in separate messages*",
	}
	return strings.Join(lines, "\n")
}

// RenderStockMessage builds one compact per-stock message for the
// summary-then-detail batch. It stays well within a single webhook
// message and front-loads what a reader acts on: signal, one-line call,
// risks, levels.
func RenderStockMessage(r AnalysisResult, at time.Time) string {
	sig := SignalFor(r)
	d := r.Dashboard

	var intel *Intelligence
	var core *CoreConclusion
	var plan *BattlePlan
	if d != nil {
		intel = d.Intelligence
		core = d.CoreConclusion
		plan = d.BattlePlan
	}

	var lines []string
	lines = append(lines,
		fmt.Sprintf("### %s **%s** | %s(%s)", sig.Emoji, sig.Label, r.DisplayName(), r.Code),
		"")

	oneSentence := r.AnalysisSummary
	if core != nil && core.OneSentence != "" {
		oneSentence = core.OneSentence
	}
	if oneSentence != "" {
		lines = append(lines, fmt.Sprintf("📌 **%s**", oneSentence), "")
	}

	lines = append(lines, fmt.Sprintf("Score: %d | Trend: %s", r.SentimentScore, r.TrendPrediction), "")

	var info []string
	if intel != nil && intel.EarningsOutlook != "" {
		info = append(info, fmt.Sprintf("📊 Earnings: %s", intel.EarningsOutlook))
	}
	if intel != nil && intel.SentimentSummary != "" {
		info = append(info, fmt.Sprintf("💭 Sentiment: %s", intel.SentimentSummary))
	}
	if len(info) > 0 {
		lines = append(lines, info...)
		lines = append(lines, "")
	}

	if intel != nil && len(intel.RiskAlerts) > 0 {
		lines = append(lines, "🚨 **Risks**:")
		for _, risk := range intel.RiskAlerts {
			lines = append(lines, fmt.Sprintf("   • %s", risk))
		}
		lines = append(lines, "")
	}
	if intel != nil && len(intel.PositiveCatalysts) > 0 {
		lines = append(lines, "✨ **Catalysts**:")
		for _, cat := range intel.PositiveCatalysts {
			lines = append(lines, fmt.Sprintf("   • %s", cat))
		}
		lines = append(lines, "")
	}

	if plan != nil && plan.SniperPoints != nil {
		sp := plan.SniperPoints
		var points []string
		if sp.IdealBuy != "" {
			points = append(points, fmt.Sprintf("🎯 entry: **%s**", sp.IdealBuy))
		}
		if sp.StopLoss != "" {
			points = append(points, fmt.Sprintf("🛑 stop: %s", sp.StopLoss))
		}
		if sp.TakeProfit != "" {
			points = append(points, fmt.Sprintf("🎊 target: %s", sp.TakeProfit))
		}
		if len(points) > 0 {
			lines = append(lines, strings.Join(points, " | "), "")
		}
	}

	if core != nil && core.PositionAdvice != nil {
		pa := core.PositionAdvice
		if pa.NoPosition != "" {
			lines = append(lines, fmt.Sprintf("🆕 no position: %s", pa.NoPosition))
		}
		if pa.HasPosition != "" {
			lines = append(lines, fmt.Sprintf("💼 holding: %s", pa.HasPosition))
		}
		lines = append(lines, "")
	}

	if plan != nil && len(plan.ActionChecklist) > 0 {
		// Only failed checks are worth a reader's attention here.
		var failed []string
		for _, check := range plan.ActionChecklist {
			if strings.HasPrefix(check, "❌") || strings.HasPrefix(check, "⚠️") {
				failed = append(failed, "   "+check)
			}
		}
		if len(failed) > 0 {
			lines = append(lines, "**Failed checks**:")
			lines = append(lines, failed...)
			lines = append(lines, "")
		}
	}

	lines = append(lines, fmt.Sprintf("*generated at %s*", at.Format("15:04")))
	return strings.Join(lines, "\n")
}

// RenderDigest builds the compact whole-watchlist digest that must stay
// within a single message: one truncated line cluster per stock.
func RenderDigest(results []AnalysisResult, at time.Time) string {
	st := Summarize(results)

	lines := []string{
		fmt.Sprintf("## 📅 %s Watchlist Report", at.Format("2006-01-02")),
		"",
		fmt.Sprintf("> **%d** stocks | 🟢 buy: %d 🟡 hold: %d 🔴 sell: %d | avg: %.0f",
			st.Total, st.Buy, st.Hold, st.Sell, st.AvgScore),
		"",
	}

	for _, r := range SortByScore(results) {
		sig := SignalFor(r)
		lines = append(lines,
			fmt.Sprintf("### %s %s(%s)", sig.Emoji, r.DisplayName(), r.Code),
			fmt.Sprintf("**%s** | score: %d | %s", r.OperationAdvice.Label(), r.SentimentScore, r.TrendPrediction))
		if r.BuyReason != "" {
			lines = append(lines, fmt.Sprintf("💡 %s", chunk.TruncRunes(r.BuyReason, 80)))
		}
		if r.KeyPoints != "" {
			lines = append(lines, fmt.Sprintf("🎯 %s", chunk.TruncRunes(r.KeyPoints, 60)))
		}
		if r.RiskWarning != "" {
			lines = append(lines, fmt.Sprintf("⚠️ %s", chunk.TruncRunes(r.RiskWarning, 50)))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"---",
		"*AI generated, for reference only, not investment advice*")
	return strings.Join(lines, "\n")
}

// AlertKind selects the prefix emoji for BuildAlert.
type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertWarning AlertKind = "warning"
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

// BuildAlert builds a simple one-off notification message.
func BuildAlert(title, body string, kind AlertKind) string {
	emoji := "📢"
	switch kind {
	case AlertInfo:
		emoji = "ℹ️"
	case AlertWarning:
		emoji = "⚠️"
	case AlertError:
		emoji = "❌"
	case AlertSuccess:
		emoji = "✅"
	}
	return fmt.Sprintf("%s **%s**\n\n%s", emoji, title, body)
}
