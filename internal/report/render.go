package report

import (
	"fmt"
	"strings"
	"time"

	"stockpulse/pkg/chunk"
)

// RenderDailyReport builds the full markdown daily report: header,
// aggregate stats table, then one detailed section per stock sorted by
// score descending.
func RenderDailyReport(results []AnalysisResult, at time.Time) string {
	date := at.Format("2006-01-02")
	st := Summarize(results)

	var b strings.Builder
	fmt.Fprintf(&b, "# 📅 %s Watchlist Analysis Report\n\n", date)
	fmt.Fprintf(&b, "> **%d** stocks analyzed | generated at %s\n\n", st.Total, at.Format("15:04:05"))
	b.WriteString("---\n\n")

	b.WriteString("## 📊 Advice Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| 🟢 Buy/Add | **%d** |\n", st.Buy)
	fmt.Fprintf(&b, "| 🟡 Hold/Watch | **%d** |\n", st.Hold)
	fmt.Fprintf(&b, "| 🔴 Reduce/Sell | **%d** |\n", st.Sell)
	fmt.Fprintf(&b, "| 📈 Average score | **%.1f** |\n\n", st.AvgScore)
	b.WriteString("---\n\n")
	b.WriteString("## 📈 Per-Stock Analysis\n\n")

	for _, r := range SortByScore(results) {
		writeDailySection(&b, r)
	}

	fmt.Fprintf(&b, "\n*Report generated at %s*", at.Format("2006-01-02 15:04:05"))
	return b.String()
}

func writeDailySection(b *strings.Builder, r AnalysisResult) {
	sig := SignalFor(r)
	fmt.Fprintf(b, "### %s %s (%s)\n\n", sig.Emoji, r.DisplayName(), r.Code)
	fmt.Fprintf(b, "**Advice: %s** | **Score: %d** | **Trend: %s** | **Confidence: %s**\n\n",
		r.OperationAdvice.Label(), r.SentimentScore, r.TrendPrediction, confidenceStars(r.Confidence))

	if r.KeyPoints != "" {
		fmt.Fprintf(b, "**🎯 Key points**: %s\n\n", r.KeyPoints)
	}
	if r.BuyReason != "" {
		fmt.Fprintf(b, "**💡 Rationale**: %s\n\n", r.BuyReason)
	}
	if r.TrendAnalysis != "" {
		fmt.Fprintf(b, "#### 📉 Trend\n%s\n\n", r.TrendAnalysis)
	}

	var outlook []string
	if r.ShortTermOutlook != "" {
		outlook = append(outlook, fmt.Sprintf("- **Short term (1-3 days)**: %s", r.ShortTermOutlook))
	}
	if r.MediumTermOutlook != "" {
		outlook = append(outlook, fmt.Sprintf("- **Medium term (1-2 weeks)**: %s", r.MediumTermOutlook))
	}
	if len(outlook) > 0 {
		fmt.Fprintf(b, "#### 🔮 Outlook\n%s\n\n", strings.Join(outlook, "\n"))
	}

	var tech []string
	if r.TechnicalAnalysis != "" {
		tech = append(tech, fmt.Sprintf("**Overall**: %s", r.TechnicalAnalysis))
	}
	if r.MAAnalysis != "" {
		tech = append(tech, fmt.Sprintf("**Moving averages**: %s", r.MAAnalysis))
	}
	if r.VolumeAnalysis != "" {
		tech = append(tech, fmt.Sprintf("**Volume**: %s", r.VolumeAnalysis))
	}
	if r.PatternAnalysis != "" {
		tech = append(tech, fmt.Sprintf("**Pattern**: %s", r.PatternAnalysis))
	}
	if len(tech) > 0 {
		fmt.Fprintf(b, "#### 📊 Technicals\n%s\n\n", strings.Join(tech, "\n"))
	}

	var fund []string
	if r.FundamentalAnalysis != "" {
		fund = append(fund, r.FundamentalAnalysis)
	}
	if r.SectorPosition != "" {
		fund = append(fund, fmt.Sprintf("**Sector position**: %s", r.SectorPosition))
	}
	if r.CompanyHighlights != "" {
		fund = append(fund, fmt.Sprintf("**Company highlights**: %s", r.CompanyHighlights))
	}
	if len(fund) > 0 {
		fmt.Fprintf(b, "#### 🏢 Fundamentals\n%s\n\n", strings.Join(fund, "\n"))
	}

	var news []string
	if r.NewsSummary != "" {
		news = append(news, fmt.Sprintf("**News**: %s", r.NewsSummary))
	}
	if r.MarketSentiment != "" {
		news = append(news, fmt.Sprintf("**Sentiment**: %s", r.MarketSentiment))
	}
	if r.HotTopics != "" {
		news = append(news, fmt.Sprintf("**Related topics**: %s", r.HotTopics))
	}
	if len(news) > 0 {
		fmt.Fprintf(b, "#### 📰 News & Sentiment\n%s\n\n", strings.Join(news, "\n"))
	}

	if r.AnalysisSummary != "" {
		fmt.Fprintf(b, "#### 📝 Summary\n%s\n\n", r.AnalysisSummary)
	}
	if r.RiskWarning != "" {
		fmt.Fprintf(b, "⚠️ **Risk warning**: %s\n\n", r.RiskWarning)
	}
	if r.SearchPerformed {
		b.WriteString("*🔍 Web search performed*\n")
	}
	if r.DataSources != "" {
		fmt.Fprintf(b, "*📋 Data sources: %s*\n", r.DataSources)
	}
	if !r.Success && r.ErrorMessage != "" {
		fmt.Fprintf(b, "\n❌ **Analysis error**: %s\n", chunk.TruncRunes(r.ErrorMessage, 100))
	}

	b.WriteString("\n---\n\n")
}

// RenderDashboardReport builds the decision-dashboard variant: signal
// level, intelligence brief, core conclusion, data tables and battle plan
// per stock. Stocks without a dashboard block fall back to a compact
// classic section.
func RenderDashboardReport(results []AnalysisResult, at time.Time) string {
	date := at.Format("2006-01-02")
	st := Summarize(results)

	var b strings.Builder
	fmt.Fprintf(&b, "# 🎯 %s Decision Dashboard\n\n", date)
	fmt.Fprintf(&b, "> **%d** stocks analyzed | 🟢 buy: %d 🟡 hold: %d 🔴 sell: %d\n\n", st.Total, st.Buy, st.Hold, st.Sell)
	b.WriteString("---\n\n")

	for _, r := range SortByScore(results) {
		writeDashboardSection(&b, r)
	}

	fmt.Fprintf(&b, "\n*Report generated at %s*", at.Format("2006-01-02 15:04:05"))
	return b.String()
}

func writeDashboardSection(b *strings.Builder, r AnalysisResult) {
	sig := SignalFor(r)
	fmt.Fprintf(b, "## %s %s (%s)\n\n", sig.Emoji, r.DisplayName(), r.Code)

	d := r.Dashboard
	if d == nil {
		writeClassicFallback(b, r)
		b.WriteString("---\n\n")
		return
	}

	if intel := d.Intelligence; intel != nil {
		b.WriteString("### 📰 Intelligence Brief\n\n")
		if intel.SentimentSummary != "" {
			fmt.Fprintf(b, "**💭 Sentiment**: %s\n", intel.SentimentSummary)
		}
		if intel.EarningsOutlook != "" {
			fmt.Fprintf(b, "**📊 Earnings outlook**: %s\n", intel.EarningsOutlook)
		}
		if len(intel.RiskAlerts) > 0 {
			b.WriteString("\n**🚨 Risk alerts**:\n")
			for _, alert := range intel.RiskAlerts {
				fmt.Fprintf(b, "- %s\n", alert)
			}
		}
		if len(intel.PositiveCatalysts) > 0 {
			b.WriteString("\n**✨ Catalysts**:\n")
			for _, cat := range intel.PositiveCatalysts {
				fmt.Fprintf(b, "- %s\n", cat)
			}
		}
		if intel.LatestNews != "" {
			fmt.Fprintf(b, "\n**📢 Latest**: %s\n", intel.LatestNews)
		}
		b.WriteString("\n")
	}

	oneSentence := r.AnalysisSummary
	timeSense := "this week"
	var posAdvice *PositionAdvice
	if core := d.CoreConclusion; core != nil {
		if core.OneSentence != "" {
			oneSentence = core.OneSentence
		}
		if core.TimeSensitivity != "" {
			timeSense = core.TimeSensitivity
		}
		posAdvice = core.PositionAdvice
	}
	b.WriteString("### 📌 Core Conclusion\n\n")
	fmt.Fprintf(b, "**%s %s** | %s\n\n", sig.Emoji, sig.Label, r.TrendPrediction)
	fmt.Fprintf(b, "> **One-line call**: %s\n\n", oneSentence)
	fmt.Fprintf(b, "⏰ **Time sensitivity**: %s\n\n", timeSense)
	if posAdvice != nil {
		noPos := posAdvice.NoPosition
		if noPos == "" {
			noPos = r.OperationAdvice.Label()
		}
		hasPos := posAdvice.HasPosition
		if hasPos == "" {
			hasPos = "keep holding"
		}
		b.WriteString("| Position | Advice |\n")
		b.WriteString("|----------|--------|\n")
		fmt.Fprintf(b, "| 🆕 **No position** | %s |\n", noPos)
		fmt.Fprintf(b, "| 💼 **Holding** | %s |\n\n", hasPos)
	}

	if dp := d.DataPerspective; dp != nil {
		b.WriteString("### 📊 Data Perspective\n\n")
		if ts := dp.TrendStatus; ts != nil {
			bullish := "❌ no"
			if ts.IsBullish {
				bullish = "✅ yes"
			}
			fmt.Fprintf(b, "**MA alignment**: %s | bullish stack: %s | trend strength: %s/100\n\n",
				orNA(ts.MAAlignment), bullish, orNA(ts.TrendScore))
		}
		if pp := dp.PricePosition; pp != nil {
			biasEmoji := "🚨"
			switch pp.BiasStatus {
			case "safe":
				biasEmoji = "✅"
			case "caution":
				biasEmoji = "⚠️"
			}
			b.WriteString("| Price metric | Value |\n")
			b.WriteString("|--------------|-------|\n")
			fmt.Fprintf(b, "| Last | %s |\n", orNA(pp.CurrentPrice))
			fmt.Fprintf(b, "| MA5 | %s |\n", orNA(pp.MA5))
			fmt.Fprintf(b, "| MA10 | %s |\n", orNA(pp.MA10))
			fmt.Fprintf(b, "| MA20 | %s |\n", orNA(pp.MA20))
			fmt.Fprintf(b, "| Bias vs MA5 | %s%% %s%s |\n", orNA(pp.BiasMA5), biasEmoji, pp.BiasStatus)
			fmt.Fprintf(b, "| Support | %s |\n", orNA(pp.SupportLevel))
			fmt.Fprintf(b, "| Resistance | %s |\n\n", orNA(pp.ResistanceLevel))
		}
		if v := dp.Volume; v != nil {
			fmt.Fprintf(b, "**Volume**: ratio %s (%s) | turnover %s%%\n", orNA(v.VolumeRatio), v.VolumeStatus, orNA(v.TurnoverRate))
			if v.VolumeMeaning != "" {
				fmt.Fprintf(b, "💡 *%s*\n", v.VolumeMeaning)
			}
			b.WriteString("\n")
		}
		if c := dp.ChipStructure; c != nil {
			chipEmoji := "🚨"
			switch c.ChipHealth {
			case "healthy":
				chipEmoji = "✅"
			case "average":
				chipEmoji = "⚠️"
			}
			fmt.Fprintf(b, "**Chips**: profit ratio %s | avg cost %s | concentration %s %s%s\n\n",
				orNA(c.ProfitRatio), orNA(c.AvgCost), orNA(c.Concentration), chipEmoji, orNA(c.ChipHealth))
		}
	}

	if plan := d.BattlePlan; plan != nil {
		b.WriteString("### 🎯 Battle Plan\n\n")
		if sp := plan.SniperPoints; sp != nil {
			b.WriteString("**📍 Entry/exit levels**\n\n")
			b.WriteString("| Level | Price |\n")
			b.WriteString("|-------|-------|\n")
			fmt.Fprintf(b, "| 🎯 Ideal entry | %s |\n", orNA(sp.IdealBuy))
			fmt.Fprintf(b, "| 🔵 Secondary entry | %s |\n", orNA(sp.SecondaryBuy))
			fmt.Fprintf(b, "| 🛑 Stop loss | %s |\n", orNA(sp.StopLoss))
			fmt.Fprintf(b, "| 🎊 Target | %s |\n\n", orNA(sp.TakeProfit))
		}
		if ps := plan.PositionStrategy; ps != nil {
			fmt.Fprintf(b, "**💰 Position sizing**: %s\n", orNA(ps.SuggestedPosition))
			if ps.EntryPlan != "" {
				fmt.Fprintf(b, "- Entry plan: %s\n", ps.EntryPlan)
			}
			if ps.RiskControl != "" {
				fmt.Fprintf(b, "- Risk control: %s\n", ps.RiskControl)
			}
			b.WriteString("\n")
		}
		if len(plan.ActionChecklist) > 0 {
			b.WriteString("**✅ Checklist**\n\n")
			for _, item := range plan.ActionChecklist {
				fmt.Fprintf(b, "- %s\n", item)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n\n")
}

func writeClassicFallback(b *strings.Builder, r AnalysisResult) {
	if r.BuyReason != "" {
		fmt.Fprintf(b, "**💡 Rationale**: %s\n\n", r.BuyReason)
	}
	if r.RiskWarning != "" {
		fmt.Fprintf(b, "**⚠️ Risk warning**: %s\n\n", r.RiskWarning)
	}
	if r.MAAnalysis != "" || r.VolumeAnalysis != "" {
		b.WriteString("### 📊 Technicals\n\n")
		if r.MAAnalysis != "" {
			fmt.Fprintf(b, "**Moving averages**: %s\n", r.MAAnalysis)
		}
		if r.VolumeAnalysis != "" {
			fmt.Fprintf(b, "**Volume**: %s\n", r.VolumeAnalysis)
		}
		b.WriteString("\n")
	}
	if r.NewsSummary != "" {
		fmt.Fprintf(b, "### 📰 News\n%s\n\n", r.NewsSummary)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
