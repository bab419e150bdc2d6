package report

// Advice is the analyzer's operation recommendation for one stock.
type Advice string

const (
	AdviceStrongBuy  Advice = "strong_buy"
	AdviceBuy        Advice = "buy"
	AdviceAdd        Advice = "add"
	AdviceHold       Advice = "hold"
	AdviceWatch      Advice = "watch"
	AdviceReduce     Advice = "reduce"
	AdviceSell       Advice = "sell"
	AdviceStrongSell Advice = "strong_sell"
)

// IsBuySide reports whether the advice suggests opening or adding.
func (a Advice) IsBuySide() bool {
	return a == AdviceStrongBuy || a == AdviceBuy || a == AdviceAdd
}

// IsSellSide reports whether the advice suggests reducing or exiting.
func (a Advice) IsSellSide() bool {
	return a == AdviceStrongSell || a == AdviceSell || a == AdviceReduce
}

// Label returns the display text used in rendered reports.
func (a Advice) Label() string {
	switch a {
	case AdviceStrongBuy:
		return "Strong Buy"
	case AdviceBuy:
		return "Buy"
	case AdviceAdd:
		return "Add"
	case AdviceHold:
		return "Hold"
	case AdviceWatch:
		return "Watch"
	case AdviceReduce:
		return "Reduce"
	case AdviceSell:
		return "Sell"
	case AdviceStrongSell:
		return "Strong Sell"
	default:
		return string(a)
	}
}

// AnalysisResult is one stock's analysis as produced by the upstream
// analyzer. Optional narrative fields are empty strings when absent;
// the optional dashboard block is nil when absent.
type AnalysisResult struct {
	Code string `json:"code"`
	Name string `json:"name"`

	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`

	SentimentScore  int    `json:"sentiment_score"`
	TrendPrediction string `json:"trend_prediction"`
	OperationAdvice Advice `json:"operation_advice"`
	// Confidence is a 1..5 star rating; 0 means unreported.
	Confidence int `json:"confidence,omitempty"`

	AnalysisSummary   string `json:"analysis_summary,omitempty"`
	KeyPoints         string `json:"key_points,omitempty"`
	BuyReason         string `json:"buy_reason,omitempty"`
	TrendAnalysis     string `json:"trend_analysis,omitempty"`
	ShortTermOutlook  string `json:"short_term_outlook,omitempty"`
	MediumTermOutlook string `json:"medium_term_outlook,omitempty"`

	TechnicalAnalysis string `json:"technical_analysis,omitempty"`
	MAAnalysis        string `json:"ma_analysis,omitempty"`
	VolumeAnalysis    string `json:"volume_analysis,omitempty"`
	PatternAnalysis   string `json:"pattern_analysis,omitempty"`

	FundamentalAnalysis string `json:"fundamental_analysis,omitempty"`
	SectorPosition      string `json:"sector_position,omitempty"`
	CompanyHighlights   string `json:"company_highlights,omitempty"`

	NewsSummary     string `json:"news_summary,omitempty"`
	MarketSentiment string `json:"market_sentiment,omitempty"`
	HotTopics       string `json:"hot_topics,omitempty"`

	RiskWarning string `json:"risk_warning,omitempty"`

	SearchPerformed bool   `json:"search_performed,omitempty"`
	DataSources     string `json:"data_sources,omitempty"`

	Dashboard *Dashboard `json:"dashboard,omitempty"`
}

// DisplayName prefers the resolved company name and falls back to the code.
func (r AnalysisResult) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return "stock " + r.Code
}

// Dashboard is the analyzer's structured decision-dashboard block.
type Dashboard struct {
	Intelligence    *Intelligence    `json:"intelligence,omitempty"`
	CoreConclusion  *CoreConclusion  `json:"core_conclusion,omitempty"`
	DataPerspective *DataPerspective `json:"data_perspective,omitempty"`
	BattlePlan      *BattlePlan      `json:"battle_plan,omitempty"`
}

// Intelligence summarizes news flow and sentiment around the stock.
type Intelligence struct {
	SentimentSummary  string   `json:"sentiment_summary,omitempty"`
	EarningsOutlook   string   `json:"earnings_outlook,omitempty"`
	RiskAlerts        []string `json:"risk_alerts,omitempty"`
	PositiveCatalysts []string `json:"positive_catalysts,omitempty"`
	LatestNews        string   `json:"latest_news,omitempty"`
}

// CoreConclusion is the one-line decision plus its shelf life.
type CoreConclusion struct {
	OneSentence     string          `json:"one_sentence,omitempty"`
	TimeSensitivity string          `json:"time_sensitivity,omitempty"`
	PositionAdvice  *PositionAdvice `json:"position_advice,omitempty"`
}

// PositionAdvice splits the recommendation by current holding state.
type PositionAdvice struct {
	NoPosition  string `json:"no_position,omitempty"`
	HasPosition string `json:"has_position,omitempty"`
}

// DataPerspective carries the quantitative snapshot tables.
type DataPerspective struct {
	TrendStatus   *TrendStatus   `json:"trend_status,omitempty"`
	PricePosition *PricePosition `json:"price_position,omitempty"`
	Volume        *VolumeStatus  `json:"volume_analysis,omitempty"`
	ChipStructure *ChipStructure `json:"chip_structure,omitempty"`
}

type TrendStatus struct {
	MAAlignment string `json:"ma_alignment,omitempty"`
	IsBullish   bool   `json:"is_bullish,omitempty"`
	TrendScore  string `json:"trend_score,omitempty"`
}

type PricePosition struct {
	CurrentPrice    string `json:"current_price,omitempty"`
	MA5             string `json:"ma5,omitempty"`
	MA10            string `json:"ma10,omitempty"`
	MA20            string `json:"ma20,omitempty"`
	BiasMA5         string `json:"bias_ma5,omitempty"`
	BiasStatus      string `json:"bias_status,omitempty"`
	SupportLevel    string `json:"support_level,omitempty"`
	ResistanceLevel string `json:"resistance_level,omitempty"`
}

type VolumeStatus struct {
	VolumeRatio   string `json:"volume_ratio,omitempty"`
	VolumeStatus  string `json:"volume_status,omitempty"`
	TurnoverRate  string `json:"turnover_rate,omitempty"`
	VolumeMeaning string `json:"volume_meaning,omitempty"`
}

type ChipStructure struct {
	ProfitRatio   string `json:"profit_ratio,omitempty"`
	AvgCost       string `json:"avg_cost,omitempty"`
	Concentration string `json:"concentration,omitempty"`
	ChipHealth    string `json:"chip_health,omitempty"`
}

// BattlePlan is the actionable half of the dashboard.
type BattlePlan struct {
	SniperPoints     *SniperPoints     `json:"sniper_points,omitempty"`
	PositionStrategy *PositionStrategy `json:"position_strategy,omitempty"`
	ActionChecklist  []string          `json:"action_checklist,omitempty"`
}

type SniperPoints struct {
	IdealBuy     string `json:"ideal_buy,omitempty"`
	SecondaryBuy string `json:"secondary_buy,omitempty"`
	StopLoss     string `json:"stop_loss,omitempty"`
	TakeProfit   string `json:"take_profit,omitempty"`
}

type PositionStrategy struct {
	SuggestedPosition string `json:"suggested_position,omitempty"`
	EntryPlan         string `json:"entry_plan,omitempty"`
	RiskControl       string `json:"risk_control,omitempty"`
}
