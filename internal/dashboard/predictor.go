package dashboard

import (
	"fmt"
	"math"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
)

// PredictorInput carries the fetched records plus the coverage summaries the
// confidence term degrades on.
type PredictorInput struct {
	US             []domain.Quote
	Metals         []domain.Quote
	VIX            domain.Quote
	News           []domain.NewsItem
	Disasters      domain.DisasterStat
	Vulns          domain.VulnStat
	MarketCoverage domain.CoverageSummary
	NewsCoverage   domain.CoverageSummary
}

type SelectedModel struct {
	Name          string   `json:"name"`
	Reason        string   `json:"reason"`
	Justification []string `json:"justification"`
}

type Nowcast struct {
	Label          string `json:"label"`
	ProbabilityPct int    `json:"probabilityPct"`
	ConfidencePct  int    `json:"confidencePct"`
	RiskLevel      string `json:"riskLevel"`
	Method         string `json:"method"`
}

type IndicatorComponent struct {
	Name   string `json:"name"`
	Weight string `json:"weight"`
}

type DisruptionIndicator struct {
	FinalAggregatedScore int                  `json:"finalAggregatedScore"`
	Band                 string               `json:"band"`
	Label                string               `json:"label"`
	Explanation          string               `json:"explanation"`
	Components           []IndicatorComponent `json:"components"`
}

// ReferenceValue repeats one raw contributing signal with its own
// provenance so a reader can audit what the nowcast saw.
type ReferenceValue struct {
	Name   string `json:"name"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

type Predictor struct {
	SelectedModel       SelectedModel       `json:"selectedModel"`
	LiveProxyNowcast    Nowcast             `json:"liveProxyNowcast"`
	DisruptionIndicator DisruptionIndicator `json:"disruptionIndicator"`
	ReferenceData       []ReferenceValue    `json:"referenceData"`
}

// BuildPredictor computes the probability nowcast and the composite 0-100
// disruption indicator. It is a hand-tuned logistic stand-in for a trained
// model, pure and idempotent; the coefficient set and the band breakpoints
// are contract with the dashboard legend.
func BuildPredictor(in PredictorInput) Predictor {
	usAbsMove := meanAbsChange(in.US)
	metalsAbsMove := meanAbsChange(in.Metals)

	negativeNewsRatio := 0.0
	if len(in.News) > 0 {
		negative := 0
		for _, item := range in.News {
			if item.Tone != nil && *item.Tone < -2 {
				negative++
			}
		}
		negativeNewsRatio = float64(negative) / float64(len(in.News))
	}

	liveCoverage := float64(in.MarketCoverage.RealtimeCoveragePct+in.NewsCoverage.RealtimeCoveragePct) / 2

	// A VIX price of zero means the quote carried no usable level; the
	// linear term substitutes a calm-market 16 while the indicator term
	// treats it as absent entirely.
	vixForZ := in.VIX.Price
	if vixForZ == 0 {
		vixForZ = 16
	}

	z := -2.15 +
		0.09*clampFloat(vixForZ, 10, 80) +
		1.35*negativeNewsRatio +
		0.045*float64(in.Disasters.RecentCount) +
		0.018*float64(in.Vulns.Recent) +
		0.18*usAbsMove +
		0.10*metalsAbsMove

	rawProbability := clampFloat(sigmoid(z), 0.01, 0.99)
	confidencePenalty := 1 - liveCoverage/100
	confidence := clampFloat(0.88-confidencePenalty*0.45, 0.35, 0.92)
	adjustedProbability := clampFloat(rawProbability*(0.82+confidence*0.28), 0.01, 0.99)

	indicatorScore := int(math.Round(clampFloat(
		adjustedProbability*100*0.55+
			confidence*100*0.20+
			clampFloat(negativeNewsRatio*100, 0, 100)*0.15+
			clampFloat(in.VIX.Price, 0, 100)*0.10,
		0, 100)))

	marketSource := domain.StatusSimulated
	if in.MarketCoverage.Live > 0 {
		marketSource = domain.StatusHybrid
	}
	newsSource := domain.StatusSimulated
	if in.NewsCoverage.Live > 0 {
		newsSource = domain.StatusHybrid
	}

	return Predictor{
		SelectedModel: SelectedModel{
			Name:   "Temporal Fusion Transformer (TFT)",
			Reason: "Best fit for realtime disruption prediction because it handles multivariate time-series + event covariates while preserving interpretability.",
			Justification: []string{
				"Combines static context (supplier/lane attributes) with temporal signals (markets, incidents, logistics KPIs).",
				"Attention layers expose which inputs/time windows drove a forecast, supporting risk review and audit.",
				"Supports multi-horizon forecasting (e.g., 24h/72h/7d), useful for tactical and planning workflows.",
			},
		},
		LiveProxyNowcast: Nowcast{
			Label:          "Realtime disruption probability (next 24h)",
			ProbabilityPct: int(math.Round(adjustedProbability * 100)),
			ConfidencePct:  int(math.Round(confidence * 100)),
			RiskLevel:      levelForProbability(adjustedProbability),
			Method:         "Streaming logistic nowcast calibrated from current reference signals (used as online proxy until a trained TFT is deployed).",
		},
		DisruptionIndicator: DisruptionIndicator{
			FinalAggregatedScore: indicatorScore,
			Band:                 bandForScore(indicatorScore),
			Label:                "Final Aggregated Disruption Indicator",
			Explanation:          "Composite score (0-100) blending predicted probability, model confidence, negative-news intensity, and market stress proxy (VIX).",
			Components: []IndicatorComponent{
				{Name: "Predicted disruption probability", Weight: "55%"},
				{Name: "Model confidence", Weight: "20%"},
				{Name: "Negative disruption-news intensity", Weight: "15%"},
				{Name: "Market stress proxy (VIX)", Weight: "10%"},
			},
		},
		ReferenceData: []ReferenceValue{
			{Name: "VIX (market stress)", Value: math.Round(in.VIX.Price*100) / 100, Source: string(in.VIX.Status)},
			{Name: "Negative disruption-news ratio", Value: fmt.Sprintf("%d%%", int(math.Round(negativeNewsRatio*100))), Source: string(newsSource)},
			{Name: "ReliefWeb disasters (last 7d)", Value: in.Disasters.RecentCount, Source: string(in.Disasters.Status)},
			{Name: "CISA KEV additions (last 30d)", Value: in.Vulns.Recent, Source: string(in.Vulns.Status)},
			{Name: "US index avg abs move", Value: fmt.Sprintf("%.2f%%", usAbsMove), Source: string(marketSource)},
			{Name: "Metals avg abs move", Value: fmt.Sprintf("%.2f%%", metalsAbsMove), Source: string(marketSource)},
		},
	}
}

// levelForProbability maps the adjusted probability to the nowcast risk
// level. Lower bounds are inclusive.
func levelForProbability(p float64) string {
	switch {
	case p >= 0.75:
		return "HIGH"
	case p >= 0.5:
		return "ELEVATED"
	default:
		return "MODERATE"
	}
}

// bandForScore maps the 0-100 indicator to its legend band. Lower bounds
// are inclusive: exactly 75 is CRITICAL, exactly 54 is WATCH.
func bandForScore(score int) string {
	switch {
	case score >= 75:
		return "CRITICAL"
	case score >= 55:
		return "ELEVATED"
	case score >= 35:
		return "WATCH"
	default:
		return "STABLE"
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
