package dashboard

import (
	"testing"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullCoverage(n int) domain.CoverageSummary {
	return domain.CoverageSummary{Live: n, Total: n, RealtimeCoveragePct: 100}
}

// Regression fixture with hand-computed expectations: vix 16.4, no negative
// news, 9 recent disasters, 23 recent KEVs, flat markets, full coverage.
// z = -2.15 + 0.09*16.4 + 0.045*9 + 0.018*23 = 0.145, sigmoid 0.5362,
// confidence 0.88, adjusted 0.5718.
func TestBuildPredictorRegressionFixture(t *testing.T) {
	got := BuildPredictor(PredictorInput{
		US:             quotesWithChanges(0, 0, 0, 0),
		Metals:         quotesWithChanges(0, 0, 0, 0),
		VIX:            domain.Quote{Symbol: "^VIX", Price: 16.4, Status: domain.StatusLive},
		News:           newsItems(4),
		Disasters:      domain.DisasterStat{RecentCount: 9, Total: 20, Status: domain.StatusLive},
		Vulns:          domain.VulnStat{Recent: 23, Total: 1210, Status: domain.StatusLive},
		MarketCoverage: fullCoverage(17),
		NewsCoverage:   fullCoverage(4),
	})

	nowcast := got.LiveProxyNowcast
	assert.Equal(t, 57, nowcast.ProbabilityPct)
	assert.Equal(t, 88, nowcast.ConfidencePct)
	assert.Equal(t, "ELEVATED", nowcast.RiskLevel)

	assert.Equal(t, 51, got.DisruptionIndicator.FinalAggregatedScore)
	assert.Equal(t, "WATCH", got.DisruptionIndicator.Band)
	require.Len(t, got.DisruptionIndicator.Components, 4)

	require.Len(t, got.ReferenceData, 6)
	assert.Equal(t, 16.4, got.ReferenceData[0].Value)
	assert.Equal(t, "live", got.ReferenceData[0].Source)
	assert.Equal(t, "0%", got.ReferenceData[1].Value)
	assert.Equal(t, "live/hybrid", got.ReferenceData[1].Source)
	assert.Equal(t, 9, got.ReferenceData[2].Value)
	assert.Equal(t, 23, got.ReferenceData[3].Value)
}

func TestBuildPredictorNegativeNewsRaisesProbability(t *testing.T) {
	base := PredictorInput{
		VIX:            domain.Quote{Price: 16.4, Status: domain.StatusLive},
		News:           newsItems(4),
		MarketCoverage: fullCoverage(17),
		NewsCoverage:   fullCoverage(4),
	}
	calm := BuildPredictor(base)

	tone := -4.5
	angry := base
	angry.News = []domain.NewsItem{
		{Tone: &tone, Status: domain.StatusLive},
		{Tone: &tone, Status: domain.StatusLive},
		{Tone: &tone, Status: domain.StatusLive},
		{Tone: &tone, Status: domain.StatusLive},
	}
	stressed := BuildPredictor(angry)

	assert.Greater(t, stressed.LiveProxyNowcast.ProbabilityPct, calm.LiveProxyNowcast.ProbabilityPct)
	assert.Greater(t, stressed.DisruptionIndicator.FinalAggregatedScore, calm.DisruptionIndicator.FinalAggregatedScore)
}

func TestBuildPredictorConfidenceDegradesWithCoverage(t *testing.T) {
	in := PredictorInput{
		VIX:            domain.Quote{Price: 20, Status: domain.StatusSimulated},
		MarketCoverage: domain.CoverageSummary{Live: 0, Total: 17, Simulated: 17, RealtimeCoveragePct: 0},
		NewsCoverage:   domain.CoverageSummary{Live: 0, Total: 4, Simulated: 4, RealtimeCoveragePct: 0},
	}
	got := BuildPredictor(in)

	// 0.88 - 0.45 = 0.43, inside the [0.35, 0.92] clamp.
	assert.Equal(t, 43, got.LiveProxyNowcast.ConfidencePct)
	assert.Equal(t, "simulated", got.ReferenceData[1].Source)
	assert.Equal(t, "simulated", got.ReferenceData[4].Source)
}

func TestBuildPredictorZeroVIXSubstitutesCalmLevel(t *testing.T) {
	in := PredictorInput{
		News:           newsItems(2),
		MarketCoverage: fullCoverage(17),
		NewsCoverage:   fullCoverage(2),
	}
	missing := in
	missing.VIX = domain.Quote{Price: 0, Status: domain.StatusSimulated}
	present := in
	present.VIX = domain.Quote{Price: 16, Status: domain.StatusLive}

	a := BuildPredictor(missing)
	b := BuildPredictor(present)

	// The logistic term substitutes 16 for a missing level, so the nowcast
	// matches; the indicator's direct VIX term still sees the raw zero.
	assert.Equal(t, b.LiveProxyNowcast.ProbabilityPct, a.LiveProxyNowcast.ProbabilityPct)
	assert.LessOrEqual(t, a.DisruptionIndicator.FinalAggregatedScore, b.DisruptionIndicator.FinalAggregatedScore)
}

func TestBuildPredictorIdempotent(t *testing.T) {
	in := PredictorInput{
		US:             quotesWithChanges(1.5, -0.3),
		Metals:         quotesWithChanges(0.8),
		VIX:            domain.Quote{Price: 22.5, Status: domain.StatusLive},
		News:           newsItems(3),
		Disasters:      domain.DisasterStat{RecentCount: 6, Status: domain.StatusLive},
		Vulns:          domain.VulnStat{Recent: 11, Status: domain.StatusLive},
		MarketCoverage: fullCoverage(17),
		NewsCoverage:   fullCoverage(3),
	}
	assert.Equal(t, BuildPredictor(in), BuildPredictor(in))
}

func TestLevelForProbabilityBounds(t *testing.T) {
	assert.Equal(t, "HIGH", levelForProbability(0.75))
	assert.Equal(t, "ELEVATED", levelForProbability(0.74))
	assert.Equal(t, "ELEVATED", levelForProbability(0.5))
	assert.Equal(t, "MODERATE", levelForProbability(0.49))
}

func TestBandForScoreBounds(t *testing.T) {
	assert.Equal(t, "CRITICAL", bandForScore(75))
	assert.Equal(t, "ELEVATED", bandForScore(74))
	assert.Equal(t, "ELEVATED", bandForScore(55))
	assert.Equal(t, "WATCH", bandForScore(54))
	assert.Equal(t, "WATCH", bandForScore(35))
	assert.Equal(t, "STABLE", bandForScore(34))
}
