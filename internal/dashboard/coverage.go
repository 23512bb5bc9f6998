package dashboard

import (
	"math"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
)

// SummarizeSources reduces a set of source statuses into live/simulated
// counts and a realtime coverage percentage. Pure; a total of zero yields
// zero percent rather than dividing by zero.
func SummarizeSources(statuses []domain.SourceStatus) domain.CoverageSummary {
	summary := domain.CoverageSummary{Total: len(statuses)}
	for _, status := range statuses {
		if status == domain.StatusLive {
			summary.Live++
		}
	}
	summary.Simulated = summary.Total - summary.Live
	if summary.Total > 0 {
		summary.RealtimeCoveragePct = int(math.Round(float64(summary.Live) / float64(summary.Total) * 100))
	}
	return summary
}

func statusesOf(quotes []domain.Quote) []domain.SourceStatus {
	statuses := make([]domain.SourceStatus, 0, len(quotes))
	for _, q := range quotes {
		statuses = append(statuses, q.Status)
	}
	return statuses
}

func newsStatuses(items []domain.NewsItem) []domain.SourceStatus {
	statuses := make([]domain.SourceStatus, 0, len(items))
	for _, item := range items {
		statuses = append(statuses, item.Status)
	}
	return statuses
}
