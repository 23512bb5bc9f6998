package dashboard

import (
	"time"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
)

// RealtimeAnswer answers the headline question the dashboard asks: is
// everything on screen backed by realtime data right now?
type RealtimeAnswer struct {
	PricesAllRealtime         bool `json:"pricesAllRealtime"`
	DisruptionNewsAllRealtime bool `json:"disruptionNewsAllRealtime"`
}

type Coverage struct {
	Markets        domain.CoverageSummary `json:"markets"`
	DisruptionNews domain.CoverageSummary `json:"disruptionNews"`
}

// DataSources summarizes per-category provenance with the any-live policy
// (see DESIGN.md): a category with at least one live record reads
// "live/hybrid", never "live".
type DataSources struct {
	Markets         string              `json:"markets"`
	DisruptionsNews string              `json:"disruptionsNews"`
	ClimateEvents   domain.SourceStatus `json:"climateEvents"`
	CyberFeed       domain.SourceStatus `json:"cyberFeed"`
}

// Dashboard is the complete response payload. Field names are contract with
// the browser dashboard; renaming any of them is a breaking change.
type Dashboard struct {
	UpdatedAt      time.Time         `json:"updatedAt"`
	SourceMode     string            `json:"sourceMode"`
	RealtimeAnswer RealtimeAnswer    `json:"realtimeAnswer"`
	Coverage       Coverage          `json:"coverage"`
	DataSources    DataSources       `json:"dataSources"`
	Predictor      Predictor         `json:"predictor"`
	VIX            domain.Quote      `json:"vix"`
	Metals         []domain.Quote    `json:"metals"`
	US             []domain.Quote    `json:"us"`
	APAC           []domain.Quote    `json:"apac"`
	EU             []domain.Quote    `json:"eu"`
	News           []domain.NewsItem `json:"news"`

	Metrics
}
