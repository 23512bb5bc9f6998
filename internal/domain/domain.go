package domain

import "time"

// SourceStatus tags every externally sourced record with its provenance.
// The tag propagates unchanged through aggregation: a derived value is only
// as live as its least-live input.
type SourceStatus string

const (
	StatusLive      SourceStatus = "live"
	StatusSimulated SourceStatus = "simulated"

	// StatusHybrid marks derived reference values whose inputs mix live and
	// simulated records. See DESIGN.md for the provenance policy.
	StatusHybrid = "live/hybrid"
)

// Ticker describes one quote to fetch: the upstream symbol, a display name,
// and the base price used by the simulated fallback path.
type Ticker struct {
	Symbol   string
	Name     string
	Fallback float64
}

// Quote is one fetched (or simulated) market quote. Immutable once produced;
// discarded after the response is sent.
type Quote struct {
	Symbol          string       `json:"symbol"`
	Name            string       `json:"name"`
	Price           float64      `json:"price"`
	FormattedPrice  string       `json:"formattedPrice"`
	ChangePct       float64      `json:"changePct"`
	FormattedChange string       `json:"formattedChange"`
	Status          SourceStatus `json:"dataSourceStatus"`
}

// NewsItem is one disruption-news hit. Tone is a sentiment score where
// negative means bad news; nil tone is treated as neutral downstream.
type NewsItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Source      string       `json:"source"`
	Domain      string       `json:"domain,omitempty"`
	PublishedAt time.Time    `json:"publishedAt"`
	Tone        *float64     `json:"tone"`
	URL         string       `json:"url"`
	Summary     string       `json:"summary"`
	Status      SourceStatus `json:"dataSourceStatus"`
}

// DisasterStat is a windowed count over the disaster registry feed.
// RecentCount covers the last 7 days.
type DisasterStat struct {
	RecentCount int          `json:"recentCount"`
	Total       int          `json:"total"`
	Status      SourceStatus `json:"dataSourceStatus"`
}

// VulnStat is a windowed count over the known-exploited-vulnerabilities
// feed. Recent covers the last 30 days.
type VulnStat struct {
	Total  int          `json:"total"`
	Recent int          `json:"recent"`
	Status SourceStatus `json:"dataSourceStatus"`
}

// CoverageSummary reports how much of a record set came from live sources.
// Derived, never persisted, recomputed on every request.
type CoverageSummary struct {
	Live                int `json:"live"`
	Total               int `json:"total"`
	Simulated           int `json:"simulated"`
	RealtimeCoveragePct int `json:"realtimeCoveragePct"`
}

// RiskIndicator is a presentation-oriented derived row. Level values are
// band names the dashboard legend color-codes on.
type RiskIndicator struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Level string `json:"level"`
}

// SupplyMetric is a derived supply-chain KPI row.
type SupplyMetric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status"`
}
