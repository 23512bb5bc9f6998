package config

import "time"

// FallbackHeadline is one canned disruption-news item used when the news
// search is unreachable. The set deliberately covers the four disruption
// categories the scoring layer cares about (geopolitical, shipping, cyber,
// climate) so degraded mode still produces meaningful indicators.
type FallbackHeadline struct {
	ID      string
	Title   string
	Source  string
	Age     time.Duration
	Tone    float64
	Summary string
}

// FallbackNews returns the canned headline set. Ages are offsets from fetch
// time; the caller stamps publishedAt.
func FallbackNews() []FallbackHeadline {
	return []FallbackHeadline{
		{
			ID:      "fallback-1",
			Title:   "Geopolitical Tensions Drive Trade Disruptions",
			Source:  "Global Logistics Desk",
			Age:     20 * time.Minute,
			Tone:    -4.2,
			Summary: "Cross-border tariff negotiations and sanctions continue to increase uncertainty in manufacturing and ocean freight lanes.",
		},
		{
			ID:      "fallback-2",
			Title:   "Red Sea Security Issues Affect Shipping Routes",
			Source:  "Maritime Watch",
			Age:     90 * time.Minute,
			Tone:    -3.6,
			Summary: "Shipping operators are rerouting vessels, increasing average transit times and spot container rates.",
		},
		{
			ID:      "fallback-3",
			Title:   "Cyber Alerts Up for ERP and Warehouse Platforms",
			Source:  "Cyber Threat Bulletin",
			Age:     180 * time.Minute,
			Tone:    -2.2,
			Summary: "Recent advisories flag vulnerabilities in supply-chain software used for planning, inventory, and procurement.",
		},
		{
			ID:      "fallback-4",
			Title:   "Flooding Events Pressure Regional Transport Hubs",
			Source:  "Climate Risk Monitor",
			Age:     240 * time.Minute,
			Tone:    -1.8,
			Summary: "Heavy rainfall disruptions continue to impact rail throughput and first-mile trucking in multiple regions.",
		},
	}
}

// Fallback constants for the registry feeds, returned verbatim when the
// upstream is unavailable.
const (
	FallbackDisasterRecent = 9
	FallbackDisasterTotal  = 20
	FallbackKEVTotal       = 1210
	FallbackKEVRecent      = 23
)
