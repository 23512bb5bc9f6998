package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prasanth23590/SChainRealtime/internal/config"
	"github.com/prasanth23590/SChainRealtime/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	vulnWindow       = 30 * 24 * time.Hour
	kevDateLayout    = "2006-01-02"
	kevDateLayoutAlt = time.RFC3339
)

// KEVProvider reads the known-exploited-vulnerabilities catalog and counts
// entries added within the last 30 days.
type KEVProvider struct {
	client  *http.Client
	feedURL string
	tracer  trace.Tracer
	clock   clockwork.Clock
	timeout time.Duration
}

func NewKEVProvider(tracer trace.Tracer, feedURL string, timeout time.Duration) *KEVProvider {
	return &KEVProvider{
		client:  &http.Client{Timeout: timeout},
		feedURL: feedURL,
		tracer:  tracer,
		clock:   clockwork.NewRealClock(),
		timeout: timeout,
	}
}

// Fetch returns the windowed vulnerability counts, live or the fixed
// simulated constants. It never fails.
func (p *KEVProvider) Fetch(ctx context.Context) domain.VulnStat {
	ctx, span := p.tracer.Start(ctx, "kev.fetch")
	defer span.End()

	stat, status := FetchWithFallback(ctx, p.timeout,
		p.fetchLive,
		func() domain.VulnStat {
			return domain.VulnStat{Total: config.FallbackKEVTotal, Recent: config.FallbackKEVRecent}
		},
	)
	stat.Status = status
	return stat
}

func (p *KEVProvider) fetchLive(ctx context.Context) (domain.VulnStat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.feedURL, nil)
	if err != nil {
		return domain.VulnStat{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.VulnStat{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return domain.VulnStat{}, fmt.Errorf("kev feed error %d: %s", resp.StatusCode, string(raw))
	}

	var raw struct {
		Vulnerabilities []struct {
			DateAdded string `json:"dateAdded"`
		} `json:"vulnerabilities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.VulnStat{}, fmt.Errorf("parse kev feed: %w", err)
	}

	now := p.clock.Now()
	recent := 0
	for _, vuln := range raw.Vulnerabilities {
		added, err := time.Parse(kevDateLayout, vuln.DateAdded)
		if err != nil {
			added, err = time.Parse(kevDateLayoutAlt, vuln.DateAdded)
			if err != nil {
				continue
			}
		}
		if now.Sub(added) < vulnWindow {
			recent++
		}
	}

	return domain.VulnStat{Total: len(raw.Vulnerabilities), Recent: recent}, nil
}
