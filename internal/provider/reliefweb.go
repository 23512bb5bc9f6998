package provider

import (
	"bytes"
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

const disasterWindow = 7 * 24 * time.Hour

// ReliefWebProvider queries the ReliefWeb disaster registry and counts
// entries created within the last 7 days.
type ReliefWebProvider struct {
	client   *http.Client
	endpoint string
	tracer   trace.Tracer
	clock    clockwork.Clock
	limit    int
	timeout  time.Duration
}

func NewReliefWebProvider(tracer trace.Tracer, endpoint string, limit int, timeout time.Duration) *ReliefWebProvider {
	if limit <= 0 {
		limit = 20
	}
	return &ReliefWebProvider{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		tracer:   tracer,
		clock:    clockwork.NewRealClock(),
		limit:    limit,
		timeout:  timeout,
	}
}

// Fetch returns the windowed disaster counts, live or the fixed simulated
// constants. It never fails.
func (p *ReliefWebProvider) Fetch(ctx context.Context) domain.DisasterStat {
	ctx, span := p.tracer.Start(ctx, "reliefweb.fetch")
	defer span.End()

	stat, status := FetchWithFallback(ctx, p.timeout,
		p.fetchLive,
		func() domain.DisasterStat {
			return domain.DisasterStat{RecentCount: config.FallbackDisasterRecent, Total: config.FallbackDisasterTotal}
		},
	)
	stat.Status = status
	return stat
}

func (p *ReliefWebProvider) fetchLive(ctx context.Context) (domain.DisasterStat, error) {
	payload := map[string]any{
		"appname": "SChainRealtime",
		"limit":   p.limit,
		"profile": "full",
		"sort":    []string{"date:desc"},
		"query":   map[string]string{"value": "disaster OR cyclone OR flood OR drought OR wildfire"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.DisasterStat{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.DisasterStat{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.DisasterStat{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return domain.DisasterStat{}, fmt.Errorf("reliefweb API error %d: %s", resp.StatusCode, string(raw))
	}

	var raw struct {
		Data []struct {
			Fields struct {
				Date struct {
					Created string `json:"created"`
				} `json:"date"`
			} `json:"fields"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.DisasterStat{}, fmt.Errorf("parse reliefweb response: %w", err)
	}

	now := p.clock.Now()
	recent := 0
	for _, entry := range raw.Data {
		created, err := time.Parse(time.RFC3339, entry.Fields.Date.Created)
		if err != nil {
			continue
		}
		if now.Sub(created) < disasterWindow {
			recent++
		}
	}

	return domain.DisasterStat{RecentCount: recent, Total: len(raw.Data)}, nil
}
