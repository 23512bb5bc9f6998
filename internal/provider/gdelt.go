package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prasanth23590/SChainRealtime/internal/config"
	"github.com/prasanth23590/SChainRealtime/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const gdeltSeendateLayout = "20060102T150405Z"

// GdeltProvider queries the GDELT document search API for disruption news.
// On failure it serves the canned headline set so downstream scoring keeps
// seeing all four disruption categories.
type GdeltProvider struct {
	client     *http.Client
	baseURL    string
	tracer     trace.Tracer
	clock      clockwork.Clock
	query      string
	maxRecords int
	timeout    time.Duration
}

func NewGdeltProvider(tracer trace.Tracer, baseURL, query string, maxRecords int, timeout time.Duration) *GdeltProvider {
	if maxRecords <= 0 {
		maxRecords = 7
	}
	return &GdeltProvider{
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		tracer:     tracer,
		clock:      clockwork.NewRealClock(),
		query:      query,
		maxRecords: maxRecords,
		timeout:    timeout,
	}
}

// Fetch returns disruption news items, live or the simulated fallback set.
// It never fails.
func (p *GdeltProvider) Fetch(ctx context.Context) []domain.NewsItem {
	ctx, span := p.tracer.Start(ctx, "gdelt.fetch")
	defer span.End()

	items, status := FetchWithFallback(ctx, p.timeout,
		p.fetchLive,
		func() []domain.NewsItem { return p.fallbackNews() },
	)
	for i := range items {
		items[i].Status = status
	}
	return items
}

func (p *GdeltProvider) fetchLive(ctx context.Context) ([]domain.NewsItem, error) {
	params := url.Values{}
	params.Set("query", p.query)
	params.Set("mode", "artlist")
	params.Set("format", "json")
	params.Set("maxrecords", fmt.Sprintf("%d", p.maxRecords))
	params.Set("sort", "datedesc")

	reqURL := fmt.Sprintf("%s/api/v2/doc/doc?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gdelt API error %d: %s", resp.StatusCode, string(body))
	}

	var raw struct {
		Articles []struct {
			URL              string   `json:"url"`
			Title            string   `json:"title"`
			SourceCommonName string   `json:"sourceCommonName"`
			Domain           string   `json:"domain"`
			SeenDate         string   `json:"seendate"`
			Tone             *float64 `json:"tone"`
			Snippet          string   `json:"snippet"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse gdelt response: %w", err)
	}

	now := p.clock.Now().UTC()
	items := make([]domain.NewsItem, 0, len(raw.Articles))
	for i, article := range raw.Articles {
		id := article.URL
		if id == "" {
			id = fmt.Sprintf("%d", i)
		}
		title := article.Title
		if title == "" {
			title = "Untitled event"
		}
		source := article.SourceCommonName
		if source == "" {
			source = "Unknown source"
		}
		itemURL := article.URL
		if itemURL == "" {
			itemURL = "#"
		}
		summary := article.Snippet
		if summary == "" {
			summary = "No summary available."
		}

		items = append(items, domain.NewsItem{
			ID:          id,
			Title:       title,
			Source:      source,
			Domain:      article.Domain,
			PublishedAt: parseSeendate(article.SeenDate, now),
			Tone:        article.Tone,
			URL:         itemURL,
			Summary:     summary,
		})
	}
	return items, nil
}

func (p *GdeltProvider) fallbackNews() []domain.NewsItem {
	now := p.clock.Now().UTC()
	canned := config.FallbackNews()
	items := make([]domain.NewsItem, 0, len(canned))
	for _, row := range canned {
		tone := row.Tone
		items = append(items, domain.NewsItem{
			ID:          row.ID,
			Title:       row.Title,
			Source:      row.Source,
			PublishedAt: now.Add(-row.Age),
			Tone:        &tone,
			URL:         "#",
			Summary:     row.Summary,
		})
	}
	return items
}

func parseSeendate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	if ts, err := time.Parse(gdeltSeendateLayout, raw); err == nil {
		return ts.UTC()
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC()
	}
	return fallback
}
