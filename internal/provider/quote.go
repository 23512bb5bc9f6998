package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prasanth23590/SChainRealtime/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// QuoteProvider fetches daily chart data for one ticker at a time from a
// Yahoo-Finance-compatible quote API. One bounded attempt per ticker, no
// retry; any failure yields a simulated quote around the fallback base.
type QuoteProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
	osc     *Oscillator
	timeout time.Duration
}

func NewQuoteProvider(tracer trace.Tracer, baseURL string, timeout time.Duration, burst int, refill time.Duration) *QuoteProvider {
	return &QuoteProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(burst, refill),
		osc:     NewOscillator(),
		timeout: timeout,
	}
}

// Fetch returns a quote for the ticker, live when the upstream cooperates
// and simulated otherwise. It never fails.
func (p *QuoteProvider) Fetch(ctx context.Context, ticker domain.Ticker) domain.Quote {
	ctx, span := p.tracer.Start(ctx, "quote.fetch")
	defer span.End()

	quote, status := FetchWithFallback(ctx, p.timeout,
		func(ctx context.Context) (domain.Quote, error) { return p.fetchLive(ctx, ticker) },
		func() domain.Quote { return p.simulated(ticker) },
	)
	quote.Status = status
	return quote
}

func (p *QuoteProvider) fetchLive(ctx context.Context, ticker domain.Ticker) (domain.Quote, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return domain.Quote{}, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", p.baseURL, url.PathEscape(ticker.Symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Quote{}, fmt.Errorf("quote API error %d for %s: %s", resp.StatusCode, ticker.Symbol, string(body))
	}

	// Upstream schema is not contractually guaranteed; every nested access
	// is guarded and a missing price counts as a malformed shape.
	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice *float64 `json:"regularMarketPrice"`
				} `json:"meta"`
				Indicators struct {
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Quote{}, fmt.Errorf("parse quote response for %s: %w", ticker.Symbol, err)
	}
	if len(raw.Chart.Result) == 0 {
		return domain.Quote{}, fmt.Errorf("quote response for %s has no result", ticker.Symbol)
	}

	result := raw.Chart.Result[0]
	var closes []float64
	if len(result.Indicators.Quote) > 0 {
		for _, c := range result.Indicators.Quote[0].Close {
			if c != nil {
				closes = append(closes, *c)
			}
		}
	}

	var latest *float64
	if result.Meta.RegularMarketPrice != nil {
		latest = result.Meta.RegularMarketPrice
	} else if len(closes) > 0 {
		latest = &closes[len(closes)-1]
	}
	if latest == nil {
		return domain.Quote{}, fmt.Errorf("quote response for %s carries no price", ticker.Symbol)
	}

	changePct := p.osc.Shift(ticker.Fallback)
	if len(closes) > 1 {
		prev := closes[len(closes)-2]
		if prev != 0 {
			changePct = (*latest - prev) / prev * 100
		}
	}

	return buildQuote(ticker, *latest, changePct), nil
}

func (p *QuoteProvider) simulated(ticker domain.Ticker) domain.Quote {
	changePct := p.osc.Shift(ticker.Fallback)
	price := ticker.Fallback * (1 + changePct/100)
	return buildQuote(ticker, price, changePct)
}

func buildQuote(ticker domain.Ticker, price, changePct float64) domain.Quote {
	return domain.Quote{
		Symbol:          ticker.Symbol,
		Name:            ticker.Name,
		Price:           price,
		FormattedPrice:  domain.FormatPrice(price),
		ChangePct:       changePct,
		FormattedChange: domain.FormatChange(changePct),
	}
}
