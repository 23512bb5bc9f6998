package provider

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prasanth23590/SChainRealtime/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func testQuoteProvider(rt roundTripFunc) *QuoteProvider {
	p := NewQuoteProvider(trace.NewNoopTracerProvider().Tracer("test"), "https://example.com", time.Second, 20, time.Millisecond)
	p.client = &http.Client{Transport: rt}
	p.osc = NewOscillatorWith(clockwork.NewFakeClockAt(time.Unix(1771009800, 0)), func() float64 { return 0.25 })
	return p
}

var gold = domain.Ticker{Symbol: "GC=F", Name: "Gold (XAU/USD)", Fallback: 2354.1}

func TestQuoteFetchLive(t *testing.T) {
	p := testQuoteProvider(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/v8/finance/chart/") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"chart":{"result":[{"meta":{"regularMarketPrice":2400.5},"indicators":{"quote":[{"close":[2350.0,null,2380.0,2400.5]}]}}]}}`
		return jsonResponse(http.StatusOK, body), nil
	})

	quote := p.Fetch(context.Background(), gold)
	if quote.Status != domain.StatusLive {
		t.Fatalf("expected live status, got %s", quote.Status)
	}
	if quote.Price != 2400.5 {
		t.Fatalf("expected meta price, got %v", quote.Price)
	}
	wantPct := (2400.5 - 2380.0) / 2380.0 * 100
	if diff := quote.ChangePct - wantPct; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected changePct %v, got %v", wantPct, quote.ChangePct)
	}
	if !strings.HasPrefix(quote.FormattedChange, "+") {
		t.Fatalf("positive change must format with +, got %s", quote.FormattedChange)
	}
}

func TestQuoteFetchLiveWithoutPrevCloseUsesSyntheticChange(t *testing.T) {
	p := testQuoteProvider(func(*http.Request) (*http.Response, error) {
		body := `{"chart":{"result":[{"meta":{"regularMarketPrice":2400.5},"indicators":{"quote":[{"close":[2400.5]}]}}]}}`
		return jsonResponse(http.StatusOK, body), nil
	})

	quote := p.Fetch(context.Background(), gold)
	if quote.Status != domain.StatusLive {
		t.Fatalf("expected live status, got %s", quote.Status)
	}
	if quote.Price != 2400.5 {
		t.Fatalf("expected real price on synthetic-change path, got %v", quote.Price)
	}
	want := p.osc.Shift(gold.Fallback)
	if quote.ChangePct != want {
		t.Fatalf("expected deterministic synthetic change %v, got %v", want, quote.ChangePct)
	}
}

func TestQuoteFetchServerErrorFallsBackToSimulated(t *testing.T) {
	p := testQuoteProvider(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, "upstream down"), nil
	})

	quote := p.Fetch(context.Background(), gold)
	if quote.Status != domain.StatusSimulated {
		t.Fatalf("expected simulated status, got %s", quote.Status)
	}
	wantPrice := gold.Fallback * (1 + quote.ChangePct/100)
	if quote.Price != wantPrice {
		t.Fatalf("expected price %v from fallback base, got %v", wantPrice, quote.Price)
	}
	if quote.Price <= 0 {
		t.Fatalf("simulated price must stay positive, got %v", quote.Price)
	}
	if (quote.ChangePct >= 0) != strings.HasPrefix(quote.FormattedChange, "+") {
		t.Fatalf("formattedChange sign disagrees with changePct: %v vs %s", quote.ChangePct, quote.FormattedChange)
	}
}

func TestQuoteFetchSimulatedPathIsDeterministicUnderFrozenClock(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})
	p := testQuoteProvider(rt)

	first := p.Fetch(context.Background(), gold)
	second := p.Fetch(context.Background(), gold)
	if first != second {
		t.Fatalf("frozen clock and fixed jitter must reproduce the quote: %+v vs %+v", first, second)
	}
}

func TestQuoteFetchMissingPriceTreatedAsMalformed(t *testing.T) {
	p := testQuoteProvider(func(*http.Request) (*http.Response, error) {
		body := `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{"close":[null,null]}]}}]}}`
		return jsonResponse(http.StatusOK, body), nil
	})

	quote := p.Fetch(context.Background(), gold)
	if quote.Status != domain.StatusSimulated {
		t.Fatalf("priceless response must fall back to simulated, got %s", quote.Status)
	}
}
