package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prasanth23590/SChainRealtime/internal/config"
	"github.com/prasanth23590/SChainRealtime/internal/domain"
	"github.com/prasanth23590/SChainRealtime/internal/observability"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

type QuoteFetcher interface {
	Fetch(ctx context.Context, ticker domain.Ticker) domain.Quote
}

type NewsFetcher interface {
	Fetch(ctx context.Context) []domain.NewsItem
}

type DisasterFetcher interface {
	Fetch(ctx context.Context) domain.DisasterStat
}

type VulnFetcher interface {
	Fetch(ctx context.Context) domain.VulnStat
}

// Assembler fans out all source fetchers concurrently, then runs the
// coverage, metrics, and predictor stages and merges everything into one
// Dashboard. There is no cache and no request coalescing: every Build
// repeats the full upstream fan-out (a documented weakness, see DESIGN.md).
type Assembler struct {
	tracer    trace.Tracer
	cfg       *config.Config
	quotes    QuoteFetcher
	news      NewsFetcher
	disasters DisasterFetcher
	vulns     VulnFetcher
	clock     clockwork.Clock
	obs       *observability.Metrics
}

func NewAssembler(
	tracer trace.Tracer,
	cfg *config.Config,
	quotes QuoteFetcher,
	news NewsFetcher,
	disasters DisasterFetcher,
	vulns VulnFetcher,
	obs *observability.Metrics,
) *Assembler {
	return &Assembler{
		tracer:    tracer,
		cfg:       cfg,
		quotes:    quotes,
		news:      news,
		disasters: disasters,
		vulns:     vulns,
		clock:     clockwork.NewRealClock(),
		obs:       obs,
	}
}

// Build runs one complete aggregation cycle. Fetchers are total (all
// failure collapses into simulated fallbacks inside the providers), so
// Build waits for every fetch to settle and never emits partial results. An
// aggregation-stage defect surfaces as an error naming the failing stage.
func (a *Assembler) Build(ctx context.Context) (payload *Dashboard, err error) {
	ctx, span := a.tracer.Start(ctx, "dashboard.build")
	defer span.End()

	start := a.clock.Now()
	stage := "fetch"
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("dashboard assembly failed in %s stage: %v", stage, r)
		}
		if a.obs != nil {
			a.obs.DashboardBuilds.Inc()
			a.obs.DashboardBuildDuration.Observe(a.clock.Since(start).Seconds())
			if err != nil {
				a.obs.DashboardBuildFailures.Inc()
			}
		}
	}()

	metals := a.fetchGroupAsync(ctx, a.cfg.Metals)
	us := a.fetchGroupAsync(ctx, a.cfg.US)
	apac := a.fetchGroupAsync(ctx, a.cfg.APAC)
	eu := a.fetchGroupAsync(ctx, a.cfg.EU)

	var (
		wg    sync.WaitGroup
		vix   domain.Quote
		news  []domain.NewsItem
		disas domain.DisasterStat
		kev   domain.VulnStat
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		defer a.observeDuration("quote", a.clock.Now())
		vix = a.quotes.Fetch(ctx, a.cfg.VIX)
	}()
	go func() {
		defer wg.Done()
		defer a.observeDuration("news", a.clock.Now())
		news = a.news.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		defer a.observeDuration("disasters", a.clock.Now())
		disas = a.disasters.Fetch(ctx)
		a.observeFetch("disasters", disas.Status)
	}()
	go func() {
		defer wg.Done()
		defer a.observeDuration("vulnerabilities", a.clock.Now())
		kev = a.vulns.Fetch(ctx)
		a.observeFetch("vulnerabilities", kev.Status)
	}()

	metalQuotes := <-metals
	usQuotes := <-us
	apacQuotes := <-apac
	euQuotes := <-eu
	wg.Wait()

	a.observeFetch("quote", vix.Status)
	for _, group := range [][]domain.Quote{metalQuotes, usQuotes, apacQuotes, euQuotes} {
		for _, q := range group {
			a.observeFetch("quote", q.Status)
		}
	}
	for _, item := range news {
		a.observeFetch("news", item.Status)
	}

	stage = "coverage"
	marketItems := make([]domain.SourceStatus, 0, len(metalQuotes)+len(usQuotes)+len(apacQuotes)+len(euQuotes)+1)
	marketItems = append(marketItems, statusesOf(metalQuotes)...)
	marketItems = append(marketItems, statusesOf(usQuotes)...)
	marketItems = append(marketItems, statusesOf(apacQuotes)...)
	marketItems = append(marketItems, statusesOf(euQuotes)...)
	marketItems = append(marketItems, vix.Status)
	marketCoverage := SummarizeSources(marketItems)
	newsCoverage := SummarizeSources(newsStatuses(news))

	stage = "metrics"
	metrics := ComputeMetrics(MetricsInput{
		Metals:    metalQuotes,
		US:        usQuotes,
		News:      news,
		Disasters: disas,
		Vulns:     kev,
	})

	stage = "predictor"
	predictor := BuildPredictor(PredictorInput{
		US:             usQuotes,
		Metals:         metalQuotes,
		VIX:            vix,
		News:           news,
		Disasters:      disas,
		Vulns:          kev,
		MarketCoverage: marketCoverage,
		NewsCoverage:   newsCoverage,
	})

	stage = "merge"
	sourceMode := "hybrid"
	if marketCoverage.Live == marketCoverage.Total &&
		newsCoverage.Live == newsCoverage.Total &&
		disas.Status == domain.StatusLive &&
		kev.Status == domain.StatusLive {
		sourceMode = "live"
	} else {
		log.Warn().
			Int("liveMarkets", marketCoverage.Live).
			Int("totalMarkets", marketCoverage.Total).
			Int("liveNews", newsCoverage.Live).
			Int("totalNews", newsCoverage.Total).
			Str("climateEvents", string(disas.Status)).
			Str("cyberFeed", string(kev.Status)).
			Msg("serving degraded dashboard, one or more sources simulated")
	}

	return &Dashboard{
		UpdatedAt:  a.clock.Now().UTC(),
		SourceMode: sourceMode,
		RealtimeAnswer: RealtimeAnswer{
			PricesAllRealtime:         marketCoverage.Live == marketCoverage.Total,
			DisruptionNewsAllRealtime: newsCoverage.Live == newsCoverage.Total,
		},
		Coverage: Coverage{Markets: marketCoverage, DisruptionNews: newsCoverage},
		DataSources: DataSources{
			Markets:         anyLiveLabel(marketCoverage),
			DisruptionsNews: anyLiveLabel(newsCoverage),
			ClimateEvents:   disas.Status,
			CyberFeed:       kev.Status,
		},
		Predictor: predictor,
		VIX:       vix,
		Metals:    metalQuotes,
		US:        usQuotes,
		APAC:      apacQuotes,
		EU:        euQuotes,
		News:      news,
		Metrics:   metrics,
	}, nil
}

// fetchGroupAsync fetches one ticker group concurrently, one goroutine per
// ticker, preserving input order. Results arrive on the returned channel
// once the whole group has settled.
func (a *Assembler) fetchGroupAsync(ctx context.Context, tickers []domain.Ticker) <-chan []domain.Quote {
	out := make(chan []domain.Quote, 1)
	go func() {
		quotes := make([]domain.Quote, len(tickers))
		var wg sync.WaitGroup
		for i, ticker := range tickers {
			wg.Add(1)
			go func(i int, ticker domain.Ticker) {
				defer wg.Done()
				quotes[i] = a.quotes.Fetch(ctx, ticker)
			}(i, ticker)
		}
		wg.Wait()
		out <- quotes
	}()
	return out
}

func (a *Assembler) observeFetch(source string, status domain.SourceStatus) {
	if a.obs == nil {
		return
	}
	a.obs.FeedFetches.WithLabelValues(source, string(status)).Inc()
}

// observeDuration records elapsed time for one source fetch. Meant to run
// deferred, so the start argument is evaluated at the call site before the
// fetch runs.
func (a *Assembler) observeDuration(source string, start time.Time) {
	if a.obs == nil {
		return
	}
	a.obs.FetchDuration.WithLabelValues(source).Observe(a.clock.Since(start).Seconds())
}

func anyLiveLabel(summary domain.CoverageSummary) string {
	if summary.Live > 0 {
		return domain.StatusHybrid
	}
	return string(domain.StatusSimulated)
}
