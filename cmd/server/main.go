package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasanth23590/SChainRealtime/internal/config"
	"github.com/prasanth23590/SChainRealtime/internal/dashboard"
	"github.com/prasanth23590/SChainRealtime/internal/handler"
	"github.com/prasanth23590/SChainRealtime/internal/observability"
	"github.com/prasanth23590/SChainRealtime/internal/provider"
	"github.com/prasanth23590/SChainRealtime/pkg/logger"
	"github.com/prasanth23590/SChainRealtime/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/prasanth23590/SChainRealtime/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newMetricsFunc         = observability.NewMetrics
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           SChain Realtime API
// @version         1.0
// @description     Realtime supply-chain disruption dashboard aggregating markets, news, disasters, and vulnerability feeds.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	obs := newMetricsFunc()

	quotes := provider.NewQuoteProvider(tracer, cfg.QuoteBaseURL, cfg.FetchTimeout,
		cfg.QuoteBurst, time.Duration(cfg.QuoteRefillMs)*time.Millisecond)
	news := provider.NewGdeltProvider(tracer, cfg.GdeltBaseURL, cfg.NewsQuery, cfg.NewsMaxRecords, cfg.FetchTimeout)
	disasters := provider.NewReliefWebProvider(tracer, cfg.ReliefWebURL, cfg.DisasterLimit, cfg.FetchTimeout)
	vulns := provider.NewKEVProvider(tracer, cfg.KEVFeedURL, cfg.FetchTimeout)

	assembler := dashboard.NewAssembler(tracer, cfg, quotes, news, disasters, vulns, obs)
	h := handler.New(tracer, assembler)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("schain-realtime"))
	r.Use(handler.APIKeyAuth(cfg.APIKey))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()
	log.Info().Str("addr", cfg.HTTPAddr).Msg("server started")

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
