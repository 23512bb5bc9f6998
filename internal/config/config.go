package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
)

// Config carries every tunable the pipeline needs: feed endpoints, the
// ticker tables with their fallback bases, record caps, and timeouts.
// It is built once at startup and treated as immutable afterwards.
type Config struct {
	HTTPAddr  string
	APIKey    string
	StaticDir string

	LogLevel  string
	LogFormat string

	QuoteBaseURL    string
	GdeltBaseURL    string
	ReliefWebURL    string
	KEVFeedURL      string
	NewsQuery       string
	NewsMaxRecords  int
	DisasterLimit   int
	FetchTimeout    time.Duration
	QuoteBurst      int
	QuoteRefillMs   int
	ShutdownTimeout time.Duration

	Metals []domain.Ticker
	US     []domain.Ticker
	APAC   []domain.Ticker
	EU     []domain.Ticker
	VIX    domain.Ticker
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() *Config {
	cfg := &Config{
		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		APIKey:    strings.TrimSpace(os.Getenv("API_KEY")),
		StaticDir: envOrDefault("STATIC_DIR", "./public"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		QuoteBaseURL: envOrDefault("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
		GdeltBaseURL: envOrDefault("GDELT_BASE_URL", "https://api.gdeltproject.org"),
		ReliefWebURL: envOrDefault("RELIEFWEB_URL", "https://api.reliefweb.int/v1/disasters"),
		KEVFeedURL:   envOrDefault("KEV_FEED_URL", "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json"),

		NewsQuery:      envOrDefault("NEWS_QUERY", "(supply chain OR logistics OR shipping)"),
		NewsMaxRecords: envIntOrDefault("NEWS_MAX_RECORDS", 7),
		DisasterLimit:  envIntOrDefault("DISASTER_LIMIT", 20),

		FetchTimeout:    envDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		QuoteBurst:      envIntOrDefault("QUOTE_BURST", 20),
		QuoteRefillMs:   envIntOrDefault("QUOTE_REFILL_MS", 250),
		ShutdownTimeout: envDurationOrDefault("SHUTDOWN_TIMEOUT", 5*time.Second),

		Metals: []domain.Ticker{
			{Symbol: "GC=F", Name: "Gold (XAU/USD)", Fallback: 2354.1},
			{Symbol: "SI=F", Name: "Silver (XAG/USD)", Fallback: 30.91},
			{Symbol: "PL=F", Name: "Platinum (XPT/USD)", Fallback: 1040.4},
			{Symbol: "PA=F", Name: "Palladium (XPD/USD)", Fallback: 982.5},
		},
		US: []domain.Ticker{
			{Symbol: "^GSPC", Name: "S&P 500", Fallback: 5355.7},
			{Symbol: "^NDX", Name: "Nasdaq 100", Fallback: 19032.8},
			{Symbol: "^DJI", Name: "Dow Jones", Fallback: 39086.1},
			{Symbol: "^RUT", Name: "Russell 2000", Fallback: 2108.4},
		},
		APAC: []domain.Ticker{
			{Symbol: "^N225", Name: "Nikkei 225 (Japan)", Fallback: 39281.2},
			{Symbol: "^HSI", Name: "Hang Seng (HK)", Fallback: 18351.9},
			{Symbol: "^KS11", Name: "KOSPI (S. Korea)", Fallback: 2761.2},
			{Symbol: "^STI", Name: "Straits Times (SG)", Fallback: 3345.2},
		},
		EU: []domain.Ticker{
			{Symbol: "^GDAXI", Name: "DAX (Germany)", Fallback: 18698.1},
			{Symbol: "^FTSE", Name: "FTSE 100 (UK)", Fallback: 8288.6},
			{Symbol: "^FCHI", Name: "CAC 40 (France)", Fallback: 7578.2},
			{Symbol: "^STOXX50E", Name: "Euro Stoxx 50", Fallback: 4961.2},
		},
		VIX: domain.Ticker{Symbol: "^VIX", Name: "CBOE Volatility Index", Fallback: 16.4},
	}

	return cfg
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
