package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasanth23590/SChainRealtime/internal/dashboard"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type builderStub struct {
	payload *dashboard.Dashboard
	err     error
}

func (b builderStub) Build(context.Context) (*dashboard.Dashboard, error) {
	return b.payload, b.err
}

func newTestRouter(builder DashboardBuilder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), builder)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(builderStub{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if body != "{\"status\":\"healthy\"}\n" && body != "{\"status\":\"healthy\"}" {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGetDashboardSuccess(t *testing.T) {
	payload := &dashboard.Dashboard{
		SourceMode: "hybrid",
		Metrics:    dashboard.Metrics{OverallRiskScore: 42, MarketVolatility: 40, ActiveDisruptions: 12},
	}
	r := newTestRouter(builderStub{payload: payload})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		SourceMode       string `json:"sourceMode"`
		OverallRiskScore int    `json:"overallRiskScore"`
		MarketVolatility int    `json:"marketVolatility"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.SourceMode != "hybrid" || body.OverallRiskScore != 42 || body.MarketVolatility != 40 {
		t.Fatalf("unexpected response payload: %+v", body)
	}
}

func TestGetDashboardBuildFailure(t *testing.T) {
	r := newTestRouter(builderStub{err: errors.New("predictor stage blew up")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Message != "Failed to build dashboard" || body.Error == "" {
		t.Fatalf("unexpected error payload: %+v", body)
	}
}
