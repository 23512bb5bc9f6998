package handler

import (
	"context"

	"github.com/prasanth23590/SChainRealtime/internal/dashboard"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type DashboardBuilder interface {
	Build(ctx context.Context) (*dashboard.Dashboard, error)
}

type Handler struct {
	tracer  trace.Tracer
	builder DashboardBuilder
}

func New(tracer trace.Tracer, builder DashboardBuilder) *Handler {
	return &Handler{
		tracer:  tracer,
		builder: builder,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/dashboard", h.GetDashboard)
}
