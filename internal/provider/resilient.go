package provider

import (
	"context"
	"time"

	"github.com/prasanth23590/SChainRealtime/internal/domain"
)

// FetchWithFallback runs one bounded attempt of fetch and converts every
// failure (transport error, non-200, malformed shape, timeout) into the
// fallback value tagged simulated. It never returns an error: one feed's
// outage must not abort the pipeline or cascade into sibling fetches.
func FetchWithFallback[T any](
	ctx context.Context,
	timeout time.Duration,
	fetch func(ctx context.Context) (T, error),
	fallback func() T,
) (T, domain.SourceStatus) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, err := fetch(ctx)
	if err != nil {
		return fallback(), domain.StatusSimulated
	}
	return value, domain.StatusLive
}
