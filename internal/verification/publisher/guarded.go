package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/circuit"
	"tradeverify/pkg/platform/sentinel"
)

// Publisher is what Guarded wraps.
type Publisher interface {
	Publish(ctx context.Context, result *models.Result) error
	Close()
}

// Guarded skips publishing while the broker keeps failing, so an outage
// costs one timeout per cooldown window instead of one per request.
type Guarded struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Publish(ctx context.Context, result *models.Result) error {
	if !g.breaker.Allow() {
		return fmt.Errorf("publish %s: circuit %s open: %w", EventTypeCompleted, g.breaker.Name(), sentinel.ErrUnavailable)
	}

	err := g.next.Publish(ctx, result)
	if err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "publisher circuit opened",
				"circuit", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "publisher circuit closed", "circuit", g.breaker.Name())
	}
	return nil
}

func (g *Guarded) Close() {
	g.next.Close()
}
