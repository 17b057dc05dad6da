package messaging

import (
	"context"
	"log/slog"

	"github.com/bibbank/loanrisk/pkg/events"
)

// LogEventPublisher implements port.EventPublisher by logging events. It is
// used when no Kafka brokers are configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates a LogEventPublisher.
func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish logs each event at info level. It never fails.
func (p *LogEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"payload", string(evt.Payload()),
		)
	}
	return nil
}
