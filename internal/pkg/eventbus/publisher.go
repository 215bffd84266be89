package eventbus

import (
	"context"
	"time"

	"excel-analytics-be/internal/pkg/logger"
	pkgEvents "excel-analytics-be/pkg/events"
	pkgNats "excel-analytics-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher announces file lifecycle changes. Publishing never fails the
// caller; errors are logged.
type Publisher interface {
	PublishFileUploaded(ctx context.Context, fileId, userId uuid.UUID, originalName string, rows int)
	PublishAnalysisGenerated(ctx context.Context, fileId, userId uuid.UUID, sequence int, chartType string)
	PublishFileDeleted(ctx context.Context, fileId, userId uuid.UUID, byAdmin bool)
}

// Sink is the transport a NatsPublisher writes to.
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

type NatsPublisher struct {
	sink   Sink
	logger logger.ILogger
}

// NewNatsPublisher returns a publisher over sink. A nil sink yields a
// publisher that drops every event, for deployments without NATS.
func NewNatsPublisher(sink Sink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

// FromNats adapts an optional *pkgNats.Publisher; nil stays nil.
func FromNats(p *pkgNats.Publisher) Sink {
	if p == nil {
		return nil
	}
	return p
}

func (p *NatsPublisher) PublishFileUploaded(ctx context.Context, fileId, userId uuid.UUID, originalName string, rows int) {
	p.publish(ctx, pkgEvents.FileUploaded, map[string]interface{}{
		"file_id":       fileId,
		"user_id":       userId,
		"original_name": originalName,
		"total_rows":    rows,
	})
}

func (p *NatsPublisher) PublishAnalysisGenerated(ctx context.Context, fileId, userId uuid.UUID, sequence int, chartType string) {
	p.publish(ctx, pkgEvents.AnalysisGenerated, map[string]interface{}{
		"file_id":    fileId,
		"user_id":    userId,
		"sequence":   sequence,
		"chart_type": chartType,
	})
}

func (p *NatsPublisher) PublishFileDeleted(ctx context.Context, fileId, userId uuid.UUID, byAdmin bool) {
	p.publish(ctx, pkgEvents.FileDeleted, map[string]interface{}{
		"file_id":  fileId,
		"user_id":  userId,
		"by_admin": byAdmin,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.sink == nil {
		return
	}

	now := time.Now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
