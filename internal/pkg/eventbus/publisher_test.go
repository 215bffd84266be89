package eventbus

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"excel-analytics-be/internal/pkg/logger"
	pkgEvents "excel-analytics-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []pkgEvents.Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e pkgEvents.Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestNatsPublisherEmitsLifecycleEvents(t *testing.T) {
	sink := &recordingSink{}
	p := NewNatsPublisher(sink, logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "events.log")))

	fileId, userId := uuid.New(), uuid.New()
	p.PublishFileUploaded(context.Background(), fileId, userId, "sales.xlsx", 10)
	p.PublishAnalysisGenerated(context.Background(), fileId, userId, 1, "bar")
	p.PublishFileDeleted(context.Background(), fileId, userId, true)

	require.Len(t, sink.events, 3)
	assert.Equal(t, pkgEvents.FileUploaded, sink.events[0].EventType())
	assert.Equal(t, "sales.xlsx", sink.events[0].Payload()["original_name"])
	assert.Equal(t, pkgEvents.AnalysisGenerated, sink.events[1].EventType())
	assert.Equal(t, 1, sink.events[1].Payload()["sequence"])
	assert.Equal(t, pkgEvents.FileDeleted, sink.events[2].EventType())
	assert.Equal(t, true, sink.events[2].Payload()["by_admin"])
}

func TestNatsPublisherSwallowsErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("bus down")}
	p := NewNatsPublisher(sink, logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "events.log")))

	assert.NotPanics(t, func() {
		p.PublishFileDeleted(context.Background(), uuid.New(), uuid.New(), false)
	})
	assert.Len(t, sink.events, 1)
}

func TestNilSinkDropsEvents(t *testing.T) {
	p := NewNatsPublisher(FromNats(nil), nil)
	assert.NotPanics(t, func() {
		p.PublishFileUploaded(context.Background(), uuid.New(), uuid.New(), "a.csv", 0)
	})

	var none *NatsPublisher
	assert.NotPanics(t, func() {
		none.PublishFileDeleted(context.Background(), uuid.New(), uuid.New(), false)
	})
}
