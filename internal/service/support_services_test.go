package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/pkg/assistant/instructions"
	"jarvina-be/pkg/events"
	"jarvina-be/pkg/export"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAndNoteServices(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, &fakeLLM{response: "fine"})
	send(t, f.service, "how are you")
	send(t, f.service, "save: first")
	send(t, f.service, "save: second")

	history := NewHistoryService(f.factory, f.publisher, logger.NewNopLogger())
	notes := NewNoteService(f.factory, f.publisher, logger.NewNopLogger())

	t.Run("list history oldest first with limit", func(t *testing.T) {
		entries, err := history.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "user", entries[0].Role)
		assert.Equal(t, "save: second", entries[0].Content)
		assert.False(t, entries[1].Timestamp.IsZero())
	})

	t.Run("list notes with default limit", func(t *testing.T) {
		list, err := notes.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Note)
		assert.Equal(t, "second", list[1].Note)
	})

	t.Run("clearing notes keeps history", func(t *testing.T) {
		require.NoError(t, notes.Clear(ctx))
		list, err := notes.List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, list)

		entries, err := history.List(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, entries, 6)
	})

	t.Run("clearing history", func(t *testing.T) {
		require.NoError(t, history.Clear(ctx))
		entries, err := history.List(ctx, 100)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	assert.Contains(t, f.publisher.types(), events.TypeNotesCleared)
	assert.Contains(t, f.publisher.types(), events.TypeHistoryCleared)
}

type brokenStore struct{}

func (brokenStore) Read(ctx context.Context) (string, error) { return "", errors.New("corrupt") }
func (brokenStore) Write(ctx context.Context, s string) error {
	return errors.New("disk full")
}

func TestInstructionsService(t *testing.T) {
	ctx := context.Background()
	store := instructions.NewFileStore(filepath.Join(t.TempDir(), "custom_instructions.json"))
	svc := NewInstructionsService(store, logger.NewNopLogger())

	res, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Instructions)

	_, err = svc.Update(ctx, &dto.UpdateInstructionsRequest{Instructions: "Answer in French."})
	require.NoError(t, err)

	res, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Answer in French.", res.Instructions)

	broken := NewInstructionsService(brokenStore{}, logger.NewNopLogger())
	res, err = broken.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Instructions)

	_, err = broken.Update(ctx, &dto.UpdateInstructionsRequest{Instructions: "x"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestExportService(t *testing.T) {
	ctx := context.Background()
	svc := NewExportService(export.NewRegistry(), logger.NewNopLogger())

	res, err := svc.Export(ctx, "docx", &dto.ExportRequest{Text: "hello", Filename: "my notes.docx"})
	require.NoError(t, err)
	assert.Equal(t, "my_notes.docx", res.Filename)
	assert.Equal(t, export.NewDOCXEncoder().ContentType(), res.ContentType)
	assert.NotEmpty(t, res.Data)

	res, err = svc.Export(ctx, "pdf", &dto.ExportRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Regexp(t, `^jarvina-\d{8}-\d{6}\.pdf$`, res.Filename)

	_, err = svc.Export(ctx, "odt", &dto.ExportRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.Export(ctx, "pdf", &dto.ExportRequest{Text: "  "})
	assert.ErrorIs(t, err, ErrEmptyExport)
}

type channelSink struct {
	received chan events.Event
	err      error
}

func (s *channelSink) Publish(ctx context.Context, event events.Event) error {
	s.received <- event
	return s.err
}

func TestPublisherToConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	sink := &channelSink{received: make(chan events.Event, 1)}
	consumer := NewConsumerService(pubSub, "assistant-events", sink, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("assistant-events", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.NewNoteSaved("req-1", "buy milk")))

	select {
	case got := <-sink.received:
		assert.Equal(t, events.TypeNoteSaved, got.EventType())
		assert.Equal(t, "buy milk", got.Payload()["note"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}
}
