package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, event.Event) error {
	f.calls++
	return errors.New("broker down")
}

func (f *failingPublisher) Close() error { return nil }

func TestNewPublisher_Selection(t *testing.T) {
	_, isLog := event.NewPublisher(&config.Config{}).(*event.LogPublisher)
	assert.True(t, isLog)

	p := event.NewPublisher(&config.Config{Kafka: config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "gallery.events"}})
	_, isKafka := p.(*event.KafkaPublisher)
	assert.True(t, isKafka)
	assert.NoError(t, p.Close())
}

func TestEmit_SwallowsErrors(t *testing.T) {
	failing := &failingPublisher{}
	assert.NotPanics(t, func() {
		event.Emit(context.Background(), failing, event.New(event.ArtworkCreated, 1, 2))
		event.Emit(context.Background(), nil, event.New(event.ArtworkCreated, 1, 2))
	})
	assert.Equal(t, 1, failing.calls)
}

func TestRecorder(t *testing.T) {
	r := &event.Recorder{}
	event.Emit(context.Background(), r, event.New(event.UserRegistered, 1, 1))
	event.Emit(context.Background(), r, event.New(event.ArtworkDeleted, 4, 1))

	assert.Equal(t, []event.Type{event.UserRegistered, event.ArtworkDeleted}, r.Types())
}
