package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

type Type string

const (
	UserRegistered    Type = "user.registered"
	UserVerified      Type = "user.verified"
	UserDeleted       Type = "user.deleted"
	ArtworkCreated    Type = "artwork.created"
	ArtworkDeleted    Type = "artwork.deleted"
	ExhibitionCreated Type = "exhibition.created"
	ExhibitionDeleted Type = "exhibition.deleted"
	NoticePublished   Type = "notice.published"
)

// Event is a domain event emitted after a successful write
type Event struct {
	Type       Type      `json:"type"`
	EntityID   uint32    `json:"entityId"`
	ActorID    uint32    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(t Type, entityID, actorID uint32) Event {
	return Event{Type: t, EntityID: entityID, ActorID: actorID, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NewPublisher returns a kafka publisher when brokers are configured, otherwise a logging publisher
func NewPublisher(cfg *config.Config) Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return &LogPublisher{}
	}
	return NewKafkaPublisher(cfg.Kafka)
}

// Emit publishes e and only logs failures; events never fail the request that produced them
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Error("이벤트 발행 실패", "type", e.Type, "entity_id", e.EntityID, "error", err)
	}
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// keyed by entity so events of one entity stay ordered within a partition
	key := string(e.Type) + ":" + strconv.FormatUint(uint64(e.EntityID), 10)
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type LogPublisher struct{}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	logger.FromContext(ctx).Info("도메인 이벤트", "type", e.Type, "entity_id", e.EntityID, "actor_id", e.ActorID)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// Recorder keeps published events in memory; used by tests
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error {
	return nil
}

// Types returns the recorded event types in publish order
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]Type, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}
