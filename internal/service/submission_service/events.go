package submission_service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

// EventWriter is the part of *kafka.Writer used for publishing
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaEventPublisher struct {
	Writer EventWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *KafkaEventPublisher) PublishSubmission(ctx context.Context, event SubmissionEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w, cannot marshal submission event, %w", quest_errors.ErrInternal, err)
	}

	// keyed by user so one learner's events stay ordered
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: message,
		Time:  event.SubmittedAt,
	})
	if err != nil {
		return quest_errors.WrapIPCError(err)
	}
	return nil
}

type discardPublisher struct{}

func (discardPublisher) PublishSubmission(context.Context, SubmissionEvent) error {
	return nil
}
