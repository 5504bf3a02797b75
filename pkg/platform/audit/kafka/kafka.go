// Package kafka implements the audit sink on a Kafka topic. Each event is
// one JSON record keyed by the searched ID number so per-identity history
// stays in partition order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/ClementJar/IDV-sub000/pkg/platform/audit"
)

// Sink publishes audit events to a Kafka topic.
type Sink struct {
	client *kgo.Client
	topic  string
}

// NewSink connects to the brokers and ensures the topic exists.
func NewSink(ctx context.Context, seeds []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Sink{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %s: %w", res.Topic, res.Err)
		}
	}
	return nil
}

// payload is the JSON wire shape of one audit event.
type payload struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	UserID         string `json:"userId"`
	IDNumber       string `json:"idNumber"`
	Status         string `json:"status"`
	ResultCount    int    `json:"resultCount"`
	ResponseTimeMs int64  `json:"responseTimeMs"`
	SourceSystem   string `json:"sourceSystem"`
	RequestID      string `json:"requestId,omitempty"`
	ClientIP       string `json:"clientIp,omitempty"`
	UserAgent      string `json:"userAgent,omitempty"`
}

// Append produces one event synchronously from the worker goroutine.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	body, err := json.Marshal(payload{
		ID:             event.ID,
		Timestamp:      event.Timestamp.Format(time.RFC3339Nano),
		UserID:         event.UserID,
		IDNumber:       event.IDNumber,
		Status:         event.Status,
		ResultCount:    event.ResultCount,
		ResponseTimeMs: event.ResponseTimeMs,
		SourceSystem:   event.SourceSystem,
		RequestID:      event.RequestID,
		ClientIP:       event.ClientIP,
		UserAgent:      event.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.IDNumber),
		Value: body,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (s *Sink) Close() {
	s.client.Close()
}
