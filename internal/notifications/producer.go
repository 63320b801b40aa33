package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer interface defines the contract for publishing cancellation events
type Producer interface {
	PublishEvent(ctx context.Context, event *CancellationEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "cancellation-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaProducer handles publishing cancellation events to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a new Kafka cancellation event producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one booking's events ordered on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	kafkaProducer := &KafkaProducer{
		producer: producer,
		config:   config,
	}

	log.Printf("Kafka cancellation event producer created successfully")
	return kafkaProducer, nil
}

// PublishEvent publishes a single cancellation event to Kafka
func (kp *KafkaProducer) PublishEvent(ctx context.Context, event *CancellationEvent) error {
	event.Status = EventStatusQueued
	event.UpdatedAt = time.Now()

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal cancellation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kp.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		event.MarkFailed(err)
		return fmt.Errorf("failed to send cancellation event to Kafka: %w", err)
	}

	log.Printf("Cancellation event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Booking: %s",
		kp.config.Topic, partition, offset, event.Type, event.BookingRef)

	return nil
}

// createHeaders creates Kafka headers for cancellation events
func (kp *KafkaProducer) createHeaders(event *CancellationEvent) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("product_id"), Value: []byte(event.ProductID.String())},
		{Key: []byte("booking_ref"), Value: []byte(event.BookingRef)},
		{Key: []byte("provider"), Value: []byte(event.Provider)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("refundly-cancellations")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}

	if event.CancellationID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("cancellation_id"),
			Value: []byte(event.CancellationID.String()),
		})
	}

	if event.RefundPolicy != "" {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("refund_policy"),
			Value: []byte(event.RefundPolicy),
		})
	}

	return headers
}

// Close closes the Kafka producer
func (kp *KafkaProducer) Close() error {
	if kp.producer != nil {
		err := kp.producer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("Kafka cancellation event producer closed")
	}
	return nil
}

// HealthCheck validates that the producer is configured and can form messages
func (kp *KafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}

	if kp.config.Topic == "" {
		return fmt.Errorf("health check failed - topic not configured")
	}

	testEvent := NewEventBuilder().
		WithType(EventTypeCancellationStarted).
		Build()

	if _, err := testEvent.ToJSON(); err != nil {
		return fmt.Errorf("health check failed - JSON marshaling error: %w", err)
	}

	return nil
}

// NoopProducer discards events. Used when Kafka is disabled by configuration
// so the cancellation flow does not need nil checks.
type NoopProducer struct{}

func NewNoopProducer() Producer {
	return &NoopProducer{}
}

func (np *NoopProducer) PublishEvent(ctx context.Context, event *CancellationEvent) error {
	return nil
}

func (np *NoopProducer) Close() error {
	return nil
}

func (np *NoopProducer) HealthCheck(ctx context.Context) error {
	return nil
}
