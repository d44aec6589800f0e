package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// JournalRepository defines the journal database operations the consumer
// needs.
type JournalRepository interface {
	CreateJournalEntry(e *models.JournalEntry) error
	JournalEntryExists(eventID string) (bool, error)
}

// Consumer reads executed-trade events and records them in the journal.
// The journal is an audit trail; portfolio state itself is written
// synchronously by the trade handler, so a consumer lagging behind never
// affects balances.
type Consumer struct {
	reader *kafka.Reader
	repo   JournalRepository
	log    *logrus.Logger
}

// NewConsumer creates a Kafka consumer for trade events.
func NewConsumer(brokers []string, topic, groupID string, repo JournalRepository, log *logrus.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		repo:   repo,
		log:    log,
	}
}

// Start consumes messages until the context is cancelled. Individual
// message failures are logged and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.WithField("topic", c.reader.Config().Topic).Info("starting trade journal consumer")

	for {
		select {
		case <-ctx.Done():
			c.log.Info("trade journal consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				c.log.WithError(err).Error("failed to read message")
				continue
			}

			if err := c.processMessage(msg); err != nil {
				c.log.WithError(err).Error("failed to process message")
			}
		}
	}
}

// processMessage handles a single Kafka message.
func (c *Consumer) processMessage(msg kafka.Message) error {
	var event models.TradeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal trade event: %w", err)
	}

	if event.EventType != models.EventTradeExecuted {
		c.log.WithField("event_type", event.EventType).Debug("ignoring event")
		return nil
	}
	if event.EventID == "" {
		return fmt.Errorf("trade event without event_id")
	}

	// Idempotency: the producer retries on transient failures, so the
	// same event may arrive more than once.
	exists, err := c.repo.JournalEntryExists(event.EventID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate event: %w", err)
	}
	if exists {
		c.log.WithField("event_id", event.EventID).Debug("event already journaled, skipping")
		return nil
	}

	entry, err := convertEventToEntry(event)
	if err != nil {
		return fmt.Errorf("failed to convert trade event: %w", err)
	}

	if err := c.repo.CreateJournalEntry(entry); err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"event_id": entry.EventID,
		"session":  entry.SessionID,
		"side":     entry.Side,
		"ticker":   entry.Ticker,
		"quantity": entry.Quantity,
	}).Info("journaled trade")

	return nil
}

func convertEventToEntry(event models.TradeEvent) (*models.JournalEntry, error) {
	if event.Side != models.TradeSideBuy && event.Side != models.TradeSideSell {
		return nil, fmt.Errorf("invalid trade side: %s", event.Side)
	}
	if event.Quantity <= 0 {
		return nil, fmt.Errorf("invalid trade quantity: %d", event.Quantity)
	}

	total := event.Total
	if total.IsZero() {
		total = event.Price.Mul(decimal.NewFromInt(event.Quantity))
	}

	executedAt := event.Timestamp
	if executedAt.IsZero() {
		executedAt = time.Now()
	}

	return &models.JournalEntry{
		EventID:    event.EventID,
		SessionID:  event.SessionID,
		Ticker:     event.Ticker,
		Name:       event.Name,
		Side:       event.Side,
		Quantity:   event.Quantity,
		Price:      event.Price,
		Total:      total,
		ExecutedAt: executedAt,
	}, nil
}

// Close closes the Kafka consumer.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
