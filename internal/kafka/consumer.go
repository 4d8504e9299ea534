package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"availability-service/internal/cache"
	"availability-service/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types published by the inventory write side
const (
	EventItemCreated = "ItemCreated"
	EventItemUpdated = "ItemUpdated"
	EventItemDeleted = "ItemDeleted"

	EventUnitStatusChanged  = "UnitStatusChanged"
	EventStockAdjusted      = "StockAdjusted"
	EventQuoteLineAdded     = "QuoteLineAdded"
	EventQuoteLineRemoved   = "QuoteLineRemoved"
	EventQuoteStatusChanged = "QuoteStatusChanged"

	eventTypeHeader = "event-type"
)

// Consumer listens to inventory and quote events and keeps the item cache honest
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	invalidator   *Invalidator
	logger        *zap.Logger
	groupID       string
	topics        []string
}

// NewConsumer creates a consumer group subscribed to the item and quote topics
func NewConsumer(cfg *config.Config, cacheClient cache.Cache, logger *zap.Logger) (*Consumer, error) {
	logger.Info("Creating Kafka consumer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Version = sarama.V2_8_0_0

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	saramaConfig.Metadata.RefreshFrequency = 10 * time.Minute
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	consumerGroup, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroupID, saramaConfig)
	if err != nil {
		logger.Error("Failed to create Kafka consumer group",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		invalidator:   NewInvalidator(cacheClient, logger),
		logger:        logger,
		groupID:       cfg.KafkaGroupID,
		topics:        []string{cfg.KafkaTopicItems, cfg.KafkaTopicQuotes},
	}, nil
}

// Start consumes until ctx is cancelled or the group fails
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{invalidator: c.invalidator, logger: c.logger}

	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.logger.Error("Error from consumer", zap.Error(err))
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.Error("Consumer error", zap.Error(err))
		}
	}()

	c.logger.Info("Kafka consumer started for item cache invalidation",
		zap.Strings("topics", c.topics),
		zap.String("group_id", c.groupID),
	)

	wg.Wait()
	return nil
}

func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

type groupHandler struct {
	invalidator *Invalidator
	logger      *zap.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			eventType := extractEventType(message.Headers)
			if eventType == "" {
				h.logger.Warn("Message without event type, skipping",
					zap.String("topic", message.Topic),
					zap.Int("partition", int(message.Partition)),
					zap.Int64("offset", message.Offset),
				)
			} else if err := h.invalidator.Handle(session.Context(), eventType, message.Value); err != nil {
				h.logger.Error("Failed to handle event",
					zap.String("event_type", eventType),
					zap.String("topic", message.Topic),
					zap.Error(err),
				)
			}

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func extractEventType(headers []*sarama.RecordHeader) string {
	for _, header := range headers {
		if header != nil && string(header.Key) == eventTypeHeader {
			return string(header.Value)
		}
	}
	return ""
}

// Invalidator applies one event to the item cache
type Invalidator struct {
	cache  cache.Cache
	logger *zap.Logger
}

func NewInvalidator(c cache.Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: c, logger: logger}
}

type itemEvent struct {
	ItemID      string `json:"itemId"`
	ItemIDSnake string `json:"item_id"`
}

func (e itemEvent) id() string {
	if e.ItemID != "" {
		return e.ItemID
	}
	return e.ItemIDSnake
}

// Handle drops the cached lookup of the item an item event names. Events
// without a usable item ID clear every cached item. Unit, stock and quote
// events touch nothing cached and are only logged.
func (i *Invalidator) Handle(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case EventItemCreated:
		return nil
	case EventItemUpdated, EventItemDeleted:
		return i.invalidateItem(ctx, eventType, payload)
	case EventUnitStatusChanged, EventStockAdjusted,
		EventQuoteLineAdded, EventQuoteLineRemoved, EventQuoteStatusChanged:
		i.logger.Debug("Availability input changed", zap.String("event_type", eventType))
		return nil
	default:
		return fmt.Errorf("unknown event type: %s", eventType)
	}
}

func (i *Invalidator) invalidateItem(ctx context.Context, eventType string, payload []byte) error {
	var event itemEvent
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &event); err != nil {
			i.logger.Warn("Unparseable item event, clearing item cache",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}

	itemID, err := uuid.Parse(strings.TrimSpace(event.id()))
	if err != nil {
		return i.cache.DeleteByPattern(ctx, cache.ItemKeyPattern)
	}
	id := itemID.String()

	i.logger.Info("Invalidating item cache",
		zap.String("event_type", eventType),
		zap.String("item_id", id),
	)
	return i.cache.Delete(ctx, cache.ItemKey(id))
}
