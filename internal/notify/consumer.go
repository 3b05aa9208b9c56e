package notify

import (
	"context"
	"encoding/json"

	"sabor-express/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the slice of kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer bridges the Kafka change topic to the in-process feed. It decodes
// each message only far enough to learn which table changed and drops the
// rest: subscribers re-query the repositories for current state.
type Consumer struct {
	Reader MessageReader
	Feed   *Feed
	logger *zap.SugaredLogger
}

func NewConsumer(reader MessageReader, feed *Feed, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{Reader: reader, Feed: feed, logger: logger}
}

func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("starting change feed consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("change feed consumer stopped")
				return
			}
			c.logger.Errorw("failed to read change message", "error", err)
			continue
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger.Errorw("failed to unmarshal change event", "error", err)
			continue
		}

		switch event.Table {
		case domain.TableOrders, domain.TableProducts:
			c.Feed.Publish(event.Table)
		default:
			c.logger.Warnw("change event for unknown table", "table", event.Table)
		}
	}
}
