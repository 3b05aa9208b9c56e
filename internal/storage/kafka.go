package storage

import (
	"context"
	"encoding/json"
	"time"

	"sabor-express/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaChangePublisher struct {
	Writer *kafka.Writer
}

func NewKafkaChangePublisher(writer *kafka.Writer) *KafkaChangePublisher {
	return &KafkaChangePublisher{Writer: writer}
}

// PublishChange emits a row-change signal. The message keys on the table name
// so changes to one table stay ordered; ordering across tables is not promised.
func (p *KafkaChangePublisher) PublishChange(ctx context.Context, table, op string) error {
	payload, _ := json.Marshal(domain.ChangeEvent{
		Table:     table,
		Op:        op,
		Timestamp: time.Now(),
	})
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(table),
		Value: payload,
	})
}
