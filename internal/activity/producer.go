package activity

import (
	"context"
	"encoding/json"
	"time"

	"devcollab/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Producer writes activity records to kafka for offline consumers (feeds,
// notification digests). Everything is best effort: a missing or failing
// broker never affects the request that produced the activity.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer create a producer. writer may be nil when kafka is not
// configured; Record then becomes a no-op.
func NewProducer(writer *kafka.Writer) *Producer {
	return &Producer{writer: writer}
}

type record struct {
	Type       string                 `json:"type"`
	OccurredAt int64                  `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// Record emit one activity record off the caller's critical path
func (p *Producer) Record(ctx context.Context, eventType string, payload map[string]interface{}) {
	if p == nil || p.writer == nil {
		return
	}

	data, err := json.Marshal(record{
		Type:       eventType,
		OccurredAt: time.Now().UnixMilli(),
		Payload:    payload,
	})
	if err != nil {
		logger.Log.Error("marshal activity record failed", zap.String("err", err.Error()))
		return
	}

	go func() {
		wctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := p.writer.WriteMessages(wctx, kafka.Message{
			Key:   []byte(eventType),
			Value: data,
		}); err != nil {
			logger.Log.Warn("write activity record failed",
				zap.String("type", eventType), zap.String("err", err.Error()))
		}
	}()
}

// Close flush and close the underlying writer
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
