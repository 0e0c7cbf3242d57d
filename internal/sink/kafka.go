package sink

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Kafka publishes event frames to a topic. The writer runs asynchronously
// with a low batch timeout, so Write never stalls the tick path.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}
	return &Kafka{writer: w}
}

func (k *Kafka) Write(p []byte) (int, error) {
	value := make([]byte, len(p))
	copy(value, p)

	err := k.writer.WriteMessages(context.Background(), kafka.Message{Value: value})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (k *Kafka) Flush() error { return nil }

func (k *Kafka) Close() error { return k.writer.Close() }
