package events

import (
	"context"
	"encoding/json"

	"github.com/iov-one/treasury/errors"
	"github.com/segmentio/kafka-go"
)

// KafkaSink writes every record as a JSON message to a Kafka topic. The
// event kind is used as the message key.
type KafkaSink struct {
	writer *kafka.Writer
}

var _ Sink = (*KafkaSink)(nil)

// NewKafkaSink returns a sink writing to the given topic.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka brokers")
	}
	if topic == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka topic")
	}
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}, nil
}

func (s *KafkaSink) Publish(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(records))
	for _, r := range records {
		msg, err := kafkaMessage(r)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "kafka write")
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func kafkaMessage(r Record) (kafka.Message, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return kafka.Message{}, errors.Wrapf(errors.ErrInput, "cannot serialize record: %s", err)
	}
	return kafka.Message{
		Key:   []byte(r.Event.Kind),
		Value: raw,
		Time:  r.OccurredAt,
	}, nil
}
