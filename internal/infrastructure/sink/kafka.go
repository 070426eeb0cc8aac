package sink

import (
	"context"
	"encoding/json"
	"time"

	"wallet-balances-reporter/internal/application"
	"wallet-balances-reporter/internal/domain"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes one JSON message per event, keyed by source and currency.
type Kafka struct {
	w messageWriter
}

var _ application.EventSink = (*Kafka)(nil)

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (k *Kafka) Insert(ctx context.Context, ev domain.Event) error {
	msg, err := buildMessage(ev, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "kafka: write %s", msg.Key)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}

func buildMessage(ev domain.Event, at time.Time) (kafka.Message, error) {
	payload := ev.Attributes()
	payload["eventType"] = ev.Type
	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "kafka: encode event")
	}
	return kafka.Message{
		Key:   []byte(ev.Balance.Source.String() + ":" + ev.Balance.Crypto),
		Value: value,
		Time:  at,
	}, nil
}
