package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

type event struct {
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "reservations"}

	require.NoError(t, p.Publish(context.Background(), "reservation.submitted", event{Date: "2025-10-01", Tickets: 5}))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "reservation.submitted", string(w.msgs[0].Key))
	var got event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, 5, got.Tickets)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	boom := errors.New("no leader")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}, topic: "reservations"}

	err := p.Publish(context.Background(), "k", event{})
	assert.ErrorIs(t, err, boom)
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{channel: ch, exchange: DefaultExchange}

	require.NoError(t, p.Publish(context.Background(), "reservation.submitted", event{Date: "2025-10-02"}))

	assert.Equal(t, "reservations", ch.exchange)
	assert.Equal(t, "reservation.submitted", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.JSONEq(t, `{"date":"2025-10-02","tickets":0}`, string(ch.msg.Body))
}

func TestPublishers_RejectUnmarshalable(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{channel: ch, exchange: DefaultExchange}

	assert.Error(t, p.Publish(context.Background(), "k", make(chan int)))
	assert.Error(t, LogPublisher{}.Publish(context.Background(), "k", make(chan int)))
}

func TestNew(t *testing.T) {
	p, err := New(Options{Kind: KindLog})
	require.NoError(t, err)
	assert.IsType(t, LogPublisher{}, p)

	p, err = New(Options{Kind: KindNone})
	require.NoError(t, err)
	assert.NoError(t, p.Publish(context.Background(), "k", nil))

	p, err = New(Options{Kind: KindKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "reservations"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, p)
	assert.NoError(t, p.Close())

	_, err = New(Options{Kind: "carrier-pigeon"})
	assert.Error(t, err)
}
