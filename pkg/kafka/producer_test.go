package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	err      error
	messages []kafkago.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishReusesWriterPerTopic(t *testing.T) {
	writers := map[string]*fakeWriter{}
	p := NewProducerWithFactory(func(topic string) Writer {
		w := &fakeWriter{}
		writers[topic] = w
		return w
	})

	msg := Message{Key: []byte("k"), Value: []byte(`{}`), Headers: map[string]string{"event_type": "x"}}
	require.NoError(t, p.Publish(context.Background(), "a", msg))
	require.NoError(t, p.Publish(context.Background(), "a", msg, msg))
	require.NoError(t, p.Publish(context.Background(), "b", msg))

	require.Len(t, writers, 2)
	assert.Len(t, writers["a"].messages, 3)
	assert.Len(t, writers["b"].messages, 1)

	got := writers["b"].messages[0]
	assert.Equal(t, []byte("k"), got.Key)
	require.Len(t, got.Headers, 1)
	assert.Equal(t, "event_type", got.Headers[0].Key)
	assert.Equal(t, []byte("x"), got.Headers[0].Value)

	require.NoError(t, p.Close())
	assert.True(t, writers["a"].closed)
	assert.True(t, writers["b"].closed)
}

func TestProducer_PublishError(t *testing.T) {
	p := NewProducerWithFactory(func(string) Writer {
		return &fakeWriter{err: errors.New("leader not available")}
	})

	err := p.Publish(context.Background(), "events", Message{Value: []byte("v")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka publish to events")
}

func TestProducer_PublishNothing(t *testing.T) {
	created := 0
	p := NewProducerWithFactory(func(string) Writer {
		created++
		return &fakeWriter{}
	})

	require.NoError(t, p.Publish(context.Background(), "events"))
	assert.Zero(t, created)
}

func TestNewTransport(t *testing.T) {
	transport, err := newTransport(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.Nil(t, transport)

	transport, err = newTransport(Config{TLS: true, SASLEnabled: true, SASLMechanism: "SCRAM-SHA-512", SASLUsername: "u", SASLPassword: "p"})
	require.NoError(t, err)
	require.NotNil(t, transport)
	assert.NotNil(t, transport.TLS)
	assert.Equal(t, "SCRAM-SHA-512", transport.SASL.Name())

	_, err = newTransport(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	assert.Error(t, err)
}

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
