package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type payload struct {
	Name string `json:"name"`
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher[payload](w)

	require.NoError(t, p.Publish(context.Background(), "key-1", payload{Name: "Jeanne"}))

	require.Len(t, w.messages, 1)
	assert.Equal(t, "key-1", string(w.messages[0].Key))

	var decoded payload
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, "Jeanne", decoded.Name)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writeErr := errors.New("broker down")
	p := NewKafkaPublisher[payload](&recordingWriter{err: writeErr})

	err := p.Publish(context.Background(), "k", payload{})
	assert.ErrorIs(t, err, writeErr)
}

func TestKafkaPublisher_MarshalError(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher[chan int](w)

	err := p.Publish(context.Background(), "k", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.messages)
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher[payload](w)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
