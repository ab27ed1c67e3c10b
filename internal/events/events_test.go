package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, nil)

	err := p.Publish(context.Background(), Event{
		Type:           EvaluationCreated,
		JobID:          "A1234",
		ResumeID:       "r-1",
		MatchScore:     80,
		CompositeScore: 83.45,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "A1234", string(w.msgs[0].Key))
	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, EvaluationCreated, got.Type)
	assert.Equal(t, 83.45, got.CompositeScore)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaPublisher_KeepsTimestamp(t *testing.T) {
	w := &fakeWriter{}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, newKafkaPublisher(w, nil).Publish(context.Background(), Event{Type: BatchCompleted, JobID: "B0001", OccurredAt: at}))

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}

	err := newKafkaPublisher(w, nil).Publish(context.Background(), Event{Type: EvaluationDeleted, JobID: "C0002"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newKafkaPublisher(w, nil).Close())
	assert.True(t, w.closed)
}

func TestNew_NoBrokersIsNop(t *testing.T) {
	p := New(nil, "topic", nil)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
