package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"cash-register/config"
	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}


func TestPublisher_PaymentCommitted(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "cash_register_events", nil, zerolog.New(io.Discard))

	payment := &domain.Payment{
		ID:             uuid.New(),
		TenderedAmount: 200000,
		PurchaseAmount: 49500,
		ChangeAmount:   150500,
		Change:         []domain.CashLine{{Denomination: 20000, Quantity: 5}},
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, p.Publish(context.Background(), domain.NewPaymentCommittedEvent(payment)))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, payment.ID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "payment.committed", string(msg.Headers[0].Value))

	var got domain.RegisterEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, int64(150500), got.ChangeAmount)
	assert.Equal(t, payment.ID, *got.PaymentID)
}

func TestPublisher_RegisterEmptiedKey(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "events", nil, zerolog.New(io.Discard))

	require.NoError(t, p.Publish(context.Background(), domain.NewRegisterEmptiedEvent(0, time.Now())))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "register.emptied", string(w.msgs[0].Key))
}

func TestPublisher_SignsWhenSignerSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockEventSigner(ctrl)
	w := &fakeWriter{}
	p := newPublisher(w, "events", signer, zerolog.New(io.Discard))

	event := domain.NewRegisterEmptiedEvent(2000, time.Now())
	signer.EXPECT().Sign(event, gomock.Any()).Return("abc123")
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, headerSignature, msg.Headers[1].Key)
	assert.Equal(t, "abc123", string(msg.Headers[1].Value))
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newPublisher(w, "events", nil, zerolog.New(io.Discard))

	err := p.Publish(context.Background(), domain.NewRegisterEmptiedEvent(10, time.Now()))
	assert.ErrorContains(t, err, "leader not available")
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "events", nil, zerolog.New(io.Discard))
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "events"}, nil, zerolog.New(io.Discard))
	assert.Equal(t, "events", p.topic)
	assert.NoError(t, p.Close())
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthCheck(nil)
	assert.Equal(t, "kafka", h.Name())
	assert.ErrorContains(t, h.Ping(context.Background()), "no brokers")

	h = NewHealthCheck([]string{"a:9092", "b:9092"})
	h.dial = func(context.Context, string, string) (*kafka.Conn, error) {
		return nil, errors.New("connection refused")
	}
	assert.ErrorContains(t, h.Ping(context.Background()), "connection refused")
}
