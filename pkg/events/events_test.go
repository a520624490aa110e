package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"periodic-tables/backend/config"
)

func TestEncode_StampsOccurredAt(t *testing.T) {
	body, err := Encode(Event{Type: TypeReservationCreated, ReservationID: 7, Status: "booked"})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, TypeReservationCreated, got["type"])
	assert.Equal(t, float64(7), got["reservation_id"])
	assert.NotEmpty(t, got["occurred_at"])
	assert.NotContains(t, got, "table_id")
}

func TestEncode_KeepsOccurredAt(t *testing.T) {
	body, err := Encode(Event{Type: TypeReservationDeleted, OccurredAt: "2025-01-15T12:00:00Z"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"occurred_at":"2025-01-15T12:00:00Z"`)
}

func TestNewPublisher_DisabledIsNop(t *testing.T) {
	p, err := NewPublisher(&config.EventsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{Type: TypeReservationCreated}))
	assert.NoError(t, p.Close())
}

func TestAMQPPublisher_RedialsAfterBrokerLoss(t *testing.T) {
	dials := 0
	p := &AMQPPublisher{
		queue: "reservations.events",
		dial: func() (*amqp.Connection, *amqp.Channel, error) {
			dials++
			return nil, nil, errors.New("connection refused")
		},
		logger: zap.NewNop(),
	}

	for i := 1; i <= 2; i++ {
		err := p.Publish(context.Background(), Event{Type: TypeReservationCreated})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq reconnect")
		assert.Equal(t, i, dials, "every publish without a live channel should redial")
	}
	assert.NoError(t, p.Close())
}
