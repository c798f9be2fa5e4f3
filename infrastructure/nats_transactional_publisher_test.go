package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain/events"
)

// capturingPublisher records every event forwarded to it
type capturingPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *capturingPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_FlushPublishesBuffered(t *testing.T) {
	mockPublisher := &capturingPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	created := events.UserCreatedEvent{
		UserID:         1,
		Username:       "alice",
		InitialBalance: decimal.NewFromFloat(300.00),
	}
	changed := events.BalanceChangeEvent{
		UserID:     1,
		OldBalance: decimal.NewFromFloat(300.00),
		NewBalance: decimal.NewFromFloat(250.00),
		Change:     decimal.NewFromFloat(-50.00),
		Reason:     "bet_placed",
	}

	require.NoError(t, transPublisher.Publish(created))
	require.NoError(t, transPublisher.Publish(changed))

	// Nothing reaches the real publisher until flush
	assert.Empty(t, mockPublisher.PublishedEvents)

	require.NoError(t, transPublisher.Flush(context.Background()))

	// Events arrive in publish order
	require.Len(t, mockPublisher.PublishedEvents, 2)
	assert.Equal(t, created, mockPublisher.PublishedEvents[0])
	assert.Equal(t, changed, mockPublisher.PublishedEvents[1])
}

func TestNATSTransactionalPublisher_FlushClearsQueue(t *testing.T) {
	mockPublisher := &capturingPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.UserCreatedEvent{UserID: 1, Username: "alice"}))
	require.NoError(t, transPublisher.Flush(context.Background()))
	require.Len(t, mockPublisher.PublishedEvents, 1)

	// A second flush must not republish
	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Len(t, mockPublisher.PublishedEvents, 1)
}

func TestNATSTransactionalPublisher_FlushContinuesOnError(t *testing.T) {
	mockPublisher := &capturingPublisher{PublishError: errors.New("nats unavailable")}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.UserCreatedEvent{UserID: 1, Username: "alice"}))

	// Flush is best-effort; publish failures are logged, not returned
	require.NoError(t, transPublisher.Flush(context.Background()))

	// The queue is cleared even though publishing failed
	mockPublisher.PublishError = nil
	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Empty(t, mockPublisher.PublishedEvents)
}

func TestNATSTransactionalPublisher_DiscardDropsBuffered(t *testing.T) {
	mockPublisher := &capturingPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.UserCreatedEvent{UserID: 1, Username: "alice"}))
	require.NoError(t, transPublisher.Publish(events.UserCreatedEvent{UserID: 2, Username: "bob"}))

	transPublisher.Discard()

	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Empty(t, mockPublisher.PublishedEvents)
}
