package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventTaskCreated, func(_ context.Context, event Event) error {
		seen = append(seen, event.AccountID)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTaskCreated, AccountID: "acc-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"acc-1"}, seen)

	// unsubscribed types are a no-op
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventAccountDeleted}))
	assert.Len(t, seen, 1)
}

func TestDispatcher_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	var called bool
	d.Subscribe(EventAccountRegistered, func(context.Context, Event) error { return boom })
	d.Subscribe(EventAccountRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAccountRegistered})
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}
