package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var registered, recorded int
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		registered++
		return nil
	})
	d.Subscribe(EventSearchRecorded, func(context.Context, Event) error {
		recorded++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRegistered, Timestamp: time.Now()}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSearchRecorded, Timestamp: time.Now()}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSearchRecorded, Timestamp: time.Now()}))

	assert.Equal(t, 1, registered)
	assert.Equal(t, 2, recorded)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventSearchRecorded, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventSearchRecorded, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSearchRecorded}))
	assert.True(t, secondCalled)
}
