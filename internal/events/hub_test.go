package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubBroadcastReachesAllListeners(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	hub.Broadcast(Event{Collection: CollectionComplaints, Action: ActionCreated, ID: "c1"})

	assert.Equal(t, "c1", recv(t, ch1).ID)
	assert.Equal(t, "c1", recv(t, ch2).ID)
}

func TestHubCollectionFiltering(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(CollectionNotifications)
	defer cancel()

	hub.Broadcast(Event{Collection: CollectionComplaints, Action: ActionCreated, ID: "c1"})
	hub.Broadcast(Event{Collection: CollectionNotifications, Action: ActionCreated, ID: "n1"})

	evt := recv(t, ch)
	assert.Equal(t, CollectionNotifications, evt.Collection)
	assert.Equal(t, "n1", evt.ID)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra event: %+v", extra)
	default:
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	cancel()

	// Channel is closed by the unsubscribe handle.
	_, ok := <-ch
	assert.False(t, ok)

	// Broadcasting after unsubscribe must not panic on the closed channel.
	hub.Broadcast(Event{Collection: CollectionComplaints, Action: ActionDeleted, ID: "c1"})
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe()
	cancel()
	assert.NotPanics(t, func() { cancel() })
}

func TestHubSlowListenerDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overflow the listener buffer without reading.
		for i := 0; i < 100; i++ {
			hub.Broadcast(Event{Collection: CollectionComplaints, Action: ActionCreated})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow listener")
	}

	_ = ch
}

func TestChannelNaming(t *testing.T) {
	assert.Equal(t, "events:complaints", channelFor(CollectionComplaints))
	assert.Equal(t, "events:notifications", channelFor(CollectionNotifications))
}
