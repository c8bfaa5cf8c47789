package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, unsub1 := hub.Subscribe()
	defer unsub1()
	ch2, unsub2 := hub.Subscribe()
	defer unsub2()

	assert.Equal(t, 2, hub.SubscriberCount())

	hub.PipelineItemsUpdated(7)

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, 7, event.Saved)
			assert.False(t, event.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// Must not panic or block
	hub.PipelineItemsUpdated(1)
}

func TestHub_UnsubscribeStopsDeliveryAndCloses(t *testing.T) {
	hub := NewHub()

	ch, unsub := hub.Subscribe()
	unsub()
	assert.Equal(t, 0, hub.SubscriberCount())

	// Channel is closed after unsubscribe
	_, open := <-ch
	assert.False(t, open)

	// Unsubscribe is idempotent
	unsub()

	hub.PipelineItemsUpdated(3)
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	_, unsub := hub.Subscribe()
	defer unsub()

	// Overfill the subscriber buffer; publishes must still return
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.PipelineItemsUpdated(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_EventsArriveInOrder(t *testing.T) {
	hub := NewHub()

	ch, unsub := hub.Subscribe()
	defer unsub()

	hub.PipelineItemsUpdated(1)
	hub.PipelineItemsUpdated(2)

	first := <-ch
	second := <-ch
	require.Equal(t, 1, first.Saved)
	require.Equal(t, 2, second.Saved)
}
