package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdeck/backend/internal/models"
)

func receiveEvent(t *testing.T, sub Subscriber) *models.ChangeEvent {
	t.Helper()
	select {
	case event := <-sub:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	first := broker.Subscribe()
	second := broker.Subscribe()
	require.Equal(t, 2, broker.SubscriberCount())

	contact := &models.Contact{ID: 1, FirstName: "Ada"}
	broker.Publish(models.CreatedEvent(contact))

	for _, sub := range []Subscriber{first, second} {
		event := receiveEvent(t, sub)
		assert.Equal(t, models.EventContactCreated, event.Type)
		assert.Equal(t, int64(1), event.ContactID)
	}
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()

	broker.Publish(models.CreatedEvent(&models.Contact{ID: 1}))
	broker.Publish(models.UpdatedEvent(&models.Contact{ID: 1}))
	broker.Publish(models.DeletedEvent(1))

	assert.Equal(t, models.EventContactCreated, receiveEvent(t, sub).Type)
	assert.Equal(t, models.EventContactUpdated, receiveEvent(t, sub).Type)
	assert.Equal(t, models.EventContactDeleted, receiveEvent(t, sub).Type)
}

func TestLateSubscriberSeesNoReplay(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	early := broker.Subscribe()
	broker.Publish(models.CreatedEvent(&models.Contact{ID: 7}))
	receiveEvent(t, early) // drain so we know dispatch completed

	late := broker.Subscribe()
	select {
	case event := <-late:
		t.Fatalf("late subscriber must not receive past events, got %v", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	broker.Unsubscribe(sub)
	assert.Equal(t, 0, broker.SubscriberCount())

	// Channel is closed on unsubscribe
	_, open := <-sub
	assert.False(t, open)

	// Unsubscribing twice is harmless
	broker.Unsubscribe(sub)
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	// Never read from this subscription; its buffer fills and further
	// events are dropped instead of stalling dispatch.
	stalled := broker.Subscribe()
	_ = stalled
	healthy := broker.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			broker.Publish(models.DeletedEvent(int64(i)))
		}
		close(done)
	}()

	received := 0
	timeout := time.After(5 * time.Second)
	for received < 200 {
		select {
		case <-healthy:
			received++
		case <-timeout:
			t.Fatalf("healthy subscriber stalled after %d events", received)
		}
	}
	<-done
}

func TestStopClosesSubscriptions(t *testing.T) {
	broker := NewBroker()
	broker.Start()

	sub := broker.Subscribe()
	broker.Stop()

	_, open := <-sub
	assert.False(t, open)

	// Publishing after stop must not panic or block
	broker.Publish(models.DeletedEvent(1))
	broker.Stop()
}
