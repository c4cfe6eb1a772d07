package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("class-1")
	defer cleanup()

	hub.Publish("class-1", Event{Topic: "class-1", Event: "attendance.recorded", Data: "payload"})

	select {
	case event := <-ch:
		assert.Equal(t, "attendance.recorded", event.Event)
		assert.Equal(t, "payload", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishDoesNotCrossTopics(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("class-1")
	defer cleanup()

	hub.Publish("class-2", Event{Topic: "class-2", Event: "attendance.recorded"})

	assert.Empty(t, ch)
	assert.Equal(t, 1, hub.SubscriberCount("class-1"))
	assert.Equal(t, 0, hub.SubscriberCount("class-2"))
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("class-1")
	_, cleanup2 := hub.Subscribe("class-1")
	require.Equal(t, 2, hub.SubscriberCount("class-1"))

	cleanup1()
	assert.Equal(t, 1, hub.SubscriberCount("class-1"))

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount("class-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishSkipsFullChannels(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("class-1")
	defer cleanup()

	// Channel buffer is 10; the extra publishes must not block.
	for i := 0; i < 15; i++ {
		hub.Publish("class-1", Event{Topic: "class-1", Event: "attendance.recorded", Data: i})
	}

	assert.Len(t, ch, 10)
}
