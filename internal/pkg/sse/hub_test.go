package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishRoutesByStaff(t *testing.T) {
	h := NewHub()

	mine, cleanupMine := h.Subscribe("E1")
	defer cleanupMine()
	all, cleanupAll := h.Subscribe(AllStaff)
	defer cleanupAll()
	other, cleanupOther := h.Subscribe("E2")
	defer cleanupOther()

	h.Publish(Event{StaffID: "E1", Type: "clock_in"})

	require.Len(t, mine, 1)
	require.Len(t, all, 1)
	assert.Len(t, other, 0)
	assert.Equal(t, "clock_in", (<-mine).Type)
	assert.Equal(t, "E1", (<-all).StaffID)
}

func TestHub_FullSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("E1")
	defer cleanup()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish(Event{StaffID: "E1", Type: "clock_in"})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_Cleanup(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("E1")
	_, cleanupAll := h.Subscribe(AllStaff)
	assert.Equal(t, 2, h.TotalSubscribers())

	cleanup()
	cleanup()
	assert.Equal(t, 1, h.TotalSubscribers())

	_, open := <-ch
	assert.False(t, open)

	cleanupAll()
	assert.Equal(t, 0, h.TotalSubscribers())
}

func TestHub_NilPublishIsNoop(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(Event{StaffID: "E1"}) })
}
