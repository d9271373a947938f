package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus_AllowedEdges(t *testing.T) {
	cases := []struct {
		from  string
		event BookingEvent
		to    string
	}{
		{BookingStatusPending, EventConfirm, BookingStatusConfirmed},
		{BookingStatusPending, EventCancel, BookingStatusCancelled},
		{BookingStatusConfirmed, EventCancel, BookingStatusCancelled},
		{BookingStatusConfirmed, EventComplete, BookingStatusCompleted},
	}

	for _, tc := range cases {
		next, ok := NextStatus(tc.from, tc.event)
		assert.True(t, ok, "%s --%s--> should be allowed", tc.from, tc.event)
		assert.Equal(t, tc.to, next)
	}
}

func TestNextStatus_RejectsEverythingElse(t *testing.T) {
	allowed := map[string]map[BookingEvent]bool{
		BookingStatusPending:   {EventConfirm: true, EventCancel: true},
		BookingStatusConfirmed: {EventCancel: true, EventComplete: true},
	}

	statuses := []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted}
	events := []BookingEvent{EventConfirm, EventCancel, EventComplete}

	for _, from := range statuses {
		for _, event := range events {
			if allowed[from][event] {
				continue
			}
			_, ok := NextStatus(from, event)
			assert.False(t, ok, "%s --%s--> must be rejected", from, event)
		}
	}
}

func TestNextStatus_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, terminal := range []string{BookingStatusCancelled, BookingStatusCompleted} {
		for _, event := range []BookingEvent{EventConfirm, EventCancel, EventComplete} {
			_, ok := NextStatus(terminal, event)
			assert.False(t, ok)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: BookingStatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: BookingStatusConfirmed}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCompleted}).IsTerminal())
}
