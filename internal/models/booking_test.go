package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled},
		BookingStatusCancelled: {BookingStatusCancelled},
		BookingStatusCompleted: {BookingStatusCompleted},
	}
	all := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted}

	for from, targets := range allowed {
		for _, to := range all {
			assert.Equal(t, contains(targets, to), from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, BookingStatusCompleted.Valid())
	assert.False(t, BookingStatus("refunded").Valid())
	assert.True(t, DifficultyExtreme.Valid())
	assert.False(t, Difficulty("extreme").Valid())
	assert.True(t, UserRoleAdmin.Valid())
	assert.False(t, UserRole("root").Valid())
}

func contains(list []BookingStatus, s BookingStatus) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
