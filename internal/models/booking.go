package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether the guarded lifecycle allows moving from s
// to next. Setting a status to itself is always allowed.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              string
	UserID          string
	DestinationID   string
	Name            string
	Email           string
	Phone           string
	Date            time.Time
	NumberOfPeople  int
	SpecialRequests string
	Status          BookingStatus
	TotalAmount     float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingWithDestination carries a booking and its destination, which is
// nil when the reference no longer resolves.
type BookingWithDestination struct {
	Booking
	Destination *DestinationSummary
}
