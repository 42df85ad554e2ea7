package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

type Type string

const (
	BookingCreated Type = "booking.created"
	BookingUpdated Type = "booking.updated"
	BookingDeleted Type = "booking.deleted"
)

// BookingEvent is the message written to the booking stream. Values travel
// as flat string fields.
type BookingEvent struct {
	Type          Type
	BookingID     string
	UserID        string
	DestinationID string
	Status        models.BookingStatus
	TotalAmount   float64
	OccurredAt    time.Time
}

func NewBookingEvent(t Type, b models.Booking) BookingEvent {
	return BookingEvent{
		Type:          t,
		BookingID:     b.ID,
		UserID:        b.UserID,
		DestinationID: b.DestinationID,
		Status:        b.Status,
		TotalAmount:   b.TotalAmount,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e BookingEvent) Values() map[string]any {
	return map[string]any{
		"type":          string(e.Type),
		"bookingId":     e.BookingID,
		"userId":        e.UserID,
		"destinationId": e.DestinationID,
		"status":        string(e.Status),
		"totalAmount":   strconv.FormatFloat(e.TotalAmount, 'f', 2, 64),
		"occurredAt":    e.OccurredAt.Format(time.RFC3339Nano),
	}
}

// Decode rebuilds an event from stream values. Unknown or missing fields are
// left zero; only a malformed number or timestamp is an error.
func Decode(values map[string]any) (BookingEvent, error) {
	str := func(key string) string {
		if v, ok := values[key].(string); ok {
			return v
		}
		return ""
	}

	event := BookingEvent{
		Type:          Type(str("type")),
		BookingID:     str("bookingId"),
		UserID:        str("userId"),
		DestinationID: str("destinationId"),
		Status:        models.BookingStatus(str("status")),
	}

	if raw := str("totalAmount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return BookingEvent{}, fmt.Errorf("parse totalAmount: %w", err)
		}
		event.TotalAmount = amount
	}
	if raw := str("occurredAt"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return BookingEvent{}, fmt.Errorf("parse occurredAt: %w", err)
		}
		event.OccurredAt = at
	}
	return event, nil
}

type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	if p == nil || p.client == nil {
		return nil
	}
	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: 100000,
		Approx: true,
		Values: event.Values(),
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
