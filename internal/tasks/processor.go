package tasks

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/events"
)

// PopularityCounter tracks bookings per destination.
type PopularityCounter interface {
	Incr(ctx context.Context, destinationID string, delta float64) error
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Processor reacts to booking events. Popularity counts live bookings:
// created adds one, deleted removes one.
type Processor struct {
	logger     zerolog.Logger
	popularity PopularityCounter
	notifier   Notifier
}

func NewProcessor(logger zerolog.Logger, popularity PopularityCounter, notifier Notifier) *Processor {
	return &Processor{
		logger:     logger,
		popularity: popularity,
		notifier:   notifier,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	event, err := events.Decode(msg.Values)
	if err != nil {
		// A malformed message will never decode; acknowledge it.
		p.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("dropping undecodable event")
		return nil
	}

	switch event.Type {
	case events.BookingCreated:
		return p.handleCreated(ctx, event)
	case events.BookingDeleted:
		return p.handleDeleted(ctx, event)
	case events.BookingUpdated:
		p.logger.Info().
			Str("booking_id", event.BookingID).
			Str("status", string(event.Status)).
			Msg("booking updated")
		return nil
	default:
		p.logger.Warn().Str("type", string(event.Type)).Str("message_id", msg.ID).Msg("unknown event type")
		return nil
	}
}

func (p *Processor) handleCreated(ctx context.Context, event events.BookingEvent) error {
	if err := p.bump(ctx, event.DestinationID, 1); err != nil {
		return err
	}

	if p.notifier != nil {
		text := fmt.Sprintf("New booking %s for destination %s: %.2f (%s)",
			event.BookingID, event.DestinationID, event.TotalAmount, event.Status)
		// Notifications are best effort; retrying would double the popularity bump.
		if err := p.notifier.Notify(ctx, text); err != nil {
			p.logger.Warn().Err(err).Str("booking_id", event.BookingID).Msg("booking notification failed")
		}
	}
	return nil
}

func (p *Processor) handleDeleted(ctx context.Context, event events.BookingEvent) error {
	return p.bump(ctx, event.DestinationID, -1)
}

func (p *Processor) bump(ctx context.Context, destinationID string, delta float64) error {
	if p.popularity == nil || destinationID == "" {
		return nil
	}
	if err := p.popularity.Incr(ctx, destinationID, delta); err != nil {
		return fmt.Errorf("update popularity for %s: %w", destinationID, err)
	}
	return nil
}
