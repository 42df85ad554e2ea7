package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/events"
	"github.com/DonArtkins/kuja-twende-adventures/internal/ids"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
)

type BookingStore interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]models.BookingWithDestination, error)
	Update(ctx context.Context, id string, patch repository.BookingPatch) error
	Delete(ctx context.Context, id string) error
	CompleteElapsed(ctx context.Context, cutoff time.Time) ([]string, error)
}

type DestinationReader interface {
	GetByID(ctx context.Context, id string) (models.Destination, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

type BookingOptions struct {
	// StrictTransitions enforces pending→confirmed|cancelled and
	// confirmed→completed|cancelled on update.
	StrictTransitions bool
}

type BookingService struct {
	bookings     BookingStore
	destinations DestinationReader
	events       EventPublisher
	opts         BookingOptions
	log          zerolog.Logger
}

func NewBookingService(
	bookings BookingStore,
	destinations DestinationReader,
	publisher EventPublisher,
	opts BookingOptions,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		destinations: destinations,
		events:       publisher,
		opts:         opts,
		log:          log,
	}
}

type CreateBookingInput struct {
	DestinationID   string
	Name            string
	Email           string
	Phone           string
	Date            time.Time
	NumberOfPeople  int
	SpecialRequests string
}

// Create prices the booking from the destination's current unit price. The
// amount is fixed at this point; later price changes do not touch it.
func (s *BookingService) Create(ctx context.Context, actor Actor, input CreateBookingInput) (models.Booking, error) {
	input.DestinationID = strings.TrimSpace(input.DestinationID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.DestinationID == "" || input.Name == "" || input.Email == "" || input.Phone == "" {
		return models.Booking{}, invalid("Destination, name, email, and phone are required")
	}
	if input.Date.IsZero() {
		return models.Booking{}, invalid("A travel date is required")
	}
	if input.NumberOfPeople < 1 {
		return models.Booking{}, invalid("Number of people must be at least 1")
	}

	destination, err := s.destinations.GetByID(ctx, input.DestinationID)
	if err != nil {
		if errors.Is(err, repository.ErrDestinationNotFound) {
			return models.Booking{}, err
		}
		return models.Booking{}, fmt.Errorf("load destination: %w", err)
	}

	if destination.MaxGroupSize > 0 && input.NumberOfPeople > destination.MaxGroupSize {
		s.log.Debug().
			Str("destination_id", destination.ID).
			Int("party_size", input.NumberOfPeople).
			Int("max_group_size", destination.MaxGroupSize).
			Msg("party exceeds destination group size")
	}

	booking, err := s.bookings.Create(ctx, models.Booking{
		ID:              ids.New(),
		UserID:          actor.UserID,
		DestinationID:   destination.ID,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Date:            input.Date.UTC(),
		NumberOfPeople:  input.NumberOfPeople,
		SpecialRequests: strings.TrimSpace(input.SpecialRequests),
		Status:          models.BookingStatusPending,
		TotalAmount:     destination.Price * float64(input.NumberOfPeople),
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	s.publish(ctx, events.NewBookingEvent(events.BookingCreated, booking))

	return booking, nil
}

// List returns bookings newest first. Non-admin callers only ever see their
// own bookings, whatever the filter asks for.
func (s *BookingService) List(ctx context.Context, actor Actor, filter repository.BookingFilter) ([]models.BookingWithDestination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid(fmt.Sprintf("Unknown booking status %q", filter.Status))
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	return s.bookings.List(ctx, filter)
}

func (s *BookingService) Get(ctx context.Context, actor Actor, id string) (models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return models.Booking{}, repository.ErrBookingNotFound
	}
	return booking, nil
}

// Update merges the provided fields into the booking. Status may move to
// any member of the status set unless strict transitions are enabled, and
// TotalAmount is stored as given.
func (s *BookingService) Update(ctx context.Context, actor Actor, id string, patch repository.BookingPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return invalid(fmt.Sprintf("Unknown booking status %q", *patch.Status))
	}
	if patch.NumberOfPeople != nil && *patch.NumberOfPeople < 1 {
		return invalid("Number of people must be at least 1")
	}

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	if s.opts.StrictTransitions && patch.Status != nil && !current.Status.CanTransition(*patch.Status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, *patch.Status)
	}

	if err := s.bookings.Update(ctx, id, patch); err != nil {
		return err
	}

	if patch.Status != nil {
		current.Status = *patch.Status
	}
	if patch.TotalAmount != nil {
		current.TotalAmount = *patch.TotalAmount
	}
	s.publish(ctx, events.NewBookingEvent(events.BookingUpdated, current))
	return nil
}

func (s *BookingService) Delete(ctx context.Context, actor Actor, id string) error {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.NewBookingEvent(events.BookingDeleted, current))
	return nil
}

// CompleteElapsed marks confirmed bookings whose travel date has passed as
// completed.
func (s *BookingService) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	completed, err := s.bookings.CompleteElapsed(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("complete elapsed bookings: %w", err)
	}
	for _, id := range completed {
		s.publish(ctx, events.BookingEvent{
			Type:       events.BookingUpdated,
			BookingID:  id,
			Status:     models.BookingStatusCompleted,
			OccurredAt: now.UTC(),
		})
	}
	return len(completed), nil
}

func (s *BookingService) publish(ctx context.Context, event events.BookingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("publish booking event failed")
	}
}
