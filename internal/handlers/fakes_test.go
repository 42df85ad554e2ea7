package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memoryUsers) Create(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.User{}, repository.ErrEmailTaken
		}
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return models.User{}, repository.ErrUserNotFound
}

type memoryDestinations struct {
	mu    sync.Mutex
	items map[string]models.Destination
}

func (m *memoryDestinations) Create(_ context.Context, d models.Destination) (models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Slug == d.Slug {
			return models.Destination{}, repository.ErrSlugTaken
		}
	}
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	m.items[d.ID] = d
	return d, nil
}

func (m *memoryDestinations) GetByID(_ context.Context, id string) (models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.items[id]; ok {
		return d, nil
	}
	return models.Destination{}, repository.ErrDestinationNotFound
}

func (m *memoryDestinations) GetBySlug(_ context.Context, slug string) (models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.items {
		if d.Slug == slug {
			return d, nil
		}
	}
	return models.Destination{}, repository.ErrDestinationNotFound
}

func (m *memoryDestinations) List(_ context.Context, filter repository.DestinationFilter) ([]models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Destination{}
	for _, d := range m.items {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && d.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memoryDestinations) ListByIDs(ctx context.Context, ids []string) ([]models.Destination, error) {
	out := []models.Destination{}
	for _, id := range ids {
		if d, err := m.GetByID(ctx, id); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memoryDestinations) Update(_ context.Context, id string, patch repository.DestinationPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return repository.ErrDestinationNotFound
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	m.items[id] = d
	return nil
}

func (m *memoryDestinations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrDestinationNotFound
	}
	delete(m.items, id)
	return nil
}

type memoryBookings struct {
	mu    sync.Mutex
	items map[string]models.Booking
}

func (m *memoryBookings) Create(_ context.Context, b models.Booking) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	m.items[b.ID] = b
	return b, nil
}

func (m *memoryBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.items[id]; ok {
		return b, nil
	}
	return models.Booking{}, repository.ErrBookingNotFound
}

func (m *memoryBookings) List(_ context.Context, filter repository.BookingFilter) ([]models.BookingWithDestination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BookingWithDestination{}
	for _, b := range m.items {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		out = append(out, models.BookingWithDestination{Booking: b})
	}
	return out, nil
}

func (m *memoryBookings) Update(_ context.Context, id string, patch repository.BookingPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.NumberOfPeople != nil {
		b.NumberOfPeople = *patch.NumberOfPeople
	}
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	m.items[id] = b
	return nil
}

func (m *memoryBookings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryBookings) CompleteElapsed(context.Context, time.Time) ([]string, error) {
	return nil, nil
}
