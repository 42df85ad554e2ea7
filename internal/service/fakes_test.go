package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DonArtkins/kuja-twende-adventures/internal/events"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/security"
)

func cheapHash(password string) ([]byte, error) {
	return security.HashPasswordWithParams(password, security.Argon2Params{
		Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8,
	})
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]models.User{}}
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
	u, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type memoryDestinations struct {
	mu    sync.Mutex
	items map[string]models.Destination
	lists int
}

func newMemoryDestinations(seed ...models.Destination) *memoryDestinations {
	m := &memoryDestinations{items: map[string]models.Destination{}}
	for _, d := range seed {
		m.items[d.ID] = d
	}
	return m
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
	d, ok := m.items[id]
	if !ok {
		return models.Destination{}, repository.ErrDestinationNotFound
	}
	return d, nil
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
	m.lists++
	out := []models.Destination{}
	for _, d := range m.items {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && d.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryDestinations) ListByIDs(_ context.Context, ids []string) ([]models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Destination{}
	for _, id := range ids {
		if d, ok := m.items[id]; ok {
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
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	if patch.Image != nil {
		d.Image = *patch.Image
	}
	if patch.Category != nil {
		d.Category = *patch.Category
	}
	if patch.Highlights != nil {
		d.Highlights = *patch.Highlights
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

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{items: map[string]models.Booking{}}
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
	b, ok := m.items[id]
	if !ok {
		return models.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

func (m *memoryBookings) List(_ context.Context, filter repository.BookingFilter) ([]models.BookingWithDestination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BookingWithDestination{}
	for _, b := range m.items {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, models.BookingWithDestination{Booking: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryBookings) Update(_ context.Context, id string, patch repository.BookingPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.NumberOfPeople != nil {
		b.NumberOfPeople = *patch.NumberOfPeople
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.TotalAmount != nil {
		b.TotalAmount = *patch.TotalAmount
	}
	b.UpdatedAt = time.Now().UTC()
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

func (m *memoryBookings) CompleteElapsed(_ context.Context, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, b := range m.items {
		if b.Status == models.BookingStatusConfirmed && b.Date.Before(cutoff) {
			b.Status = models.BookingStatusCompleted
			m.items[id] = b
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryCache struct {
	items       []models.Destination
	ok          bool
	invalidated int
}

func (c *memoryCache) Get(context.Context) ([]models.Destination, bool, error) {
	return c.items, c.ok, nil
}

func (c *memoryCache) Set(_ context.Context, destinations []models.Destination) error {
	c.items, c.ok = destinations, true
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.items, c.ok = nil, false
	c.invalidated++
	return nil
}

type fixedRanking []string

func (r fixedRanking) Top(_ context.Context, n int) ([]string, error) {
	if n < len(r) {
		return r[:n], nil
	}
	return r, nil
}

type putCall struct {
	key         string
	contentType string
	body        []byte
}

type memoryImages struct {
	puts []putCall
}

func (m *memoryImages) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.puts = append(m.puts, putCall{key: key, contentType: contentType, body: body})
	return "https://cdn.example.com/" + key, nil
}
