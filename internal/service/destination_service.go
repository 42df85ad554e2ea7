package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/ids"
	"github.com/DonArtkins/kuja-twende-adventures/internal/media/sniffer"
	"github.com/DonArtkins/kuja-twende-adventures/internal/media/svg"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
)

const (
	maxImageBytes   = 10 << 20
	slugAttempts    = 3
	defaultPopular  = 6
	maxPopularLimit = 50
)

type DestinationStore interface {
	Create(ctx context.Context, d models.Destination) (models.Destination, error)
	GetByID(ctx context.Context, id string) (models.Destination, error)
	GetBySlug(ctx context.Context, slug string) (models.Destination, error)
	List(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Destination, error)
	Update(ctx context.Context, id string, patch repository.DestinationPatch) error
	Delete(ctx context.Context, id string) error
}

type DestinationCache interface {
	Get(ctx context.Context) ([]models.Destination, bool, error)
	Set(ctx context.Context, destinations []models.Destination) error
	Invalidate(ctx context.Context) error
}

type PopularityReader interface {
	Top(ctx context.Context, n int) ([]string, error)
}

type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type DestinationService struct {
	store      DestinationStore
	cache      DestinationCache
	popularity PopularityReader
	images     ImageStore
	log        zerolog.Logger
}

func NewDestinationService(
	store DestinationStore,
	cache DestinationCache,
	popularity PopularityReader,
	images ImageStore,
	log zerolog.Logger,
) *DestinationService {
	return &DestinationService{
		store:      store,
		cache:      cache,
		popularity: popularity,
		images:     images,
		log:        log,
	}
}

type DestinationInput struct {
	Title        string
	Description  string
	Location     string
	Price        float64
	Image        string
	Category     string
	Duration     string
	MaxGroupSize int
	Difficulty   models.Difficulty
	Highlights   []string
}

func (in DestinationInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" {
		return invalid("Title and location are required")
	}
	if in.Price <= 0 {
		return invalid("Price must be greater than zero")
	}
	if in.MaxGroupSize < 1 {
		return invalid("Max group size must be at least 1")
	}
	if !in.Difficulty.Valid() {
		return invalid(fmt.Sprintf("Unknown difficulty %q", in.Difficulty))
	}
	return nil
}

func (s *DestinationService) Create(ctx context.Context, input DestinationInput) (models.Destination, error) {
	if err := input.validate(); err != nil {
		return models.Destination{}, err
	}

	destination := models.Destination{
		ID:           ids.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Location:     strings.TrimSpace(input.Location),
		Price:        input.Price,
		Image:        strings.TrimSpace(input.Image),
		Category:     strings.ToLower(strings.TrimSpace(input.Category)),
		Duration:     strings.TrimSpace(input.Duration),
		MaxGroupSize: input.MaxGroupSize,
		Difficulty:   input.Difficulty,
		Highlights:   cleanHighlights(input.Highlights),
	}

	base := slug.Make(destination.Title)
	if base == "" {
		base = strings.ToLower(destination.ID)
	}

	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		destination.Slug = base
		if attempt > 0 {
			suffix := strings.ToLower(ids.New())
			destination.Slug = base + "-" + suffix[len(suffix)-6:]
		}

		var created models.Destination
		created, err = s.store.Create(ctx, destination)
		if err == nil {
			s.invalidate(ctx)
			return created, nil
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return models.Destination{}, fmt.Errorf("save destination: %w", err)
		}
	}
	return models.Destination{}, fmt.Errorf("save destination: %w", err)
}

// Get resolves a destination by id, falling back to its slug.
func (s *DestinationService) Get(ctx context.Context, idOrSlug string) (models.Destination, error) {
	destination, err := s.store.GetByID(ctx, idOrSlug)
	if err == nil || !errors.Is(err, repository.ErrDestinationNotFound) {
		return destination, err
	}
	return s.store.GetBySlug(ctx, strings.ToLower(idOrSlug))
}

// GetByID is the strict lookup BookingService prices against.
func (s *DestinationService) GetByID(ctx context.Context, id string) (models.Destination, error) {
	return s.store.GetByID(ctx, id)
}

// List serves the unfiltered catalogue from cache when possible. Filtered
// queries always hit the store.
func (s *DestinationService) List(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, invalid(fmt.Sprintf("Unknown difficulty %q", filter.Difficulty))
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))

	if !filter.IsZero() || s.cache == nil {
		return s.store.List(ctx, filter)
	}

	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("destination cache read failed")
	} else if ok {
		return cached, nil
	}

	destinations, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, destinations); err != nil {
		s.log.Warn().Err(err).Msg("destination cache write failed")
	}
	return destinations, nil
}

// Popular ranks destinations by booking count. Without ranking data it
// falls back to the newest destinations.
func (s *DestinationService) Popular(ctx context.Context, limit int) ([]models.Destination, error) {
	if limit <= 0 {
		limit = defaultPopular
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	if s.popularity != nil {
		top, err := s.popularity.Top(ctx, limit)
		if err != nil {
			s.log.Warn().Err(err).Msg("popularity read failed")
		} else if len(top) > 0 {
			ranked, err := s.store.ListByIDs(ctx, top)
			if err != nil {
				return nil, err
			}
			if len(ranked) > 0 {
				return ranked, nil
			}
		}
	}

	return s.store.List(ctx, repository.DestinationFilter{Limit: limit})
}

func (s *DestinationService) Update(ctx context.Context, id string, patch repository.DestinationPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("Title cannot be empty")
	}
	if patch.Location != nil && strings.TrimSpace(*patch.Location) == "" {
		return invalid("Location cannot be empty")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return invalid("Price must be greater than zero")
	}
	if patch.MaxGroupSize != nil && *patch.MaxGroupSize < 1 {
		return invalid("Max group size must be at least 1")
	}
	if patch.Difficulty != nil && !patch.Difficulty.Valid() {
		return invalid(fmt.Sprintf("Unknown difficulty %q", *patch.Difficulty))
	}
	if patch.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*patch.Category))
		patch.Category = &category
	}
	if patch.Highlights != nil {
		highlights := cleanHighlights(*patch.Highlights)
		patch.Highlights = &highlights
	}

	if err := s.store.Update(ctx, id, patch); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

type ImageUpload struct {
	File         io.Reader
	DeclaredMIME string
}

// UploadImage stores a destination photo and points the destination at it.
func (s *DestinationService) UploadImage(ctx context.Context, id string, upload ImageUpload) (models.Destination, error) {
	if s.images == nil {
		return models.Destination{}, errors.New("image storage not configured")
	}
	if upload.File == nil {
		return models.Destination{}, invalid("An image file is required")
	}

	destination, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Destination{}, err
	}

	data, err := io.ReadAll(io.LimitReader(upload.File, maxImageBytes+1))
	if err != nil {
		return models.Destination{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return models.Destination{}, invalid("The uploaded file is empty")
	}
	if len(data) > maxImageBytes {
		return models.Destination{}, invalid("Images must be 10 MB or smaller")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Destination{}, invalid("Unsupported image type")
	}
	if upload.DeclaredMIME != "" && upload.DeclaredMIME != "application/octet-stream" && upload.DeclaredMIME != result.MIME {
		return models.Destination{}, invalid(fmt.Sprintf("Content type mismatch: declared %s, actual %s", upload.DeclaredMIME, result.MIME))
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return models.Destination{}, invalid("Invalid SVG document")
		}
		data = clean
	}

	key := imageObjectKey(destination.ID, string(result.Type), time.Now().UTC())
	url, err := s.images.Put(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME)
	if err != nil {
		return models.Destination{}, fmt.Errorf("put object: %w", err)
	}

	if err := s.store.Update(ctx, destination.ID, repository.DestinationPatch{Image: &url}); err != nil {
		return models.Destination{}, err
	}
	s.invalidate(ctx)

	destination.Image = url
	return destination, nil
}

func imageObjectKey(destinationID string, ext string, now time.Time) string {
	return path.Join("destinations", now.Format("2006/01/02"), fmt.Sprintf("%s.%s", destinationID, ext))
}

func (s *DestinationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("destination cache invalidation failed")
	}
}

func cleanHighlights(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
