package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrSlugTaken           = errors.New("destination slug already in use")
)

type DestinationFilter struct {
	Search     string
	Category   string
	Difficulty models.Difficulty
	Limit      int
}

// IsZero reports whether the filter selects the whole catalogue.
func (f DestinationFilter) IsZero() bool {
	return f == DestinationFilter{}
}

// DestinationPatch holds the fields of a partial update; nil means unchanged.
type DestinationPatch struct {
	Title        *string
	Description  *string
	Location     *string
	Price        *float64
	Image        *string
	Category     *string
	Duration     *string
	MaxGroupSize *int
	Difficulty   *models.Difficulty
	Highlights   *[]string
}

const destinationColumns = `
	id, slug, title, description, location, price, image, category, duration,
	max_group_size, difficulty, highlights, created_at, updated_at
`

type DestinationRepository struct {
	pool *pgxpool.Pool
}

func NewDestinationRepository(pool *pgxpool.Pool) *DestinationRepository {
	return &DestinationRepository{pool: pool}
}

func (r *DestinationRepository) Create(ctx context.Context, d models.Destination) (models.Destination, error) {
	const query = `
		INSERT INTO destinations (
			id, slug, title, description, location, price, image, category, duration,
			max_group_size, difficulty, highlights, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, NOW(), NOW()
		)
		ON CONFLICT (slug) DO NOTHING
		RETURNING created_at, updated_at
	`

	highlights := d.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	row := r.pool.QueryRow(ctx, query,
		d.ID,
		d.Slug,
		d.Title,
		d.Description,
		d.Location,
		d.Price,
		d.Image,
		d.Category,
		d.Duration,
		d.MaxGroupSize,
		d.Difficulty,
		highlights,
	)
	if err := row.Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Destination{}, ErrSlugTaken
		}
		return models.Destination{}, err
	}
	d.Highlights = highlights
	return d, nil
}

func (r *DestinationRepository) GetByID(ctx context.Context, id string) (models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	return scanDestination(r.pool.QueryRow(ctx, query, id))
}

func (r *DestinationRepository) GetBySlug(ctx context.Context, slug string) (models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE slug = $1`
	return scanDestination(r.pool.QueryRow(ctx, query, slug))
}

func (r *DestinationRepository) List(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	var (
		where []string
		args  []any
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		where = append(where, fmt.Sprintf("difficulty = $%d", len(args)))
	}

	query := `SELECT ` + destinationColumns + ` FROM destinations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

// ListByIDs returns the destinations that still exist, in the order of ids.
func (r *DestinationRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Destination, error) {
	if len(ids) == 0 {
		return []models.Destination{}, nil
	}

	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.Destination, len(ids))
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ordered := make([]models.Destination, 0, len(byID))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}

func (r *DestinationRepository) Update(ctx context.Context, id string, patch DestinationPatch) error {
	const query = `
		UPDATE destinations
		SET title = COALESCE($2::text, title),
		    description = COALESCE($3::text, description),
		    location = COALESCE($4::text, location),
		    price = COALESCE($5::numeric, price),
		    image = COALESCE($6::text, image),
		    category = COALESCE($7::text, category),
		    duration = COALESCE($8::text, duration),
		    max_group_size = COALESCE($9::integer, max_group_size),
		    difficulty = COALESCE($10::text, difficulty),
		    highlights = COALESCE($11::text[], highlights),
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		id,
		patch.Title,
		patch.Description,
		patch.Location,
		patch.Price,
		patch.Image,
		patch.Category,
		patch.Duration,
		patch.MaxGroupSize,
		patch.Difficulty,
		patch.Highlights,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDestinationNotFound
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM destinations WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDestinationNotFound
	}
	return nil
}

func scanDestination(row pgx.Row) (models.Destination, error) {
	var d models.Destination
	if err := row.Scan(
		&d.ID,
		&d.Slug,
		&d.Title,
		&d.Description,
		&d.Location,
		&d.Price,
		&d.Image,
		&d.Category,
		&d.Duration,
		&d.MaxGroupSize,
		&d.Difficulty,
		&d.Highlights,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Destination{}, ErrDestinationNotFound
		}
		return models.Destination{}, err
	}
	return d, nil
}
