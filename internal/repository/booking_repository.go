package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingFilter struct {
	UserID string
	Status models.BookingStatus
	Limit  int
}

// BookingPatch holds the fields of a partial update; nil means unchanged.
// TotalAmount is written as given and never recomputed.
type BookingPatch struct {
	Name            *string
	Email           *string
	Phone           *string
	Date            *time.Time
	NumberOfPeople  *int
	SpecialRequests *string
	Status          *models.BookingStatus
	TotalAmount     *float64
}

const bookingColumns = `
	b.id, b.user_id, b.destination_id, b.name, b.email, b.phone, b.date,
	b.number_of_people, b.special_requests, b.status, b.total_amount,
	b.created_at, b.updated_at
`

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	const query = `
		INSERT INTO bookings (
			id, user_id, destination_id, name, email, phone, date,
			number_of_people, special_requests, status, total_amount, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query,
		b.ID,
		b.UserID,
		b.DestinationID,
		b.Name,
		b.Email,
		b.Phone,
		b.Date,
		b.NumberOfPeople,
		b.SpecialRequests,
		b.Status,
		b.TotalAmount,
	)
	if err := row.Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	var b models.Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

// List joins each booking with its destination, newest first. Bookings whose
// destination is gone are kept with a nil Destination.
func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.BookingWithDestination, error) {
	var (
		where []string
		args  []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("b.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + `,
		d.id, d.slug, d.title, d.location, d.price, d.image, d.duration, d.difficulty
		FROM bookings b
		LEFT JOIN destinations d ON d.id = b.destination_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY b.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.BookingWithDestination, 0)
	for rows.Next() {
		var (
			item       models.BookingWithDestination
			destID     *string
			slug       *string
			title      *string
			location   *string
			price      *float64
			image      *string
			duration   *string
			difficulty *string
		)
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.DestinationID,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.Date,
			&item.NumberOfPeople,
			&item.SpecialRequests,
			&item.Status,
			&item.TotalAmount,
			&item.CreatedAt,
			&item.UpdatedAt,
			&destID,
			&slug,
			&title,
			&location,
			&price,
			&image,
			&duration,
			&difficulty,
		); err != nil {
			return nil, err
		}
		if destID != nil {
			item.Destination = &models.DestinationSummary{
				ID:         *destID,
				Slug:       deref(slug),
				Title:      deref(title),
				Location:   deref(location),
				Price:      derefFloat(price),
				Image:      deref(image),
				Duration:   deref(duration),
				Difficulty: models.Difficulty(deref(difficulty)),
			}
		}
		bookings = append(bookings, item)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, id string, patch BookingPatch) error {
	const query = `
		UPDATE bookings
		SET name = COALESCE($2::text, name),
		    email = COALESCE($3::text, email),
		    phone = COALESCE($4::text, phone),
		    date = COALESCE($5::timestamptz, date),
		    number_of_people = COALESCE($6::integer, number_of_people),
		    special_requests = COALESCE($7::text, special_requests),
		    status = COALESCE($8::text, status),
		    total_amount = COALESCE($9::numeric, total_amount),
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		id,
		patch.Name,
		patch.Email,
		patch.Phone,
		patch.Date,
		patch.NumberOfPeople,
		patch.SpecialRequests,
		patch.Status,
		patch.TotalAmount,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM bookings WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CompleteElapsed moves confirmed bookings dated before cutoff to completed
// and returns the affected ids.
func (r *BookingRepository) CompleteElapsed(ctx context.Context, cutoff time.Time) ([]string, error) {
	const query = `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND date < $1
		RETURNING id
	`
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanBooking(row pgx.Row, b *models.Booking) error {
	return row.Scan(
		&b.ID,
		&b.UserID,
		&b.DestinationID,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.Date,
		&b.NumberOfPeople,
		&b.SpecialRequests,
		&b.Status,
		&b.TotalAmount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
