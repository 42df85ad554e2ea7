package handlers

import (
	"time"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

// Identifiers are exposed as "_id" to keep the field names the web client
// already reads.

type userResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// toUserResponse never carries the password hash.
func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type destinationResponse struct {
	ID           string    `json:"_id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	MaxGroupSize int       `json:"maxGroupSize"`
	Difficulty   string    `json:"difficulty"`
	Highlights   []string  `json:"highlights"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toDestinationResponse(d models.Destination) destinationResponse {
	highlights := d.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return destinationResponse{
		ID:           d.ID,
		Slug:         d.Slug,
		Title:        d.Title,
		Description:  d.Description,
		Location:     d.Location,
		Price:        d.Price,
		Image:        d.Image,
		Category:     d.Category,
		Duration:     d.Duration,
		MaxGroupSize: d.MaxGroupSize,
		Difficulty:   string(d.Difficulty),
		Highlights:   highlights,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDestinationResponses(in []models.Destination) []destinationResponse {
	out := make([]destinationResponse, 0, len(in))
	for _, d := range in {
		out = append(out, toDestinationResponse(d))
	}
	return out
}

type destinationSummaryResponse struct {
	ID         string  `json:"_id"`
	Slug       string  `json:"slug"`
	Title      string  `json:"title"`
	Location   string  `json:"location"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Duration   string  `json:"duration"`
	Difficulty string  `json:"difficulty"`
}

type bookingResponse struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"userId"`
	DestinationID   string    `json:"destinationId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            time.Time `json:"date"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toBookingResponse(b models.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		DestinationID:   b.DestinationID,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		Date:            b.Date,
		NumberOfPeople:  b.NumberOfPeople,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// listedBookingResponse always carries the destination key; it is null when
// the destination no longer exists.
type listedBookingResponse struct {
	bookingResponse
	Destination *destinationSummaryResponse `json:"destination"`
}

func toListedBookingResponses(in []models.BookingWithDestination) []listedBookingResponse {
	out := make([]listedBookingResponse, 0, len(in))
	for _, item := range in {
		resp := listedBookingResponse{bookingResponse: toBookingResponse(item.Booking)}
		if d := item.Destination; d != nil {
			resp.Destination = &destinationSummaryResponse{
				ID:         d.ID,
				Slug:       d.Slug,
				Title:      d.Title,
				Location:   d.Location,
				Price:      d.Price,
				Image:      d.Image,
				Duration:   d.Duration,
				Difficulty: string(d.Difficulty),
			}
		}
		out = append(out, resp)
	}
	return out
}
