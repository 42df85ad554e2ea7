package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

// Owner, status and amount are set server-side; clients sending them are
// ignored.
type createBookingRequest struct {
	DestinationID   string     `json:"destinationId"`
	Name            string     `json:"name"`
	Email           string     `json:"email" binding:"omitempty,email"`
	Phone           string     `json:"phone"`
	Date            travelDate `json:"date"`
	NumberOfPeople  int        `json:"numberOfPeople"`
	SpecialRequests string     `json:"specialRequests"`
}

type updateBookingRequest struct {
	Name            *string               `json:"name"`
	Email           *string               `json:"email" binding:"omitempty,email"`
	Phone           *string               `json:"phone"`
	Date            *travelDate           `json:"date"`
	NumberOfPeople  *int                  `json:"numberOfPeople" binding:"omitempty,min=1"`
	SpecialRequests *string               `json:"specialRequests"`
	Status          *models.BookingStatus `json:"status" binding:"omitempty,booking_status"`
	TotalAmount     *float64              `json:"totalAmount" binding:"omitempty,gte=0"`
}

func (r updateBookingRequest) patch() repository.BookingPatch {
	patch := repository.BookingPatch{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		NumberOfPeople:  r.NumberOfPeople,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
		TotalAmount:     r.TotalAmount,
	}
	if r.Date != nil && !r.Date.IsZero() {
		date := r.Date.Time
		patch.Date = &date
	}
	return patch
}

func (h HandlerSet) CreateBooking(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), caller, service.CreateBookingInput{
		DestinationID:   req.DestinationID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date.Time,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// ListBookings returns every booking for admins (optionally narrowed by
// userId) and the caller's own bookings for everyone else.
func (h HandlerSet) ListBookings(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	filter := repository.BookingFilter{
		UserID: c.Query("userId"),
		Status: models.BookingStatus(c.Query("status")),
		Limit:  queryInt(c, "limit"),
	}
	h.listBookings(c, caller, filter)
}

func (h HandlerSet) MyBookings(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	filter := repository.BookingFilter{
		UserID: caller.UserID,
		Status: models.BookingStatus(c.Query("status")),
		Limit:  queryInt(c, "limit"),
	}
	h.listBookings(c, caller, filter)
}

func (h HandlerSet) listBookings(c *gin.Context, caller service.Actor, filter repository.BookingFilter) {
	bookings, err := h.bookings.List(c.Request.Context(), caller, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListedBookingResponses(bookings))
}

func (h HandlerSet) GetBooking(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h HandlerSet) UpdateBooking(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.bookings.Update(c.Request.Context(), caller, c.Param("id"), req.patch()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully"})
}

func (h HandlerSet) DeleteBooking(c *gin.Context) {
	caller, ok := h.requireActor(c)
	if !ok {
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func (h HandlerSet) requireActor(c *gin.Context) (service.Actor, bool) {
	caller, ok := actor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return caller, ok
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
