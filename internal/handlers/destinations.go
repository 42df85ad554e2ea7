package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DonArtkins/kuja-twende-adventures/internal/media/sniffer"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

type createDestinationRequest struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Location     string            `json:"location"`
	Price        float64           `json:"price"`
	Image        string            `json:"image"`
	Category     string            `json:"category"`
	Duration     string            `json:"duration"`
	MaxGroupSize int               `json:"maxGroupSize"`
	Difficulty   models.Difficulty `json:"difficulty" binding:"required,difficulty"`
	Highlights   []string          `json:"highlights"`
}

type updateDestinationRequest struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Location     *string            `json:"location"`
	Price        *float64           `json:"price" binding:"omitempty,gt=0"`
	Image        *string            `json:"image"`
	Category     *string            `json:"category"`
	Duration     *string            `json:"duration"`
	MaxGroupSize *int               `json:"maxGroupSize" binding:"omitempty,min=1"`
	Difficulty   *models.Difficulty `json:"difficulty" binding:"omitempty,difficulty"`
	Highlights   *[]string          `json:"highlights"`
}

func (h HandlerSet) ListDestinations(c *gin.Context) {
	filter := repository.DestinationFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Category:   facet(c.Query("category")),
		Difficulty: models.Difficulty(facet(c.Query("difficulty"))),
		Limit:      queryInt(c, "limit"),
	}

	destinations, err := h.destinations.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponses(destinations))
}

func (h HandlerSet) PopularDestinations(c *gin.Context) {
	destinations, err := h.destinations.Popular(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponses(destinations))
}

// GetDestination accepts either the id or the slug.
func (h HandlerSet) GetDestination(c *gin.Context) {
	destination, err := h.destinations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponse(destination))
}

func (h HandlerSet) CreateDestination(c *gin.Context) {
	var req createDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	destination, err := h.destinations.Create(c.Request.Context(), service.DestinationInput{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Highlights:   req.Highlights,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDestinationResponse(destination))
}

func (h HandlerSet) UpdateDestination(c *gin.Context) {
	var req updateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.destinations.Update(c.Request.Context(), c.Param("id"), repository.DestinationPatch{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Highlights:   req.Highlights,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Destination updated successfully"})
}

func (h HandlerSet) DeleteDestination(c *gin.Context) {
	if err := h.destinations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Destination deleted successfully"})
}

// UploadDestinationImage takes a multipart "file" field.
func (h HandlerSet) UploadDestinationImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	destination, err := h.destinations.UploadImage(c.Request.Context(), c.Param("id"), service.ImageUpload{
		File:         file,
		DeclaredMIME: sniffer.DeclaredMIME(http.Header(fileHeader.Header)),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponse(destination))
}

// facet treats the "all" option of the catalogue filters as no filter.
func facet(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}
