package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

const (
	difficultyTag    = "difficulty"
	bookingStatusTag = "booking_status"
)

var registerOnce sync.Once

// registerValidators installs the domain tags on gin's shared validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation(difficultyTag, func(fl validator.FieldLevel) bool {
			return models.Difficulty(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation(bookingStatusTag, func(fl validator.FieldLevel) bool {
			return models.BookingStatus(fl.Field().String()).Valid()
		})
	})
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
