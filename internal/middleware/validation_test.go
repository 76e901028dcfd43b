package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mirrors the tag shapes the catalog write payloads use
type catalogProbe struct {
	ID              string  `json:"id" validate:"required"`
	Breed           string  `json:"breed" validate:"required"`
	Sex             string  `json:"sex" validate:"omitempty,oneof=Male Female"`
	Price           float64 `json:"price" validate:"gte=0"`
	DiscountPercent int     `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeID bool, includeBreed bool) bool {
			reqMap := make(map[string]interface{})

			if includeID {
				reqMap["id"] = "C0042"
			}
			if includeBreed {
				reqMap["breed"] = "Mini Lop"
			}

			allFieldsPresent := includeID && includeBreed

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var probe catalogProbe
			err := DecodeAndValidate(req, &probe)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that validation errors are properly formatted
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			reqMap := map[string]interface{}{
				"id":    "C0042",
				"breed": "Mini Lop",
				"sex":   "Unknown", // not an accepted value
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var probe catalogProbe
			err := DecodeAndValidate(req, &probe)

			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			// The enum violation should name the accepted values
			for _, ve := range validationErrors {
				if ve.Field == "Sex" {
					return strings.Contains(ve.Message, "one of")
				}
			}
			return false
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that valid requests pass validation
func TestProperty_ValidRequestsPassValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid requests pass validation", prop.ForAll(
		func(seed int) bool {
			breeds := []string{"Mini Lop", "Holland Lop", "Netherland Dwarf", "Rex"}
			prices := []float64{0, 4500, 9900, 15000}
			sexes := []string{"", "Male", "Female"}

			if seed < 0 {
				seed = -seed
			}

			reqMap := map[string]interface{}{
				"id":    "C0042",
				"breed": breeds[seed%len(breeds)],
				"sex":   sexes[seed%len(sexes)],
				"price": prices[seed%len(prices)],
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var probe catalogProbe
			err := DecodeAndValidate(req, &probe)

			return err == nil
		},
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test discount percent bounds
func TestProperty_DiscountPercentRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("percent outside 0..100 is rejected", prop.ForAll(
		func(percent int) bool {
			reqMap := map[string]interface{}{
				"id":              "C0042",
				"breed":           "Mini Lop",
				"discountPercent": percent,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var probe catalogProbe
			err := DecodeAndValidate(req, &probe)

			if percent >= 0 && percent <= 100 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-50, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
