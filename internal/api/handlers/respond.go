package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aphex18/URL-SHORTENER/internal/shortcode"
)

// validate checks request payloads. The custom "shortcode" tag mirrors the
// character class enforced by the link service.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return shortcode.Valid(fl.Field().String())
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError reports field-level detail for a failed payload
// validation, one message per offending field.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": fields})
}
