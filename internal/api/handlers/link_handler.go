package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/aphex18/URL-SHORTENER/internal/auth"
	"github.com/aphex18/URL-SHORTENER/internal/services"
)

// LinkHandler handles HTTP requests for short-link assignment, resolution
// and ownership-scoped management.
type LinkHandler struct {
	service services.LinkServiceProvider
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(service services.LinkServiceProvider) *LinkHandler {
	return &LinkHandler{service: service}
}

// ShortenPayload defines the structure for shorten requests. Code is
// optional; when absent a code is generated.
type ShortenPayload struct {
	URL  string `json:"url" validate:"required,url"`
	Code string `json:"code" validate:"omitempty,shortcode"`
}

// Shorten handles short-code assignment for the authenticated owner.
func (h *LinkHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload ShortenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeValidationError(w, err)
		return
	}

	link, err := h.service.Shorten(r.Context(), identity.UserID, payload.URL, payload.Code)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        link.ID,
		"shortCode": link.ShortCode,
		"targetUrl": link.TargetURL,
	})
}

// ListCodes returns every link owned by the caller, in storage order.
func (h *LinkHandler) ListCodes(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	links, err := h.service.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to list links")
		writeError(w, http.StatusInternalServerError, "Failed to list links")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": links})
}

// Delete removes a link owned by the caller. A link that is absent or owned
// by someone else is reported as not found.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	linkID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), identity.UserID, linkID); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "URL deleted successfully"})
}

// Resolve redirects a short code to its target URL. No authentication and
// no ownership check; resolution is public.
func (h *LinkHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	target, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			writeError(w, http.StatusNotFound, "Short URL not found")
			return
		}
		log.Error().Err(err).Str("code", code).Msg("Failed to resolve short code")
		writeError(w, http.StatusInternalServerError, "Failed to resolve short code")
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *LinkHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "Invalid target URL")
	case errors.Is(err, services.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "Short code may only contain letters, digits, '-' and '_'")
	case errors.Is(err, services.ErrCodeTaken):
		writeError(w, http.StatusConflict, "Short code already taken")
	case errors.Is(err, services.ErrCodeSpaceExhausted):
		log.Error().Err(err).Msg("Short code generation exhausted retries")
		writeError(w, http.StatusServiceUnavailable, "Cannot allocate short code, try again")
	case errors.Is(err, services.ErrLinkNotFound):
		writeError(w, http.StatusNotFound, "Link not found")
	default:
		log.Error().Err(err).Msg("Unexpected link service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
