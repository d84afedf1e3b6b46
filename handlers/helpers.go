package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"samiratravel/logger"
	"samiratravel/middleware"
	"samiratravel/models"
	"samiratravel/services"
	"samiratravel/utils"
)

// maxJSONBody covers an encoded image at the document ceiling plus the other fields.
const maxJSONBody = utils.DocumentLimitBytes * 2

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Invalid request body", err))
		return false
	}
	return true
}

// statusForError maps service and codec errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, utils.ErrInvalidBase64),
		errors.Is(err, utils.ErrEmptyImage):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCapacityReached):
		return http.StatusConflict
	case errors.Is(err, utils.ErrImageTooLarge),
		errors.Is(err, utils.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, utils.ErrUnsupportedImageType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrPackageNotFound),
		errors.Is(err, services.ErrGalleryItemNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrTourLeaderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the mapped status. Client errors carry the
// error text as message; backend failures use fallback and are logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusForError(err)
	if status != http.StatusInternalServerError {
		writeJSON(w, status, models.ErrorResponse(err.Error(), nil))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"error":      err.Error(),
	}).Error(fallback)
	writeJSON(w, status, models.ErrorResponse(fallback, err))
}

func currentAdmin(r *http.Request) middleware.AdminIdentity {
	admin, _ := middleware.AdminFromContext(r.Context())
	return admin
}

func parsePositiveInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
