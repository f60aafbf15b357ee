package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"bus-tracker/internal/tracker-service/core/myerrors"
)

// JsonResponse writes the given data as a JSON-encoded HTTP response.
func JsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// JsonError writes an error response as JSON with the specified HTTP status code.
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": err.Error(),
		"code":    code,
	})
}

// statusOf maps domain sentinels onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, myerrors.ErrNotFound),
		errors.Is(err, myerrors.ErrNoAssignment):
		return http.StatusNotFound
	case errors.Is(err, myerrors.ErrLowAccuracy),
		errors.Is(err, myerrors.ErrInvalidCoordinates):
		return http.StatusUnprocessableEntity
	case errors.Is(err, myerrors.ErrEmailRegistered):
		return http.StatusBadRequest
	case errors.Is(err, myerrors.ErrUnknownEmail),
		errors.Is(err, myerrors.ErrPasswordUnknown):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
