package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"flare_server/models"
)

// WelcomeHandler greets API explorers
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Welcome to Flare")
}

// HealthCheckHandler reports service liveness
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, extra map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	for k, v := range extra {
		payload[k] = v
	}
	respondJSON(w, http.StatusOK, payload)
}

// respondError maps structured error kinds to HTTP statuses so clients can
// decide retry-vs-abort without parsing message strings.
func respondError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case models.KindUnauthenticated:
		status = http.StatusUnauthorized
	case models.KindPermissionDenied:
		status = http.StatusForbidden
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindInvalidArgument:
		status = http.StatusBadRequest
	case models.KindAlreadyExists:
		status = http.StatusConflict
	}

	message := "internal error"
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if kind == models.KindInternal {
		log.Printf("Internal error: %v", err)
	}

	respondJSON(w, status, map[string]interface{}{
		"success":   false,
		"kind":      kind,
		"error":     message,
		"retryable": models.IsRetryable(err),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, models.ErrInvalidArgument("invalid request body"))
		return false
	}
	return true
}
