package api

import (
	"encoding/json"
	"net/http"

	"fitness-journal/internal/errors"
	"fitness-journal/internal/logging"
	"fitness-journal/internal/validation"
)

// validationBody mirrors the flattened field error shape clients already parse.
type validationBody struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Warnf("failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeValidation(w http.ResponseWriter, ve *validation.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]validationBody{
		"error": {
			FormErrors:  nonNil(ve.FormErrors),
			FieldErrors: ve.Fields(),
		},
	})
}

// writeError renders err with the status and body shape its type calls for.
// Store failures are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		writeValidation(w, ve)
		return
	}

	status := errors.HTTPStatus(err)
	if errors.ShouldLogError(err) {
		logging.With(errorFields(r, status, err)...).Errorf("request failed: %v", err)
	}

	switch status {
	case http.StatusNotFound:
		writeJSON(w, status, map[string]string{"error": "Not found"})
	case http.StatusBadRequest:
		if errors.IsErrorType(err, errors.ErrorTypeValidation) {
			writeJSON(w, status, map[string]validationBody{
				"error": {
					FormErrors:  []string{errors.GetUserMessage(err)},
					FieldErrors: map[string][]string{},
				},
			})
			return
		}
		writeMessage(w, status, errors.GetUserMessage(err))
	case http.StatusUnauthorized, http.StatusConflict:
		writeMessage(w, status, errors.GetUserMessage(err))
	case http.StatusGatewayTimeout:
		writeJSON(w, status, map[string]string{"error": "The operation timed out. Please try again."})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// errorFields returns the structured log fields for a failed request,
// including the store operation and row identifier when the error has them.
func errorFields(r *http.Request, status int, err error) []interface{} {
	fields := []interface{}{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", errors.GetErrorCode(err),
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return fields
	}
	for _, key := range []string{"operation", "identifier"} {
		if v, ok := appErr.GetContext(key); ok {
			fields = append(fields, key, v)
		}
	}
	return fields
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
