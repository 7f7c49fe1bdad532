package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "surveyor/pkg/domain-errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps coded errors onto HTTP statuses. Uncoded errors are
// internal by definition and their details stay out of the response.
func writeError(w http.ResponseWriter, err error) {
	var (
		status  int
		message string
	)
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
		message = errMessage(err, "not found")
	case dErrors.CodeBadRequest:
		status = http.StatusBadRequest
		message = errMessage(err, "bad request")
	case dErrors.CodeConflict:
		status = http.StatusConflict
		message = errMessage(err, "conflict")
	default:
		status = http.StatusInternalServerError
		message = "internal error"
	}
	writeJSON(w, status, errorBody{Error: message})
}

func errMessage(err error, fallback string) string {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
