package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roadcost/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errors.Code   `json:"code"`
	Message   string        `json:"message"`
	Errors    []ErrorDetail `json:"errors,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// ErrorDetail is one accumulated validation failure.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// writeError writes err as an ErrorResponse. Validation lists become 422
// with one entry per failure; other coded input errors become 400.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *log.Logger) {
	code := errors.GetCode(err)
	var list errors.List
	isList := stderrors.As(err, &list)
	if isList {
		code = errors.ErrCodeValidation
	}
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	resp := ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: chimiddleware.GetReqID(r.Context()),
	}
	if isList {
		resp.Message = "request validation failed"
		for _, e := range list {
			resp.Errors = append(resp.Errors, ErrorDetail{Code: e.Code, Message: e.Message})
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request error", "request_id", resp.RequestID, "status", status, "err", err, "path", r.URL.Path)
		resp.Message = http.StatusText(status)
		if code == errors.ErrCodeUnsupported {
			resp.Message = errors.UserMessage(err)
		}
	} else {
		logger.Debug("request rejected", "request_id", resp.RequestID, "status", status, "code", code)
	}

	writeJSON(w, status, resp)
}

// writeJSON writes data as a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
