package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/remote"
	"github.com/Munazil1/centswise/internal/service"
	"github.com/Munazil1/centswise/internal/storage"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends {"error": msg}. 5xx messages are replaced by a generic one.
func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= 500 && status != http.StatusBadGateway {
		logger.Error("Internal error", "status", status, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{"error": msg})
}

// fail maps err onto a status code and writes it. Ledger service errors are
// reported with the service's own message.
func fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var rerr *remote.Error
	if errors.As(err, &rerr) {
		writeJSON(w, status, map[string]any{"error": rerr.Message})
		return
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	var verr *service.ValidationError
	var rerr *remote.Error
	var uerr *url.Error
	switch {
	case errors.As(err, &verr), errors.Is(err, ledger.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrItemNotFound),
		errors.Is(err, ledger.ErrDistributionNotFound),
		errors.Is(err, service.ErrCreditNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInsufficientQuantity),
		errors.Is(err, ledger.ErrAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &rerr):
		if rerr.StatusCode == http.StatusUnauthorized {
			return http.StatusUnauthorized
		}
		return http.StatusBadGateway
	case errors.As(err, &uerr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return decodeBody(w, r, dest, false)
}

// decodeOptionalJSON leaves dest untouched when the body is empty.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return decodeBody(w, r, dest, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return &service.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
