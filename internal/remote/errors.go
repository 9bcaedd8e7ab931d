package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

const defaultErrorMessage = "Request failed"

// Error is a non-2xx answer from the ledger service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger service returned %d: %s", e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status of a remote error, or 0 when err did
// not come from a remote response.
func StatusCode(err error) int {
	var re *Error
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

func errorFromBody(status int, body []byte) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := defaultErrorMessage
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	return &Error{StatusCode: status, Message: msg}
}
