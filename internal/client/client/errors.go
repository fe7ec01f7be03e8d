package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrIncompleteResponse marks a 2xx answer that lacks required fields.
	ErrIncompleteResponse = errors.New("incomplete response")
)

// RemoteError is a non-2xx answer from the Credential Store. Message holds
// the server-supplied `message` field and may be empty.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("remote error: %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 answers.
func (e *RemoteError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// MessageOf returns the server message carried by err, or "" when err is not
// a RemoteError or the server sent none.
func MessageOf(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
