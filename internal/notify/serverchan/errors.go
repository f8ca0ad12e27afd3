package serverchan

import "errors"

var (
	// ErrRequestFailed is returned when the push request cannot be sent.
	ErrRequestFailed = errors.New("serverchan.client: request failed")

	// ErrBadStatus is returned when ServerChan answers with a non-2xx code.
	ErrBadStatus = errors.New("serverchan.client: unexpected status")
)
