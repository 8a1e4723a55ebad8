package racetrack

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveTestSet means the operation needs a test set started by BeginTestSet.
	ErrNoActiveTestSet = errors.New("there is no active test set")

	// ErrNoActiveTestCase means the operation needs a test case started by BeginTestCase.
	ErrNoActiveTestCase = errors.New("there is no active test case")

	ErrInvalidLanguage = errors.New("specified language is invalid")
	ErrInvalidTestType = errors.New("specified test type is invalid")
	ErrInvalidResult   = errors.New("specified test result is invalid")

	// ErrEmptyArgument means a required string argument was empty.
	ErrEmptyArgument = errors.New("required argument is empty")

	// ErrFileNotFound means a file to be uploaded does not exist or is not a regular file.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrTransport wraps any failure to complete the HTTP request.
	ErrTransport = errors.New("post request failed")

	// ErrMalformedID means the server answered a begin request with something that is not an
	// integer ID.
	ErrMalformedID = errors.New("server returned a malformed ID")
)

// StatusError is returned when the server answers with an HTTP error status to a request whose
// response is needed to update the session.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned HTTP status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned HTTP status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
