package api

import "errors"

// ErrNotFound indicates the targeted resource does not exist on the
// content service. Callers distinguish it from RequestError so they can
// render an empty state instead of an error banner.
var ErrNotFound = errors.New("not found")

// NotFoundError is a 404 from the service with an endpoint-specific
// message. It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// RequestError is any non-success HTTP response other than a 404. It
// carries the server-supplied detail message when present, falling back
// to an endpoint-specific generic message.
type RequestError struct {
	StatusCode int
	Detail     string
	Fallback   string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Fallback
}
