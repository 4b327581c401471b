package remotefs

import "errors"

// Pipeline error kinds. Every failure surfaced by this package wraps exactly
// one of these sentinels, so callers classify with errors.Is and map kinds to
// their own boundary (HTTP status, exit code) without parsing messages.
var (
	// ErrPath marks a malformed or forbidden path shape.
	ErrPath = errors.New("invalid path")
	// ErrFormat marks an unparseable archive or an encoding mismatch.
	ErrFormat = errors.New("invalid format")
	// ErrTransport marks a network or HTTP failure, including non-success
	// response status. Nothing is retried inside the pipeline.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidMode marks an unrecognized unzip mode.
	ErrInvalidMode = errors.New("invalid unzip mode")
	// ErrStorage marks a backend save failure.
	ErrStorage = errors.New("storage failure")
	// ErrMalformedRequest marks a caller-boundary input error, surfaced
	// before the pipeline runs.
	ErrMalformedRequest = errors.New("malformed request")
)
