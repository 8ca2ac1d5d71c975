package tuio

import "errors"

var (
	ErrNotBound         = errors.New("tuio: socket not bound")
	ErrAlreadyConnected = errors.New("tuio: already connected")
	ErrMissingCommand   = errors.New("tuio: message has no command argument")
	ErrUnknownProfile   = errors.New("tuio: unknown profile")
	ErrMalformedCommand = errors.New("tuio: malformed command arguments")
)
