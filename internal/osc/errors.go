package osc

import "errors"

var (
	ErrTruncated          = errors.New("osc: truncated data")
	ErrUnterminatedString = errors.New("osc: unterminated string")
	ErrInvalidSize        = errors.New("osc: invalid element size")
	ErrNotBundle          = errors.New("osc: missing bundle header")
	ErrBadTypeTags        = errors.New("osc: malformed type tag string")
	ErrUnsupportedType    = errors.New("osc: unsupported argument type")
	ErrAddressPattern     = errors.New("osc: invalid address pattern")
	ErrTooDeep            = errors.New("osc: bundle nesting too deep")
	ErrArgumentType       = errors.New("osc: argument type mismatch")
	ErrArgumentCount      = errors.New("osc: not enough arguments")
	ErrEmptyPacket        = errors.New("osc: empty packet")
)
