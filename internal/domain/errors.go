package domain

import "errors"

var (
	ErrTransport    = errors.New("transport error")
	ErrParse        = errors.New("parse error")
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("type mismatch")
)
