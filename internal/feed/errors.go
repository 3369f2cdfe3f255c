package feed

import "errors"

var (
	ErrTransport     = errors.New("transport failure")
	ErrParse         = errors.New("parse failure")
	ErrMalformedDate = errors.New("malformed date")
	ErrInvalidURL    = errors.New("invalid URL")
)
