package models

import "errors"

// ErrInvalidInput is the root of every validation error.
// Service packages wrap it so callers can map all of them to one response.
var ErrInvalidInput = errors.New("invalid input")
