package repository

import "errors"

// ErrNotFound is returned when a lookup by id finds no entry. Booking turns
// an unknown provider into errors.ErrValidation and accepts an unknown slot.
var ErrNotFound = errors.New("repository: not found")
