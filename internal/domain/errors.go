package domain

import "errors"

// ErrValidation marks input that can never be dispatched as given.
var ErrValidation = errors.New("validation error")
