package contract

import "errors"

var (
	ErrGeneration = errors.New("generation failed")
	ErrValidation = errors.New("validation failed")
)
