package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("blog not found")
	ErrSlugTaken  = errors.New("slug is already in use")
	ErrValidation = errors.New("validation failed")
)

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
