package storage

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrSlugExists    = errors.New("slug already exists")
	ErrNameExists    = errors.New("name already exists")
	// ErrTimeout marks a store operation that exceeded its execution bound.
	// The HTTP layer maps it to 504 with pagination guidance.
	ErrTimeout = errors.New("store operation timed out")
)
