package service

import "errors"

var (
	ErrEmptyField      = errors.New("required field is empty")
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateSlug   = errors.New("a post with this slug already exists")
	ErrReservedSlug    = errors.New("slug is taken by a site page")
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidPage     = errors.New("page out of range")
)
