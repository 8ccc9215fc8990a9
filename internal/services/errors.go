package services

import (
	"errors"

	"github.com/Dias221467/Mindful_Companion/internal/repository"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidCursor      = repository.ErrInvalidCursor
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrGeneration         = errors.New("generative service failed")
)
