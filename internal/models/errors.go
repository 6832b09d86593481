package models

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrIO              = errors.New("i/o failure")
	ErrIntegrity       = errors.New("integrity mismatch")
	ErrNoParts         = errors.New("no part files found")
	ErrIncomplete      = errors.New("part set incomplete")
	ErrPartsDirExists  = errors.New("parts directory is not empty")
)
