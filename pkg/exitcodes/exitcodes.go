// Package exitcodes сопоставляет ошибки операций кодам завершения процесса.
package exitcodes

import (
	"errors"

	"github.com/sir_venger/splitter/internal/models"
)

const (
	OK              = 0
	Unexpected      = 1
	InvalidArgument = 2
	NotFound        = 3
	IO              = 4
	Integrity       = 5
	NoParts         = 6
	Incomplete      = 7
	PartsDirExists  = 8
)

// Code возвращает код завершения для ошибки; для nil это OK.
func Code(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, models.ErrIntegrity):
		return Integrity
	case errors.Is(err, models.ErrNoParts):
		return NoParts
	case errors.Is(err, models.ErrIncomplete):
		return Incomplete
	case errors.Is(err, models.ErrPartsDirExists):
		return PartsDirExists
	case errors.Is(err, models.ErrNotFound):
		return NotFound
	case errors.Is(err, models.ErrInvalidArgument):
		return InvalidArgument
	case errors.Is(err, models.ErrIO):
		return IO
	}

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return Unexpected
}
