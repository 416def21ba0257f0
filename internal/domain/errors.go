package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup of a construction, phase, stage or task
	// that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks input rejected before any store mutation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict marks an aggregate whose version moved underneath a
	// read-modify-write and could not be settled within the retry budget.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrTemplateNotFound marks a configured template id that does not
	// resolve to a construction.
	ErrTemplateNotFound = fmt.Errorf("template construction %w", ErrNotFound)
)

// NotFoundError wraps ErrNotFound with the entity kind and id.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Invalidf builds an ErrInvalidInput with a formatted reason.
func Invalidf(format string, args ...any) error {
	return invalidf(format, args...)
}

// CopyError reports a template copy that failed part-way. The transaction
// that carried the copy has been rolled back, so nothing it lists remains.
type CopyError struct {
	TemplateStage string
	StagesCopied  int
	TasksCopied   int
	Err           error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying template stage %q (after %d stages, %d tasks, rolled back): %v",
		e.TemplateStage, e.StagesCopied, e.TasksCopied, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }
