package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceRead signals a missing or unparseable source collection.
	ErrSourceRead = errors.New("source read failed")
	// ErrIDCollision signals two documents resolving to the same identifier.
	ErrIDCollision = errors.New("document id collision")
	// ErrQueryService signals a failed call to the search engine.
	ErrQueryService = errors.New("search service error")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownCategory signals a category outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")
)

// SourceReadError wraps ErrSourceRead with the category and source location.
type SourceReadError struct {
	Category string
	Path     string
	Err      error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrSourceRead.Error(), e.Category, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() []error { return []error{ErrSourceRead, e.Err} }

// NewSourceReadError creates a source read error.
func NewSourceReadError(category, path string, err error) error {
	return &SourceReadError{Category: category, Path: path, Err: err}
}

// IDCollisionError wraps ErrIDCollision with both offending source paths.
type IDCollisionError struct {
	ID         string
	FirstPath  string
	SecondPath string
}

func (e *IDCollisionError) Error() string {
	return fmt.Sprintf("%s: %q produced by %s and %s",
		ErrIDCollision.Error(), e.ID, e.FirstPath, e.SecondPath)
}

func (e *IDCollisionError) Unwrap() error { return ErrIDCollision }

// NewIDCollision creates an id collision error.
func NewIDCollision(id, firstPath, secondPath string) error {
	return &IDCollisionError{ID: id, FirstPath: firstPath, SecondPath: secondPath}
}
