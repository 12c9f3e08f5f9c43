// Package dataerr categorises pipeline errors and decides which of them stop
// a run.
package dataerr

import (
	"errors"
	"fmt"
	"strings"
)

// Category defines categories of errors raised by pipeline stages
type Category int

const (
	// CategoryRowRejection is a single row failing a rule. It never stops a run.
	CategoryRowRejection Category = iota
	// CategoryInput is an input table that cannot be opened or parsed
	CategoryInput
	// CategoryEmptyResult is a stage left with zero rows to hand on
	CategoryEmptyResult
	// CategoryWrite is an output table that cannot be written
	CategoryWrite
)

// String returns a string representation of the error category
func (c Category) String() string {
	switch c {
	case CategoryRowRejection:
		return "RowRejection"
	case CategoryInput:
		return "FatalInput"
	case CategoryEmptyResult:
		return "FatalEmptyResult"
	case CategoryWrite:
		return "FatalWrite"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// Fatal reports whether errors of this category abort the run
func (c Category) Fatal() bool {
	return c != CategoryRowRejection
}

// Error is a categorised error raised by a named stage
type Error struct {
	Category Category
	Stage    string
	Path     string
	Err      error
}

// New creates a categorised error for a stage
func New(category Category, stage string, err error) *Error {
	return &Error{Category: category, Stage: stage, Err: err}
}

// WithPath adds the file the stage was reading or writing
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// Error returns a formatted error message
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", e.Category))

	if e.Stage != "" {
		sb.WriteString(fmt.Sprintf("stage %s: ", e.Stage))
	}

	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("%s: ", e.Path))
	}

	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString("unknown error")
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Input wraps err as a fatal input error
func Input(stage, path string, err error) error {
	return New(CategoryInput, stage, err).WithPath(path)
}

// Write wraps err as a fatal write error
func Write(stage, path string, err error) error {
	return New(CategoryWrite, stage, err).WithPath(path)
}

// EmptyResult wraps err as a fatal empty-result error
func EmptyResult(stage string, err error) error {
	return New(CategoryEmptyResult, stage, err)
}

// CategoryOf returns the category of err. Uncategorised errors are reported as
// input errors so they are never mistaken for row rejections.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return CategoryInput, false
}

// IsFatal reports whether err must stop the pipeline
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	category, _ := CategoryOf(err)
	return category.Fatal()
}
