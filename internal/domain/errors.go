package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyRequest is returned when the caller supplies no articles at all.
// It is distinct from the insufficient-input short-circuit, which is a
// success-shaped result, not an error.
var ErrEmptyRequest = errors.New("no articles provided")

// PipelineError wraps an unexpected failure inside one of the pipeline
// stages. It is caught at the transport boundary and reshaped into an
// error field; it never escapes as a raw fault.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("clustering failed at %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError tags err with the pipeline stage it came from.
func NewPipelineError(stage string, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}
