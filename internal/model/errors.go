package model

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the pipeline and its collaborators
var (
	// ErrInput reports missing or empty text/image input. Never retried.
	ErrInput = errors.New("invalid input")

	// ErrEngineUnavailable reports an absent or uninstalled collaborator.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrEngineFailure reports a collaborator that failed at call time.
	ErrEngineFailure = errors.New("engine failure")
)

// EngineError wraps a collaborator error with the engine name.
// It unwraps to both the kind sentinel and the cause.
type EngineError struct {
	Engine string
	Kind   error
	Cause  error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v: %v", e.Engine, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Engine, e.Kind)
}

func (e *EngineError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Unavailable builds an EngineError of kind ErrEngineUnavailable
func Unavailable(engine string, cause error) error {
	return &EngineError{Engine: engine, Kind: ErrEngineUnavailable, Cause: cause}
}

// Failure builds an EngineError of kind ErrEngineFailure
func Failure(engine string, cause error) error {
	return &EngineError{Engine: engine, Kind: ErrEngineFailure, Cause: cause}
}

// InputError wraps ErrInput with a message
func InputError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInput, msg)
}
