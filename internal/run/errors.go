package run

import (
	"errors"
	"fmt"

	"github.com/san-kum/algoviz/internal/engine"
)

var (
	// ErrBusy rejects an operation while a run is active.
	ErrBusy = errors.New("run: a visualization is already running")

	// ErrEmptyState rejects a save when no array exists.
	ErrEmptyState = errors.New("run: no array to save")

	// ErrNothingSaved reports a load that found no array for the user.
	ErrNothingSaved = errors.New("run: no saved array")

	// ErrNoStore indicates the controller has no ArrayStore configured.
	ErrNoStore = errors.New("run: no array store configured")

	ErrUnknownAlgorithm = engine.ErrUnknownAlgorithm
)

// PersistenceError wraps a failed save or load.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("run: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AlgorithmFault wraps an unexpected failure inside a run. Panic holds the
// recovered value when the algorithm panicked.
type AlgorithmFault struct {
	Algorithm string
	Panic     any
	Err       error
	Stack     []byte
}

func (e *AlgorithmFault) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("run: %s panicked: %v", e.Algorithm, e.Panic)
	}
	return fmt.Sprintf("run: %s failed: %v", e.Algorithm, e.Err)
}

func (e *AlgorithmFault) Unwrap() error {
	return e.Err
}
