package usecase

import (
	"errors"
	"fmt"
)

// Every failure below is terminal for the current submission attempt. The
// orchestrator retries nothing; the caller decides whether to try again.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAttemptInFlight    = errors.New("a submission is already in flight for this session")
	ErrProcessingTimeout  = errors.New("order processing timed out")
	ErrPersistenceTimeout = errors.New("order persistence timed out")
)

// ProcessingError wraps a failure thrown by the order processor itself.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("order processing failed: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// RejectedError is the ledger's explicit failure flag with its reason.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("order persistence rejected: %s", e.Reason)
}

// UnknownError normalizes anything unexpected, including recovered panics
// from either collaborator.
type UnknownError struct {
	Message string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("order submission failed: %s", e.Message)
}
