package utils

import (
	"errors"
	"fmt"
	"time"
)

var ErrorRecordNotFound = errors.New("record not found")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidationError reports a rejected input (bad shape, sign or blank required field).
// Recoverable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing record or a tenant mismatch. The two cases are
// deliberately indistinguishable to the caller.
type NotFoundError struct {
	Entity string
	Id     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.Id)
}

// InvalidTransitionError reports a change-order state machine violation,
// including any attempt to leave a terminal state.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// WindowExpiredError reports a withdrawal attempted after the configured
// post-presentation window.
type WindowExpiredError struct {
	PresentedAt time.Time
	Window      time.Duration
}

func (e *WindowExpiredError) Error() string {
	return fmt.Sprintf("withdrawal window of %s expired (presented at %s)", e.Window, e.PresentedAt.UTC().Format(time.RFC3339))
}

// CascadeError reports a failed change-order approval cascade. The transaction is
// rolled back before this is returned, so no partial update is ever visible; the
// ids and delta are carried so the operation can be replayed manually.
type CascadeError struct {
	ChangeOrderId int
	ContractId    int
	BudgetLineId  int
	DrawRequestId int
	Delta         string
	Err           error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("change order %d approval cascade failed (contract=%d budgetLine=%d draw=%d delta=%s): %v",
		e.ChangeOrderId, e.ContractId, e.BudgetLineId, e.DrawRequestId, e.Delta, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
