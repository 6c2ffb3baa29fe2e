package services

import (
	"errors"
	"fmt"
	"strings"
)

// Workflow step names reported inside a PartialFailureError.
const (
	StepAccountUpdate = "account update"
	StepProductUpdate = "product update"
)

var (
	// ErrAlreadySold is reported when the conditional sold flip matched fewer
	// products than the order references, i.e. another checkout won the race
	// between the availability re-check and the flip.
	ErrAlreadySold = errors.New("products no longer available")
	// ErrCartFull is returned when the cart already holds the maximum number
	// of items.
	ErrCartFull = errors.New("the cart can hold at most 5 items at a time")
	// ErrAlreadyInCart is returned when the product is already staged in the
	// cart.
	ErrAlreadyInCart = errors.New("this product is already in the cart")
)

// ConflictError aborts a checkout whose availability re-check found items
// that were sold after they were added to the cart. Nothing has been written
// when it is returned.
type ConflictError struct {
	Titles []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already sold out", strings.Join(e.Titles, " and "))
}

// PartialFailureError reports that a multi-step workflow failed at Step after
// earlier steps already took effect. Prior effects are not rolled back; the
// affected transition is expected to be re-run through the admin tooling.
type PartialFailureError struct {
	Step string
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
