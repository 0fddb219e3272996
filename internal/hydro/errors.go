package hydro

import (
	"errors"
	"fmt"
	"math"
)

// DomainError reports an input or intermediate value outside the range
// where a formula is defined (zero denominators, negative radicands, NaN).
type DomainError struct {
	Op       string  // operation that failed, e.g. "pressure drop"
	Quantity string  // offending quantity, e.g. "pipe diameter"
	Value    float64 // offending value
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s = %g %s", e.Op, e.Quantity, e.Value, e.Reason)
}

// IsDomainError reports whether any error in err's chain is a *DomainError
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// CheckPositive requires value > 0 and finite
func CheckPositive(op, quantity string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &DomainError{Op: op, Quantity: quantity, Value: value, Reason: "is not a finite number"}
	}
	if value <= 0 {
		return &DomainError{Op: op, Quantity: quantity, Value: value, Reason: "must be greater than zero"}
	}
	return nil
}

// CheckNonNegative requires value >= 0 and finite
func CheckNonNegative(op, quantity string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &DomainError{Op: op, Quantity: quantity, Value: value, Reason: "is not a finite number"}
	}
	if value < 0 {
		return &DomainError{Op: op, Quantity: quantity, Value: value, Reason: "must not be negative"}
	}
	return nil
}

// Finite passes value through unless it is NaN or ±Inf
func Finite(op string, value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &DomainError{Op: op, Quantity: "result", Value: value, Reason: "is not a finite number"}
	}
	return value, nil
}
