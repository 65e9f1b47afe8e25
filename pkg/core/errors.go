package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownSymbol reports a grammar symbol without a rule.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrExpansionOverflow reports an expansion that grew past its ceiling.
	ErrExpansionOverflow = errors.New("expansion overflow")
	// ErrInvalidParameter reports a non-finite or out-of-domain input.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// SymbolError names the symbol that had no rule and where it was found.
type SymbolError struct {
	Symbol   rune
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", ErrUnknownSymbol, e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error { return ErrUnknownSymbol }

// OverflowError carries the length an expansion would have reached.
type OverflowError struct {
	Length     int
	Limit      int
	Generation int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: generation %d needs %d symbols, limit is %d",
		ErrExpansionOverflow, e.Generation, e.Length, e.Limit)
}

func (e *OverflowError) Unwrap() error { return ErrExpansionOverflow }

// ParamError names the rejected parameter.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v %s=%v: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// Finite rejects NaN and infinities.
func Finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Name: name, Value: v, Reason: "must be finite"}
	}
	return nil
}

// Positive rejects non-finite values and values <= 0.
func Positive(name string, v float64) error {
	if err := Finite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return &ParamError{Name: name, Value: v, Reason: "must be > 0"}
	}
	return nil
}

// AtLeast rejects integers below min.
func AtLeast(name string, v, min int) error {
	if v < min {
		return &ParamError{Name: name, Value: v, Reason: fmt.Sprintf("must be >= %d", min)}
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
