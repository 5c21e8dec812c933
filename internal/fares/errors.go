package fares

import (
	"errors"
	"fmt"
)

// ErrNoPricingRule means no rate meters and no legacy cab types are
// configured at all. Fatal until an operator configures pricing.
var ErrNoPricingRule = errors.New("no pricing rule available")

// ErrDistanceUnavailable means the distance provider could not resolve the
// route. Only the airport branch fails on it; the caller may retry.
var ErrDistanceUnavailable = errors.New("distance unavailable")

// PricingConfigError means a rule was resolved but lacks a rate field the
// requested branch needs. The message names the incomplete rule so operators
// can fix it.
type PricingConfigError struct {
	Kind  RuleKind
	Field string
}

func (e *PricingConfigError) Error() string {
	return fmt.Sprintf("pricing rule (%s) is missing %s", e.Kind, e.Field)
}

// ValidationError means the trip request is malformed for the requested
// branch. Upstream validation should have caught it; the calculator
// re-checks and fails closed rather than computing a nonsensical fare.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trip request: %s %s", e.Field, e.Message)
}
