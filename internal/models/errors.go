package models

import "fmt"

// ValidationError reports a structurally invalid input record. Producers fail
// on the first violation and return no partial output.
type ValidationError struct {
	Producer string
	Field    string
	Msg      string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Producer, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Producer, e.Field, e.Msg)
}

// NewValidationError constructs a ValidationError.
func NewValidationError(producer, field, msg string) error {
	return &ValidationError{Producer: producer, Field: field, Msg: msg}
}

// AggregationError reports a missing or malformed sub-producer result at the
// aggregation join point. The aggregator never substitutes defaults.
type AggregationError struct {
	Reason string
}

func (e *AggregationError) Error() string {
	return "aggregate: " + e.Reason
}

// NewAggregationError constructs an AggregationError.
func NewAggregationError(reason string) error {
	return &AggregationError{Reason: reason}
}
