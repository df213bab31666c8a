package scheduler

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset validation, checked with errors.Is.
var (
	ErrBadDemandCount  = errors.New("demand count is not a non-negative integer")
	ErrBadTimeInterval = errors.New("time interval is not in HH:MM-HH:MM form")
	ErrBadHourlyCost   = errors.New("hourly cost is not an integer")
	ErrMissingWorkerID = errors.New("worker row has no Worker ID")
	ErrMissingCostKey  = errors.New("cost row has neither Skill nor Worker ID")
)

// ValidationError reports a dataset row that cannot be turned into a model
// record. The whole run is aborted; the engine never sees partial datasets.
type ValidationError struct {
	Dataset string
	Row     int
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s row %d: %v", e.Dataset, e.Row, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
