package analysis

import "fmt"

// InvalidParameterError reports an analysis parameter out of range or
// otherwise unusable. It carries the offending parameter and value for
// diagnosability.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// ComputeError wraps an unexpected failure inside a cached computation.
// Parameter errors are returned unwrapped; ComputeError covers everything
// else so callers can tell a bad request from a broken analyzer. Failed
// computations are never stored in the cache.
type ComputeError struct {
	Op  Op
	Err error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Op, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}
