package tracker

import "fmt"

// Each error type matches any other value of the same type through Is, so
// callers can test the kind with errors.Is(err, &NotFoundError{}).

// ValidationError reports a length, uniqueness or format violation.
type ValidationError struct {
	Field  string
	Reason string
}

func validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError reports a reference to an id missing from its collection.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// InvalidStateError reports an operation disallowed by the entity's status.
type InvalidStateError struct {
	Resource string
	ID       string
	State    string
	Op       string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: %s '%s' is %s", e.Op, e.Resource, e.ID, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	_, ok := target.(*InvalidStateError)
	return ok
}

// PreconditionError reports a transition blocked by dependent entities.
type PreconditionError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Resource, e.ID, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	_, ok := target.(*PreconditionError)
	return ok
}

// CapacityError reports that a membership change would exceed the cap.
type CapacityError struct {
	Resource  string
	ID        string
	Limit     int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s '%s' would have %d members, limit is %d", e.Resource, e.ID, e.Requested, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	_, ok := target.(*CapacityError)
	return ok
}

// StorageError wraps a failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	_, ok := target.(*StorageError)
	return ok
}

