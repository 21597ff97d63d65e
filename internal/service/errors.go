package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHasDependents      = errors.New("customer has dependent records")
)

// DependentsError carries the dependency counts that block a customer delete.
type DependentsError struct {
	Opportunities int64
	Interactions  int64
}

func (e *DependentsError) Error() string {
	return ErrHasDependents.Error()
}

// Unwrap lets errors.Is match ErrHasDependents.
func (e *DependentsError) Unwrap() error {
	return ErrHasDependents
}
