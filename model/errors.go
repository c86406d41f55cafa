package model

import "fmt"

// DataError is the error category for every failure produced while
// reconstructing, configuring or serializing result data. Callers can match
// the whole category with errors.As without caring which operation failed.
type DataError struct {
	Message string
}

// Error implements the error interface.
func (e *DataError) Error() string {
	return e.Message
}

// NewDataError creates a DataError with a formatted message.
func NewDataError(format string, args ...any) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...)}
}
