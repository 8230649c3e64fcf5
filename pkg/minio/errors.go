package minio

import "fmt"

// Error codes for storage operations.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeConnection     = "CONNECTION_ERROR"
	ErrCodePermission     = "PERMISSION_DENIED"
	ErrCodeBucketNotFound = "BUCKET_NOT_FOUND"
	ErrCodeObjectNotFound = "OBJECT_NOT_FOUND"
)

// StorageError is the error type returned by storage operations.
type StorageError struct {
	Code      string
	Message   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewInvalidInputError creates a StorageError for invalid input.
func NewInvalidInputError(message string) *StorageError {
	return &StorageError{Code: ErrCodeInvalidInput, Message: message}
}

// NewConnectionError creates a StorageError for connection failures.
func NewConnectionError(cause error) *StorageError {
	return &StorageError{Code: ErrCodeConnection, Message: "connection error", Cause: cause}
}

// NewBucketNotFoundError creates a StorageError for a missing bucket.
func NewBucketNotFoundError(bucketName string) *StorageError {
	return &StorageError{Code: ErrCodeBucketNotFound, Message: fmt.Sprintf("bucket not found: %s", bucketName)}
}

// NewObjectNotFoundError creates a StorageError for a missing object.
func NewObjectNotFoundError(objectName string) *StorageError {
	return &StorageError{Code: ErrCodeObjectNotFound, Message: fmt.Sprintf("object not found: %s", objectName)}
}
