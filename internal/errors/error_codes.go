package errors

type ErrorCode string

const (
	ErrValidation      ErrorCode = "Validation"
	ErrInvalidArgument ErrorCode = "InvalidArgument"
	ErrTransport       ErrorCode = "Transport"
	ErrNotFound        ErrorCode = "NotFound"
	ErrInternal        ErrorCode = "Internal"
)
