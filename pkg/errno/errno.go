package errno

import "fmt"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithDetail returns a copy of the error with extra context appended to the
// message. The code is preserved so callers can still match on it.
func (e Errno) WithDetail(format string, args ...any) Errno {
	return Errno{
		Code:    e.Code,
		Message: e.Message + ": " + fmt.Sprintf(format, args...),
	}
}

// Is matches errors by code, so wrapped details still compare equal.
func (e Errno) Is(target error) bool {
	switch typed := target.(type) {
	case *Errno:
		return typed.Code == e.Code
	case Errno:
		return typed.Code == e.Code
	}
	return false
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrConfig           = Errno{Code: 10003, Message: "Missing or invalid configuration"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
)

// Business Errors (20000+)
var (
	ErrPriceNotFound  = Errno{Code: 20101, Message: "Price not found for asset"}
	ErrInvalidPrice   = Errno{Code: 20102, Message: "Unit price must be positive"}
	ErrEncoding       = Errno{Code: 20201, Message: "Batch encoding failed"}
	ErrChainRead      = Errno{Code: 20301, Message: "On-chain read failed"}
	ErrSubmit         = Errno{Code: 20401, Message: "Proposal submission rejected"}
	ErrDuplicateBatch = Errno{Code: 20501, Message: "Identical batch already submitted"}
	ErrLockHeld       = Errno{Code: 20601, Message: "Another proposal run holds the safe lock"}
)
