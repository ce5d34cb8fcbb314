package domain

import "errors"

type ErrorCode string

const (
	ErrCodeEmptyActivity        ErrorCode = "EMPTY_ACTIVITY"
	ErrCodeInvalidDuration      ErrorCode = "INVALID_DURATION"
	ErrCodeSlotOccupied         ErrorCode = "SLOT_OCCUPIED"
	ErrCodeFlowerLocked         ErrorCode = "FLOWER_LOCKED"
	ErrCodeDuplicateID          ErrorCode = "DUPLICATE_ID"
	ErrCodePersistenceFailure   ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeCorruptPersistedData ErrorCode = "CORRUPT_PERSISTED_DATA"
	ErrCodeResetNotConfirmed    ErrorCode = "RESET_NOT_CONFIRMED"
	ErrCodeUnknownSlot          ErrorCode = "UNKNOWN_SLOT"
)

// Error is a classified garden failure. Two Errors match under errors.Is
// when their codes are equal, so callers compare against the sentinels below.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError builds a classified error, optionally wrapping a cause.
func NewError(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Err: cause}
}

var (
	ErrEmptyActivity        = &Error{Code: ErrCodeEmptyActivity, Message: "describe what you worked on"}
	ErrInvalidDuration      = &Error{Code: ErrCodeInvalidDuration, Message: "work duration must be positive"}
	ErrSlotOccupied         = &Error{Code: ErrCodeSlotOccupied, Message: "this spot already has a flower"}
	ErrFlowerLocked         = &Error{Code: ErrCodeFlowerLocked, Message: "this flower is locked"}
	ErrDuplicateID          = &Error{Code: ErrCodeDuplicateID, Message: "session id already exists"}
	ErrPersistenceFailure   = &Error{Code: ErrCodePersistenceFailure, Message: "saving garden data failed"}
	ErrCorruptPersistedData = &Error{Code: ErrCodeCorruptPersistedData, Message: "stored garden data is unreadable"}
	ErrResetNotConfirmed    = &Error{Code: ErrCodeResetNotConfirmed, Message: "reset requires confirmation"}
	ErrUnknownSlot          = &Error{Code: ErrCodeUnknownSlot, Message: "no such planting spot"}
)

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
