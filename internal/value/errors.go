package value

import (
	"errors"
	"fmt"
)

// Error is the single error type produced by construction, conversion and
// classification.
//
// Callers branch on Code (or the Is* helpers, which see through wrapping).
// Expected/Actual are set for TYPE_MISMATCH; Offset is set for PARSE_ERROR
// and is -1 otherwise.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Expected and Actual name the kinds involved in a mismatch.
	Expected string
	Actual   string

	// Offset is the byte offset into the parsed input, or -1.
	Offset int
}

// ErrorCode categorizes errors.
type ErrorCode string

const (
	// ErrCodeParse indicates a malformed payload or structural literal.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeTypeMismatch indicates the Value shape differs from the expected shape.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnsupportedType indicates a native type with no Value mapping.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"

	// ErrCodeOutOfRange indicates a number no supported width can hold.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeMissingField indicates a required field or tuple element is absent.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeInvalidVariant indicates an unknown enum tag or unsupported enum shape.
	ErrCodeInvalidVariant ErrorCode = "INVALID_VARIANT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code == ErrCodeTypeMismatch && e.Expected != "":
		return fmt.Sprintf("%s: expected %s, got %s", e.Code, e.Expected, e.Actual)
	case e.Code == ErrCodeParse && e.Offset >= 0:
		return fmt.Sprintf("%s: %s (offset %d)", e.Code, e.Message, e.Offset)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// NewParseError creates an Error for malformed input at the given byte offset.
func NewParseError(offset int, format string, args ...any) *Error {
	return &Error{Code: ErrCodeParse, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// NewTypeMismatch creates an Error naming the expected and actual shapes.
func NewTypeMismatch(expected, actual string) *Error {
	return &Error{
		Code:     ErrCodeTypeMismatch,
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
		Expected: expected,
		Actual:   actual,
		Offset:   -1,
	}
}

// NewUnsupportedType creates an Error for a type with no Value mapping.
func NewUnsupportedType(typeName string) *Error {
	return &Error{Code: ErrCodeUnsupportedType, Message: fmt.Sprintf("unsupported type: %s", typeName), Offset: -1}
}

// NewOutOfRange creates an Error for a number that does not fit.
func NewOutOfRange(format string, args ...any) *Error {
	return &Error{Code: ErrCodeOutOfRange, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// NewMissingField creates an Error for an absent required field.
func NewMissingField(name string) *Error {
	return &Error{Code: ErrCodeMissingField, Message: fmt.Sprintf("missing field %q", name), Offset: -1}
}

// NewInvalidVariant creates an Error for an unknown or malformed enum encoding.
func NewInvalidVariant(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidVariant, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// IsParseError reports whether err is (or wraps) a PARSE_ERROR.
func IsParseError(err error) bool { return CodeOf(err) == ErrCodeParse }

// IsTypeMismatch reports whether err is (or wraps) a TYPE_MISMATCH.
func IsTypeMismatch(err error) bool { return CodeOf(err) == ErrCodeTypeMismatch }

// IsUnsupportedType reports whether err is (or wraps) an UNSUPPORTED_TYPE.
func IsUnsupportedType(err error) bool { return CodeOf(err) == ErrCodeUnsupportedType }

// IsOutOfRange reports whether err is (or wraps) an OUT_OF_RANGE.
func IsOutOfRange(err error) bool { return CodeOf(err) == ErrCodeOutOfRange }

// IsMissingField reports whether err is (or wraps) a MISSING_FIELD.
func IsMissingField(err error) bool { return CodeOf(err) == ErrCodeMissingField }

// IsInvalidVariant reports whether err is (or wraps) an INVALID_VARIANT.
func IsInvalidVariant(err error) bool { return CodeOf(err) == ErrCodeInvalidVariant }
