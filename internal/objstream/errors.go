package objstream

import (
	"errors"
	"fmt"
)

// Sentinel errors a caller can test for with errors.Is. Named and prefixed
// the way hayabusa-cloud-framer's errors.go names its package-level
// sentinels.
var (
	// ErrEndOfStream reports that the underlying byte source was exhausted
	// mid-record.
	ErrEndOfStream = errors.New("objstream: end of stream")

	// ErrHeaderMismatch reports that the stream's magic or version did not
	// match what this decoder speaks.
	ErrHeaderMismatch = errors.New("objstream: header mismatch")

	// ErrUnreadBlockData reports an attempt to leave block-data mode while
	// bytes remain unread in the current frame.
	ErrUnreadBlockData = errors.New("objstream: unread block data")

	// ErrUnknownTag is the broad-match sentinel for UnknownTagError: a
	// caller that only cares "was this an unrecognized tag" can errors.Is
	// against this instead of errors.As-ing into the struct for the byte.
	ErrUnknownTag = errors.New("objstream: unknown tag")

	// ErrInvalidTypeCode is the broad-match sentinel for InvalidTypeCodeError.
	ErrInvalidTypeCode = errors.New("objstream: invalid type code")

	// ErrUnexpectedRecord is the broad-match sentinel for UnexpectedRecordError.
	ErrUnexpectedRecord = errors.New("objstream: unexpected record")

	// ErrDanglingHandle is the broad-match sentinel for DanglingHandleError.
	ErrDanglingHandle = errors.New("objstream: dangling handle")
)

// UnknownTagError reports a tag byte outside the recognized set.
type UnknownTagError struct {
	Tag byte
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("objstream: unknown tag 0x%02x", e.Tag)
}

// Unwrap lets callers match broadly with errors.Is(err, ErrUnknownTag)
// instead of narrowly extracting the tag byte via errors.As.
func (e *UnknownTagError) Unwrap() error { return ErrUnknownTag }

// InvalidTypeCodeError reports a field type-code byte outside B C D F I J S Z [ L.
type InvalidTypeCodeError struct {
	Code byte
}

func (e *InvalidTypeCodeError) Error() string {
	return fmt.Sprintf("objstream: invalid type code 0x%02x (%q)", e.Code, rune(e.Code))
}

func (e *InvalidTypeCodeError) Unwrap() error { return ErrInvalidTypeCode }

// UnexpectedRecordError reports that the grammar required a specific record
// variant at this position and another was found.
type UnexpectedRecordError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedRecordError) Error() string {
	return fmt.Sprintf("objstream: expected %s, got %s", e.Expected, e.Actual)
}

func (e *UnexpectedRecordError) Unwrap() error { return ErrUnexpectedRecord }

// DanglingHandleError reports a TC_REFERENCE to a handle that has not been
// assigned yet.
type DanglingHandleError struct {
	Handle uint32
}

func (e *DanglingHandleError) Error() string {
	return fmt.Sprintf("objstream: dangling handle 0x%x", e.Handle)
}

func (e *DanglingHandleError) Unwrap() error { return ErrDanglingHandle }
