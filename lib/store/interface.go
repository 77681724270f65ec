package store

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/doc"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the boundary interface of every storage backend. Keys are resource keys
// (see Key) and always normalized by the implementation.
//
// Reading a key that was never written returns empty content (nil bytes or an empty
// document) and no error. Updating a key with empty content removes it.
// Backends that record the content kind (ram, sqlite) reject reading a key as the other
// kind with ErrUsageConflict, the file backend returns the encoded file instead.
type IStore interface {
	// Binary returns the binary payload stored under key.
	Binary(key string) (value []byte, err error)
	// Document returns the structured document stored under key.
	// The returned document is owned by the caller.
	Document(key string) (d *doc.Document, err error)
	// Update replaces the binary payload stored under key.
	Update(key string, value []byte) (err error)
	// UpdateDocument replaces the document stored under key.
	UpdateDocument(key string, d *doc.Document) (err error)
	// Has returns whether any content is stored under key.
	Has(key string) (ok bool, err error)
	// Keys returns the names of the entries directly below prefix (one level deep), sorted.
	// For a comb key these are its cell names, for a hive key its comb ids and hive level cells.
	Keys(prefix string) (names []string, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message.
	Cause error   // The wrapped error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Is makes errors.Is match any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Unwrap returns the wrapped error, so errors.Is also matches the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new StoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// Errorf creates a new StoreError with a formatted message.
func Errorf(code RetCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// Wrapf creates a new StoreError with a formatted message wrapping err.
func Wrapf(code RetCode, err error, format string, args ...interface{}) *Error {
	e := NewError(code, fmt.Sprintf(format, args...)+": "+err.Error())
	e.Cause = err
	return e
}

// Sentinels for errors.Is
var (
	ErrInternal      = &Error{Code: RetCInternalError}
	ErrInvalid       = &Error{Code: RetCInvalidOperation}
	ErrUsageConflict = &Error{Code: RetCUsageConflict}
	ErrConfig        = &Error{Code: RetCConfigError}
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by underlying backend.
	RetCInvalidOperation                    // 3: Invalid operation (e.g. malformed names).
	RetCUsageConflict                       // 4: Key accessed as binary and document.
	RetCConfigError                         // 5: Backend is misconfigured (e.g. root can't be created).
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCUsageConflict:
		return "UsageConflict"
	case RetCConfigError:
		return "ConfigError"
	default:
		return "Unknown"
	}
}
