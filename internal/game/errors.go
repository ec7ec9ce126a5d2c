package game

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a class of game error.
type ErrorKind string

const (
	KindInvalidBet        ErrorKind = "INVALID_BET"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindShoeExhausted     ErrorKind = "SHOE_EXHAUSTED"
)

// Error is a recoverable game error. An operation that returns an *Error
// leaves the round and player unchanged.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidBet        = &Error{Kind: KindInvalidBet}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrShoeExhausted     = &Error{Kind: KindShoeExhausted}
)

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a game error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var gameErr *Error
	if !errors.As(err, &gameErr) {
		return "", false
	}
	return gameErr.Kind, true
}
