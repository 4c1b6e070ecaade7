// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// FaultKind classifies an abnormal condition met while polling.
type FaultKind string

const (
	FaultConnectivity    FaultKind = "CONNECTIVITY"
	FaultTimeout         FaultKind = "TIMEOUT"
	FaultEmptyResponse   FaultKind = "EMPTY_RESPONSE"
	FaultType            FaultKind = "TYPE"
	FaultUnknownStatus   FaultKind = "UNKNOWN_STATUS"
	FaultChatUnreachable FaultKind = "CHAT_UNREACHABLE"
	// FaultUnexpected is reported for errors that are not a *Fault.
	FaultUnexpected FaultKind = "UNEXPECTED"
)

// Kind sentinels, usable with errors.Is.
var (
	ErrConnectivity    = &Fault{Kind: FaultConnectivity}
	ErrTimeout         = &Fault{Kind: FaultTimeout}
	ErrEmptyResponse   = &Fault{Kind: FaultEmptyResponse}
	ErrType            = &Fault{Kind: FaultType}
	ErrUnknownStatus   = &Fault{Kind: FaultUnknownStatus}
	ErrChatUnreachable = &Fault{Kind: FaultChatUnreachable}
)

// Fault is the error type returned by every polling step.
// Message is user-facing and goes into the Telegram fault notification.
type Fault struct {
	Kind    FaultKind
	Message string
	Err     error
}

// NewFault creates a Fault of the given kind with a formatted message and optional cause.
func NewFault(kind FaultKind, cause error, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (f *Fault) Error() string {
	msg := f.Message
	if msg == "" {
		msg = string(f.Kind)
	}
	if f.Err != nil {
		return msg + ": " + f.Err.Error()
	}
	return msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Is matches kind sentinels (faults without a message) by kind.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == f.Kind
}

// KindOf reports the kind of the first Fault in err's chain.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultUnexpected
}

// Identity is the key used to suppress repeated notifications of the same fault.
// The underlying cause is left out: transport errors carry ports and
// addresses that change between attempts.
func Identity(err error) string {
	if err == nil {
		return ""
	}
	var f *Fault
	if errors.As(err, &f) {
		return string(f.Kind) + ": " + f.Message
	}
	return string(FaultUnexpected) + ": " + err.Error()
}
