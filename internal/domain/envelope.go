package domain

import (
	"encoding/json"
	"fmt"
)

// Result is the envelope returned by every tool invocation. It has exactly
// two shapes: Success carrying the remote service's decoded response, or
// Failure carrying a human-readable diagnostic. Callers construct it only
// through Success/Failure, so a Result is always one of the two.
type Result struct {
	ok   bool
	data any
	err  string
}

// Success wraps a handler's return value.
func Success(data any) Result {
	return Result{ok: true, data: data}
}

// Failure wraps a diagnostic message.
func Failure(msg string) Result {
	return Result{ok: false, err: msg}
}

// Failuref is Failure with fmt.Sprintf formatting.
func Failuref(format string, args ...any) Result {
	return Failure(fmt.Sprintf(format, args...))
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.ok }

// Data returns the wrapped response. Nil on Failure.
func (r Result) Data() any { return r.data }

// Err returns the diagnostic message. Empty on Success.
func (r Result) Err() string { return r.err }

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON renders the wire form: {"success":true,"data":...} or
// {"success":false,"error":"..."}. The variants never mix fields.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(successEnvelope{Success: true, Data: r.data})
	}
	return json.Marshal(failureEnvelope{Success: false, Error: r.err})
}
