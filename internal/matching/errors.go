package matching

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing prerequisite rows. All of them abort the whole
// matching call; the HTTP layer collapses them into an empty match list.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrEmployeeNotFound = errors.New("employee profile not found")
	ErrSkillsNotFound   = errors.New("employee skills not found")
)

// WrongRoleError is returned when a caller invokes the matching direction
// that does not belong to their role. It fails fast, before any candidate
// pool fetch or inference call.
type WrongRoleError struct {
	Want string
	Got  string
}

func (e *WrongRoleError) Error() string {
	return fmt.Sprintf("user role is %q, matching direction requires %q", e.Got, e.Want)
}

// InferenceError wraps a failed model call (network, quota, malformed request).
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "inference request failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the model's text output cannot be turned into a
// match array. The raw text is attached for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse match response: %v; raw output: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
