package fsm

import "fmt"

// ErrInvalidState is returned whenever the machine is asked to enter a state
// that is not declared in its Config. This covers direct jumps (SetState),
// Reset, construction with an undeclared initial state, and Trigger when the
// current state has no rule for the event. The machine is left unchanged.
type ErrInvalidState struct {
	// State is the rejected target. It is empty when Trigger found no rule.
	State State
	// Event is the triggering event, empty for direct state changes.
	Event Event
	// From is the state the machine was in when Trigger was called.
	From State
}

func (e *ErrInvalidState) Error() string {
	if e.Event != "" && e.State == "" {
		return fmt.Sprintf("fsm: no transition for event %q from state %q", e.Event, e.From)
	}

	if e.Event != "" {
		return fmt.Sprintf("fsm: event %q from state %q targets undeclared state %q", e.Event, e.From, e.State)
	}

	return fmt.Sprintf("fsm: state %q not exists", e.State)
}

// ErrConfig is returned when a configuration document cannot be decoded into
// a Config, or when a machine is constructed without one.
type ErrConfig struct {
	// Reason describes which part of the document was rejected.
	Reason string
	// Err is the underlying decoder error, if any.
	Err error
}

func (e *ErrConfig) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fsm: invalid config: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("fsm: invalid config: %s", e.Reason)
}

// Unwrap provides compatibility with the standard library's errors package,
// allowing the use of errors.Is and errors.As to inspect the wrapped error.
func (e *ErrConfig) Unwrap() error { return e.Err }
