// Package fsm provides a configuration-driven finite state machine with a
// linear undo/redo history of visited states. States and their event
// transitions are declared up front in a Config, built in code or decoded
// from JSON or YAML. It is built with types and utilities from the
// github.com/enetx/g library.
package fsm

import (
	"github.com/enetx/g"
	"go.uber.org/zap"
)

// New creates a machine for cfg and moves it into cfg.Initial.
// The initial move goes through the same validation as SetState, so an
// undeclared initial state yields *ErrInvalidState.
// The machine keeps its own copy of cfg; later changes to cfg do not affect it.
func New(cfg *Config, opts ...Option) (*FSM, error) {
	if cfg == nil {
		return nil, &ErrConfig{Reason: "config is nil"}
	}

	f := &FSM{
		config: cfg.Clone(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.ClearHistory()

	if err := f.SetState(f.config.Initial); err != nil {
		return nil, err
	}

	return f, nil
}

// Clone creates a new FSM over the same configuration, positioned at the
// initial state with a fresh history. The configuration is shared; neither
// machine modifies it.
func (f *FSM) Clone() *FSM {
	clone := &FSM{
		config:    f.config,
		current:   f.config.Initial,
		history:   g.Slice[State]{f.config.Initial},
		position:  0,
		blockRedo: true,
		logger:    f.logger,
	}

	return clone
}

// Config returns a copy of the configuration the machine was built with.
func (f *FSM) Config() *Config { return f.config.Clone() }

// Current returns the FSM's current state.
func (f *FSM) Current() State { return f.current }

// History returns a copy of the history sequence, including entries beyond
// the cursor that are no longer reachable.
func (f *FSM) History() g.Slice[State] { return f.history.Clone() }

// Position returns the history cursor, or -1 when the history is empty.
func (f *FSM) Position() int { return f.position }

// SetState jumps directly to s without consulting the transition table of the
// current state. s must be a declared state. The new state is appended to the
// history after the cursor and redo is blocked until the next Undo.
func (f *FSM) SetState(s State) error {
	return f.changeState(s, "")
}

// Trigger moves to the state that event leads to from the current state.
// When the current state has no rule for event, *ErrInvalidState is returned
// and nothing changes.
func (f *FSM) Trigger(event Event) error {
	target := f.config.Target(f.current, event)
	if target.IsNone() {
		err := &ErrInvalidState{Event: event, From: f.current}
		f.logger.Debug("fsm: transition rejected", zap.Error(err))

		return err
	}

	return f.changeState(target.Some(), event)
}

// Can reports whether the current state has a rule for event.
func (f *FSM) Can(event Event) bool {
	return f.config.Target(f.current, event).IsSome()
}

// Reset moves the machine back to the initial state. It is a regular forward
// move: the initial state is pushed onto the history again, even when the
// machine is already there.
func (f *FSM) Reset() error {
	return f.changeState(f.config.Initial, "")
}

// changeState validates s and records the move. Validation happens before any
// field is touched.
func (f *FSM) changeState(s State, event Event) error {
	if !f.config.HasState(s) {
		err := &ErrInvalidState{State: s}
		if event != "" {
			err.Event, err.From = event, f.current
		}

		f.logger.Debug("fsm: state rejected", zap.Error(err))

		return err
	}

	from := f.current

	// No truncation: entries past the cursor stay resident behind the new one,
	// and blockRedo keeps them out of reach.
	f.position++
	if f.position == len(f.history) {
		f.history.Push(s)
	} else {
		f.history.Insert(g.Int(f.position), s)
	}

	f.current = s
	f.blockRedo = true

	f.logger.Debug("fsm: state changed",
		zap.String("from", string(from)),
		zap.String("to", string(s)),
		zap.String("event", string(event)),
		zap.Int("position", f.position),
	)

	return nil
}

// States returns the declared state names in declaration order. When an
// event is given, only the states that have a rule for it are returned.
// Additional events are ignored.
func (f *FSM) States(event ...Event) g.Slice[State] {
	if len(event) == 0 {
		return f.config.Names()
	}

	return f.config.statesWith(event[0])
}

// CanUndo reports whether Undo would succeed.
func (f *FSM) CanUndo() bool {
	return f.position > 0
}

// Undo moves back to the previous history entry. It returns false and does
// nothing when there is no previous entry.
func (f *FSM) Undo() bool {
	if !f.CanUndo() {
		return false
	}

	from := f.current

	f.position--
	f.current = f.history[f.position]
	f.blockRedo = false

	f.logger.Debug("fsm: undo",
		zap.String("from", string(from)),
		zap.String("to", string(f.current)),
		zap.Int("position", f.position),
	)

	return true
}

// CanRedo reports whether Redo would succeed.
func (f *FSM) CanRedo() bool {
	return !f.blockRedo && f.position+1 < len(f.history)
}

// Redo moves forward to the entry that the last Undo left. It returns false
// when redo is blocked by a forward move or when there is no next entry.
func (f *FSM) Redo() bool {
	if !f.CanRedo() {
		return false
	}

	from := f.current

	f.position++
	f.current = f.history[f.position]

	f.logger.Debug("fsm: redo",
		zap.String("from", string(from)),
		zap.String("to", string(f.current)),
		zap.Int("position", f.position),
	)

	return true
}

// ClearHistory empties the history. The current state and the redo block are
// left as they are, so the machine keeps reporting its state while Undo and
// Redo have nothing to move to until the next forward move.
func (f *FSM) ClearHistory() {
	f.history = g.NewSlice[State]()
	f.position = -1

	f.logger.Debug("fsm: history cleared", zap.String("state", string(f.current)))
}

// Sync returns a thread-safe wrapper around f. The wrapper takes ownership;
// f should not be used directly afterwards.
func (f *FSM) Sync() *SyncFSM { return &SyncFSM{fsm: f} }
