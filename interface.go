package fsm

import "github.com/enetx/g"

type StateMachine interface {
	Current() State
	SetState(State) error
	Trigger(Event) error
	Can(Event) bool
	Reset() error
	States(...Event) g.Slice[State]
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	ClearHistory()
	History() g.Slice[State]
	Position() int
	ToDOT() g.String
}

var (
	_ StateMachine = (*FSM)(nil)
	_ StateMachine = (*SyncFSM)(nil)
)
