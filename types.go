package fsm

import (
	"sync"

	"github.com/enetx/g"
	"go.uber.org/zap"
)

type (
	// State represents a named state declared in a Config.
	State g.String
	// Event represents an event that selects a transition from the current state.
	Event g.String

	// StateDefinition holds the outgoing transitions of a single state,
	// keyed by event name.
	StateDefinition struct {
		Transitions g.Map[Event, State]
	}

	// Config is the static description of a machine: the initial state and
	// every declared state with its transition table. Declaration order is
	// kept in names because Go maps do not preserve it.
	Config struct {
		Initial State
		states  g.Map[State, StateDefinition]
		names   g.Slice[State]
	}

	// Option configures an FSM at construction time.
	Option func(*FSM)

	// FSM is a configuration-driven state machine with a linear undo/redo history.
	// It is not safe for concurrent use; see SyncFSM.
	FSM struct {
		config    *Config
		current   State
		history   g.Slice[State]
		position  int
		blockRedo bool

		logger *zap.Logger
	}

	// SyncFSM is a thread-safe wrapper around an FSM.
	// It protects all state-mutating and state-reading operations with a sync.RWMutex,
	// making it safe for use across multiple goroutines.
	// All methods on SyncFSM are the thread-safe counterparts to the methods on the base FSM.
	SyncFSM struct {
		fsm *FSM
		mu  sync.RWMutex
	}
)
