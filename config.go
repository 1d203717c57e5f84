package fsm

import "github.com/enetx/g"

// NewConfig creates an empty Config with the given initial state.
// The initial state must be declared with State or Transition before the
// Config is passed to New.
func NewConfig(initial State) *Config {
	return &Config{
		Initial: initial,
		states:  g.NewMap[State, StateDefinition](),
	}
}

// State declares a state with its transition table. Redeclaring a state
// replaces its transitions but keeps its original declaration position.
// A nil table declares a state without outgoing transitions.
func (c *Config) State(name State, transitions g.Map[Event, State]) *Config {
	c.declare(name)

	table := g.NewMap[Event, State]()
	for event, to := range transitions {
		table[event] = to
	}

	c.states[name] = StateDefinition{Transitions: table}

	return c
}

// Transition adds a single from -> event -> to rule, declaring from if needed.
// The target is not required to be declared; an undeclared target is reported
// when the transition is taken.
func (c *Config) Transition(from State, event Event, to State) *Config {
	c.declare(from)
	c.states[from].Transitions[event] = to

	return c
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := NewConfig(c.Initial)
	for _, name := range c.names {
		clone.State(name, c.states[name].Transitions)
	}

	return clone
}

func (c *Config) declare(name State) {
	if c.states == nil {
		c.states = g.NewMap[State, StateDefinition]()
	}

	if _, ok := c.states[name]; ok {
		return
	}

	c.names = append(c.names, name)
	c.states[name] = StateDefinition{Transitions: g.NewMap[Event, State]()}
}

// HasState reports whether name is a declared state.
func (c *Config) HasState(name State) bool {
	_, ok := c.states[name]
	return ok
}

// Names returns the declared state names in declaration order.
func (c *Config) Names() g.Slice[State] { return c.names.Clone() }

// Definition returns the definition of a declared state.
func (c *Config) Definition(name State) g.Option[StateDefinition] {
	return c.states.Get(name)
}

// Target returns the state that event leads to from the given state, if a
// rule exists.
func (c *Config) Target(from State, event Event) g.Option[State] {
	def, ok := c.states[from]
	if !ok {
		return g.None[State]()
	}

	return def.Transitions.Get(event)
}

// statesWith returns the declared states that have a rule for event, in
// declaration order.
func (c *Config) statesWith(event Event) g.Slice[State] {
	result := g.NewSlice[State]()

	for _, name := range c.names {
		if c.states[name].Transitions.Contains(event) {
			result.Push(name)
		}
	}

	return result
}
