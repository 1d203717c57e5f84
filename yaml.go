package fsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML configuration document:
//
//	initial: idle
//	states:
//	  idle:
//	    transitions:
//	      start: running
//	  running:
//	    transitions:
//	      stop: idle
//
// States are declared in document order.
func ParseYAML(data []byte) (*Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ErrConfig{Reason: "malformed document", Err: err}
	}

	return decodeConfig(&node)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	cfg, err := decodeConfig(node)
	if err != nil {
		return err
	}

	*c = *cfg

	return nil
}

// MarshalYAML implements the yaml.Marshaler interface. States are written in
// declaration order, events within a state in sorted order.
func (c *Config) MarshalYAML() (any, error) {
	states := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range c.names {
		transitions := &yaml.Node{Kind: yaml.MappingNode}

		for _, event := range c.events(name) {
			transitions.Content = append(transitions.Content,
				scalarNode(g.String(event)),
				scalarNode(g.String(c.states[name].Transitions[event])),
			)
		}

		definition := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{scalarNode("transitions"), transitions},
		}

		states.Content = append(states.Content, scalarNode(g.String(name)), definition)
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalarNode("initial"), scalarNode(g.String(c.Initial)),
			scalarNode("states"), states,
		},
	}, nil
}

// events returns the events declared on a state, sorted.
func (c *Config) events(name State) g.Slice[Event] {
	events := c.states[name].Transitions.Keys()
	events.SortBy(cmp.Cmp)

	return events
}

func scalarNode(value g.String) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(value)}
}

// decodeConfig walks a node tree so that mapping order becomes declaration
// order.
func decodeConfig(node *yaml.Node) (*Config, error) {
	node = resolve(node)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &ErrConfig{Reason: "empty document"}
		}

		node = resolve(node.Content[0])
	}

	if node.Kind != yaml.MappingNode {
		return nil, &ErrConfig{Reason: "document must be a mapping"}
	}

	var (
		initial    string
		hasInitial bool
		statesNode *yaml.Node
	)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolve(node.Content[i+1])

		switch key.Value {
		case "initial":
			name, err := scalarValue(value, "initial")
			if err != nil {
				return nil, err
			}

			initial, hasInitial = name, true
		case "states":
			statesNode = value
		}
	}

	if !hasInitial {
		return nil, &ErrConfig{Reason: "missing initial state"}
	}

	cfg := NewConfig(State(initial))

	if statesNode == nil || isNull(statesNode) {
		return cfg, nil
	}

	if statesNode.Kind != yaml.MappingNode {
		return nil, &ErrConfig{Reason: reason("states: expected a mapping at line {}", statesNode.Line)}
	}

	for i := 0; i+1 < len(statesNode.Content); i += 2 {
		name := statesNode.Content[i].Value

		transitions, err := decodeTransitions(name, resolve(statesNode.Content[i+1]))
		if err != nil {
			return nil, err
		}

		cfg.State(State(name), transitions)
	}

	return cfg, nil
}

func decodeTransitions(state string, node *yaml.Node) (g.Map[Event, State], error) {
	transitions := g.NewMap[Event, State]()

	if isNull(node) {
		return transitions, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, &ErrConfig{Reason: reason("state {}: expected a mapping at line {}", state, node.Line)}
	}

	var table *yaml.Node

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "transitions" {
			table = resolve(node.Content[i+1])
		}
	}

	if table == nil || isNull(table) {
		return transitions, nil
	}

	if table.Kind != yaml.MappingNode {
		return nil, &ErrConfig{
			Reason: reason("state {}: transitions: expected a mapping at line {}", state, table.Line),
		}
	}

	for i := 0; i+1 < len(table.Content); i += 2 {
		event := table.Content[i].Value

		target, err := scalarValue(resolve(table.Content[i+1]), reason("state {}: event {}", state, event))
		if err != nil {
			return nil, err
		}

		transitions[Event(event)] = State(target)
	}

	return transitions, nil
}

func scalarValue(node *yaml.Node, field string) (string, error) {
	if node.Kind != yaml.ScalarNode || isNull(node) {
		return "", &ErrConfig{Reason: reason("{}: expected a state name at line {}", field, node.Line)}
	}

	return node.Value, nil
}

func reason(format g.String, args ...any) string {
	return string(g.Format(format, args...))
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
