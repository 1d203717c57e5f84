package fsm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/enetx/g"
)

// ParseJSON decodes a JSON configuration document of the form
//
//	{"initial": "idle", "states": {"idle": {"transitions": {"start": "running"}}}}
//
// States are declared in the order they appear in the document.
func ParseJSON(data []byte) (*Config, error) {
	cfg := new(Config)
	if err := cfg.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The document is read as a token stream so that object key order becomes
// declaration order.
func (c *Config) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	cfg, err := decodeJSONConfig(jsonTokens{dec})
	if err != nil {
		return err
	}

	if _, err := dec.Token(); err != io.EOF {
		return &ErrConfig{Reason: "malformed document", Err: errors.New("trailing data after document")}
	}

	*c = *cfg

	return nil
}

type declaration struct {
	name        State
	transitions g.Map[Event, State]
}

func decodeJSONConfig(r jsonTokens) (*Config, error) {
	var (
		initial      string
		hasInitial   bool
		declarations g.Slice[declaration]
	)

	isObject, err := r.object("document must be a mapping", func(key string) error {
		switch key {
		case "initial":
			name, err := r.stateName("initial")
			if err != nil {
				return err
			}

			initial, hasInitial = name, true
		case "states":
			_, err := r.object("states: expected a mapping", func(name string) error {
				transitions, err := r.definition(name)
				if err != nil {
					return err
				}

				declarations.Push(declaration{State(name), transitions})

				return nil
			})

			return err
		default:
			return r.skip()
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !isObject {
		return nil, &ErrConfig{Reason: "document must be a mapping"}
	}

	if !hasInitial {
		return nil, &ErrConfig{Reason: "missing initial state"}
	}

	cfg := NewConfig(State(initial))
	for _, decl := range declarations {
		cfg.State(decl.name, decl.transitions)
	}

	return cfg, nil
}

// jsonTokens walks a JSON document token by token.
type jsonTokens struct{ dec *json.Decoder }

func (r jsonTokens) token() (json.Token, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return nil, &ErrConfig{Reason: "malformed document", Err: err}
	}

	return tok, nil
}

// object reads an object and calls fn with every key; fn must consume the
// value. A null reports false.
func (r jsonTokens) object(reason string, fn func(key string) error) (bool, error) {
	tok, err := r.token()
	if err != nil {
		return false, err
	}

	if tok == nil {
		return false, nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return false, &ErrConfig{Reason: reason}
	}

	for r.dec.More() {
		tok, err := r.token()
		if err != nil {
			return false, err
		}

		key, _ := tok.(string)
		if err := fn(key); err != nil {
			return false, err
		}
	}

	if _, err := r.token(); err != nil {
		return false, err
	}

	return true, nil
}

func (r jsonTokens) definition(state string) (g.Map[Event, State], error) {
	transitions := g.NewMap[Event, State]()

	_, err := r.object(reason("state {}: expected a mapping", state), func(key string) error {
		if key != "transitions" {
			return r.skip()
		}

		_, err := r.object(reason("state {}: transitions: expected a mapping", state), func(event string) error {
			target, err := r.stateName(reason("state {}: event {}", state, event))
			if err != nil {
				return err
			}

			transitions[Event(event)] = State(target)

			return nil
		})

		return err
	})
	if err != nil {
		return nil, err
	}

	return transitions, nil
}

func (r jsonTokens) stateName(field string) (string, error) {
	tok, err := r.token()
	if err != nil {
		return "", err
	}

	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", &ErrConfig{Reason: reason("{}: expected a state name", field)}
	}
}

// skip consumes one value of any shape.
func (r jsonTokens) skip() error {
	depth := 0

	for {
		tok, err := r.token()
		if err != nil {
			return err
		}

		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			default:
				depth--
			}
		}

		if depth == 0 {
			return nil
		}
	}
}

// MarshalJSON implements the json.Marshaler interface. States are written in
// declaration order, events within a state in sorted order.
func (c *Config) MarshalJSON() ([]byte, error) {
	b := g.NewBuilder()

	quote := func(s g.String) {
		quoted, _ := json.Marshal(string(s))
		b.Write(quoted)
	}

	b.WriteString(`{"initial":`)
	quote(g.String(c.Initial))
	b.WriteString(`,"states":{`)

	for i, name := range c.names {
		if i > 0 {
			b.WriteByte(',')
		}

		quote(g.String(name))
		b.WriteString(`:{"transitions":{`)

		for j, event := range c.events(name) {
			if j > 0 {
				b.WriteByte(',')
			}

			quote(g.String(event))
			b.WriteByte(':')
			quote(g.String(c.states[name].Transitions[event]))
		}

		b.WriteString(`}}`)
	}

	b.WriteString(`}}`)

	return []byte(b.String()), nil
}
