package callsite

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- Operand YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Operand.
// Accepts:
//   - Parameter name: x
//   - Parameter reference: {arg: x}
//   - Typed constant: {value: "7", type: int}
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string

		err := node.Decode(&name)
		if err != nil {
			return err
		}

		*o = Operand{Arg: name}

		return nil

	case yaml.MappingNode:
		// Plain alias avoids recursing into this method.
		type rawOperand Operand

		var raw rawOperand

		err := node.Decode(&raw)
		if err != nil {
			return err
		}

		*o = Operand(raw)

		return nil

	default:
		return fmt.Errorf("line %d: expected parameter name or map, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a bare parameter name when possible.
func (o Operand) MarshalYAML() (any, error) {
	if o.Arg != "" && o.Value == "" && o.Type == "" {
		return o.Arg, nil
	}

	type rawOperand Operand

	return rawOperand(o), nil
}

// --- StreamItem YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StreamItem.
// Accepts:
//   - Literal fragment: "X="
//   - Operand map: {arg: x} or {value: "7", type: int}
func (s *StreamItem) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var text string

		err := node.Decode(&text)
		if err != nil {
			return err
		}

		*s = StreamItem{Literal: &text}

		return nil

	case yaml.MappingNode:
		var op Operand

		err := node.Decode(&op)
		if err != nil {
			return err
		}

		*s = StreamItem{Operand: op}

		return nil

	default:
		return fmt.Errorf("line %d: expected literal string or operand map, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs literals as plain strings.
func (s StreamItem) MarshalYAML() (any, error) {
	if s.Literal != nil {
		return *s.Literal, nil
	}

	type rawOperand Operand

	return rawOperand(s.Operand), nil
}
