package codec

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/valu/internal/value"
)

const maxAliasDepth = 100

// FromYAML decodes a single YAML document. Mapping order is preserved.
// Timestamps become DateTime values; binary scalars are unsupported.
func FromYAML(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, value.NewParseError(-1, "yaml: %v", err)
	}
	if doc.Kind == 0 {
		return value.Null{}, nil
	}
	return fromYAMLNode(&doc, 0)
}

func fromYAMLNode(n *yaml.Node, aliases int) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null{}, nil
		}
		return fromYAMLNode(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, value.NewParseError(-1, "yaml: line %d: alias nesting too deep", n.Line)
		}
		return fromYAMLNode(n.Alias, aliases+1)
	case yaml.SequenceNode:
		arr := value.NewArray(len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c, aliases)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.Push(v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := value.NewObject(value.InsertionOrder)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, value.NewUnsupportedType(fmt.Sprintf("yaml non-scalar key at line %d", k.Line))
			}
			v, err := fromYAMLNode(vn, aliases)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k.Value, err)
			}
			obj.Insert(k.Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, value.NewUnsupportedType(fmt.Sprintf("yaml node kind %d", n.Kind))
}

func fromYAMLScalar(n *yaml.Node) (value.Value, error) {
	switch tag := n.ShortTag(); tag {
	case "!!null":
		return value.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, value.NewParseError(-1, "yaml: line %d: %v", n.Line, err)
		}
		return value.Bool(b), nil
	case "!!int":
		if num, err := value.ParseNumber(n.Value); err == nil {
			return num, nil
		} else if value.IsOutOfRange(err) {
			return nil, err
		}
		// 0x, 0o and underscore forms
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.IntNumber(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return value.UintNumber(u), nil
		}
		return nil, value.NewOutOfRange("yaml: line %d: integer %s", n.Line, n.Value)
	case "!!float":
		if num, err := value.ParseNumber(n.Value); err == nil && num.IsFloat() {
			return num, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, value.NewParseError(-1, "yaml: line %d: %v", n.Line, err)
		}
		return value.FloatNumber(f), nil
	case "!!timestamp":
		if dt, err := value.ParseDateTime(n.Value); err == nil {
			return dt, nil
		}
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, value.NewParseError(-1, "yaml: line %d: %v", n.Line, err)
		}
		dt, ok := value.NewZoned(t)
		if !ok {
			return nil, value.NewOutOfRange("yaml: line %d: timestamp %s", n.Line, n.Value)
		}
		return dt, nil
	case "!!str":
		return value.String(n.Value), nil
	case "!!binary":
		return nil, value.NewUnsupportedType("yaml !!binary (raw bytes)")
	default:
		return nil, value.NewUnsupportedType("yaml tag " + tag)
	}
}

// ToYAML renders v as a YAML document with two-space indentation.
// Undefined renders as null.
func ToYAML(v value.Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v value.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, value.Null, value.Undefined:
		return scalar("!!null", "null"), nil
	case value.Bool:
		if val {
			return scalar("!!bool", "true"), nil
		}
		return scalar("!!bool", "false"), nil
	case value.Number:
		if val.IsInteger() {
			return scalar("!!int", val.String()), nil
		}
		f, _ := val.Float64()
		switch {
		case math.IsNaN(f):
			return scalar("!!float", ".nan"), nil
		case math.IsInf(f, 1):
			return scalar("!!float", ".inf"), nil
		case math.IsInf(f, -1):
			return scalar("!!float", "-.inf"), nil
		}
		return scalar("!!float", val.String()), nil
	case value.String:
		return scalar("!!str", string(val)), nil
	case value.DateTime:
		if val.CalendarKind() == value.TimeKind {
			return scalar("!!str", val.String()), nil
		}
		return scalar("!!timestamp", val.String()), nil
	case *value.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range val.All() {
			c, err := toYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil
	case *value.Object:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, elem := range val.All() {
			c, err := toYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			m.Content = append(m.Content, scalar("!!str", k), c)
		}
		return m, nil
	}
	return nil, value.NewUnsupportedType(fmt.Sprintf("%T", v))
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
