package ron

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================
//
// Converts between YAML and RON values through yaml.Node trees, which
// keep mapping order — matching this package's ordered-mapping model.
// Tagged variants use the same {_tag, _value} convention as the JSON
// bridge.

// FromYAML converts YAML bytes to a Value.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ron: YAML parse error: %w", err)
	}
	if doc.Kind == 0 {
		// Empty input never reaches Unmarshal's document handling.
		return Null(), nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(doc.Content[0])
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return Bool(b), nil
		case "!!int":
			if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
				return Int(i), nil
			}
			return Number(n.Value)
		case "!!float":
			f, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				var d float64
				if err := n.Decode(&d); err != nil {
					return nil, err
				}
				f = d
			}
			return Float(f), nil
		default:
			return String(n.Value), nil
		}

	case yaml.SequenceNode:
		elems := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			elem, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return Sequence(elems...), nil

	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := fromYAMLNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return Mapping(pairs...), nil
	}
	return nil, fmt.Errorf("ron: unsupported YAML node kind %d", n.Kind)
}

// ToYAML converts a Value to YAML bytes, preserving mapping order.
func ToYAML(v *Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func toYAMLNode(v *Value) (*yaml.Node, error) {
	if v.IsNull() {
		return scalarNode("!!null", "null"), nil
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			return scalarNode("!!bool", "true"), nil
		}
		return scalarNode("!!bool", "false"), nil

	case KindNumber:
		if v.numVal.isInt {
			return scalarNode("!!int", strconv.FormatInt(v.numVal.intVal, 10)), nil
		}
		f := v.numVal.floatVal
		if math.IsNaN(f) {
			return scalarNode("!!float", ".nan"), nil
		}
		if math.IsInf(f, 1) {
			return scalarNode("!!float", ".inf"), nil
		}
		if math.IsInf(f, -1) {
			return scalarNode("!!float", "-.inf"), nil
		}
		return scalarNode("!!float", formatFloat(f)), nil

	case KindString:
		return scalarNode("!!str", v.strVal), nil

	case KindSequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.seqVal {
			c, err := toYAMLNode(elem)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, c)
		}
		return node, nil

	case KindMapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.mapVal {
			k, err := toYAMLNode(p.Key)
			if err != nil {
				return nil, err
			}
			val, err := toYAMLNode(p.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, k, val)
		}
		return node, nil

	case KindTagged:
		inner, err := toYAMLNode(v.tagVal.Value)
		if err != nil {
			return nil, err
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		node.Content = append(node.Content,
			scalarNode("!!str", "_tag"), scalarNode("!!str", v.tagVal.Name),
			scalarNode("!!str", "_value"), inner,
		)
		return node, nil
	}
	return nil, fmt.Errorf("ron: cannot encode %s as YAML", v.kind)
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
