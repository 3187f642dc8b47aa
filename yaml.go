package toon

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlNullTag  = "!!null"
	yamlBoolTag  = "!!bool"
	yamlIntTag   = "!!int"
	yamlFloatTag = "!!float"
	yamlStrTag   = "!!str"
	yamlMergeTag = "!!merge"
)

// FromYAML converts a single YAML document to a Value. Mapping order is kept,
// aliases are expanded and merge keys are applied. An empty document is null.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("toon: invalid YAML: %w", err)
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case yaml.MappingNode:
		obj := NewObject()
		if err := mergeYAMLMapping(obj, n, false); err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return Value{}, fmt.Errorf("toon: unsupported YAML node kind %d at line %d", n.Kind, n.Line)
}

// mergeYAMLMapping copies the pairs of n into obj. Merged mappings never
// override keys that are already present.
func mergeYAMLMapping(obj *Object, n *yaml.Node, merged bool) error {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
	case yaml.SequenceNode:
		if !merged {
			return fmt.Errorf("toon: YAML sequence is not a mapping at line %d", n.Line)
		}
		for _, c := range n.Content {
			if err := mergeYAMLMapping(obj, c, true); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("toon: YAML merge value is not a mapping at line %d", n.Line)
	}

	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if k.ShortTag() == yamlMergeTag {
			if err := mergeYAMLMapping(obj, val, true); err != nil {
				return err
			}
			continue
		}
		for k.Kind == yaml.AliasNode {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("toon: YAML mapping key at line %d is not a scalar", k.Line)
		}
		if seen[k.Value] {
			return fmt.Errorf("toon: YAML mapping key %q at line %d already defined", k.Value, k.Line)
		}
		seen[k.Value] = true
		if merged && obj.Has(k.Value) {
			continue
		}
		v, err := fromYAMLNode(val)
		if err != nil {
			return err
		}
		obj.Set(k.Value, v)
	}
	return nil
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case yamlNullTag:
		return Null(), nil
	case yamlBoolTag:
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("toon: YAML bool at line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case yamlIntTag:
		if isDecimalNumber(n.Value) {
			return Number(n.Value)
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return Value{}, fmt.Errorf("toon: YAML int at line %d: %w", n.Line, err)
		}
		return Uint(u), nil
	case yamlFloatTag:
		if isDecimalNumber(n.Value) {
			return Number(n.Value)
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("toon: YAML float at line %d: %w", n.Line, err)
		}
		return Float(f), nil
	}
	return String(n.Value), nil
}

// ToYAML renders v as a YAML document indented by two spaces.
func ToYAML(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, fmt.Errorf("toon: encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("toon: encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v Value) *yaml.Node {
	switch v.typ {
	case TypeBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlBoolTag, Value: strconv.FormatBool(v.b)}
	case TypeNumber:
		switch v.s {
		case nanText:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlFloatTag, Value: ".nan"}
		case posInfText:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlFloatTag, Value: ".inf"}
		case negInfText:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlFloatTag, Value: "-.inf"}
		}
		text := jsonNumber(v.s)
		tag := yamlIntTag
		if strings.ContainsAny(text, ".eE") {
			tag = yamlFloatTag
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case TypeString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: v.s}
	case TypeArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.arr {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case TypeObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.obj.Fields() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: f.Key},
				toYAMLNode(f.Value))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlNullTag, Value: nullLiteral}
}

