package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OrderedObject is a JSON/YAML object that remembers key order. Registration
// answers decode into it so helpers such as objectValues can return values in
// the order they were submitted. Nested objects decode as *OrderedObject.
type OrderedObject struct {
	keys   []string
	values map[string]any
}

// NewOrderedObject returns an empty object.
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{values: make(map[string]any)}
}

// Set stores value under key, appending key when it is new.
func (o *OrderedObject) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *OrderedObject) Get(key string) (any, bool) {
	if o == nil || o.values == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// Len returns the number of keys.
func (o *OrderedObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *OrderedObject) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Values returns the values in key order.
func (o *OrderedObject) Values() []any {
	if o == nil {
		return nil
	}
	out := make([]any, 0, len(o.keys))
	for _, key := range o.keys {
		out = append(out, o.values[key])
	}
	return out
}

// Map returns a shallow copy as a plain map. Nested ordered objects are kept.
func (o *OrderedObject) Map() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o.values))
	for key, value := range o.values {
		out[key] = value
	}
	return out
}

// MarshalJSON encodes keys in insertion order.
func (o OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("model: encode %q: %w", key, err)
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (o *OrderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	value, err := decodeOrderedJSON(dec)
	if err != nil {
		return fmt.Errorf("model: decode object: %w", err)
	}
	obj, ok := value.(*OrderedObject)
	if !ok {
		return fmt.Errorf("model: decode object: expected JSON object, got %T", value)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("model: decode object: trailing data")
	}
	*o = *obj
	return nil
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (o *OrderedObject) UnmarshalYAML(node *yaml.Node) error {
	value, err := decodeOrderedYAML(node)
	if err != nil {
		return err
	}
	obj, ok := value.(*OrderedObject)
	if !ok {
		return fmt.Errorf("model: decode object: expected YAML mapping, got %T", value)
	}
	*o = *obj
	return nil
}

func decodeOrderedJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := NewOrderedObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			value, err := decodeOrderedJSON(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		list := []any{}
		for dec.More() {
			value, err := decodeOrderedJSON(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func decodeOrderedYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeOrderedYAML(node.Content[0])
	case yaml.AliasNode:
		return decodeOrderedYAML(node.Alias)
	case yaml.MappingNode:
		obj := NewOrderedObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("model: decode mapping key: %w", err)
			}
			value, err := decodeOrderedYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := decodeOrderedYAML(child)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("model: decode scalar: %w", err)
		}
		return value, nil
	}
}
