package model

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers insertion order. Category
// and subsection keys double as page anchors, so their document order is
// part of the data.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set inserts or replaces key. A replaced key keeps its original position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m OrderedMap[V]) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, eris.Wrapf(err, "model: marshal key %q", k)
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, eris.Wrapf(err, "model: marshal value for %q", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the document's key order.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return eris.Wrap(err, "model: read object")
	}
	*m = OrderedMap[V]{}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return eris.Errorf("model: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "model: read key")
		}
		key, ok := tok.(string)
		if !ok {
			return eris.Errorf("model: expected string key, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return eris.Wrapf(err, "model: decode value for %q", key)
		}
		m.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return eris.Wrap(err, "model: read object end")
	}
	return nil
}

// UnmarshalYAML reads a YAML mapping, keeping the document's key order.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	*m = OrderedMap[V]{}
	if node.Kind != yaml.MappingNode {
		return eris.Errorf("model: expected mapping at line %d", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return eris.Wrapf(err, "model: decode value for %q", key)
		}
		m.Set(key, v)
	}
	return nil
}
