package details

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Map is an insertion-ordered mapping decoded from a source document.
//
// Values are one of *Map, []any, string, bool, a number, nil, or (after
// normalization) a [Param]. Key order follows the source document and is
// preserved by every transformation in this package.
type Map struct {
	values map[string]any
	keys   []string
}

// NewMap returns an empty [Map].
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)

	return ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Map returns the nested [Map] stored under key, or nil.
func (m *Map) Map(key string) *Map {
	v, _ := m.Get(key)
	nested, _ := v.(*Map)

	return nested
}

// String returns the string stored under key.
func (m *Map) String(key string) (string, bool) {
	v, _ := m.Get(key)
	s, ok := v.(string)

	return s, ok
}

// Strings returns the string elements of the list stored under key.
// Non-string elements are skipped.
func (m *Map) Strings(key string) []string {
	v, _ := m.Get(key)

	return toStrings(v)
}

// Clone returns a deep copy of m. Nested maps and lists are never shared
// with the receiver.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	c := &Map{
		values: make(map[string]any, len(m.values)),
		keys:   slices.Clone(m.keys),
	}
	for k, v := range m.values {
		c.values[k] = cloneValue(v)
	}

	return c
}

// Plain converts m into the generic form produced by [encoding/json]:
// map[string]any, []any, string, bool, float64 and nil.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plainValue(m.values[k])
	}

	return out
}

// MarshalJSON encodes m as a JSON object, keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// jsonString renders m for error messages.
func jsonString(m *Map) string {
	b, err := json.Marshal(m)
	if err != nil {
		return "<unprintable>"
	}

	return string(b)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}

		return out
	case Param:
		return t.clone()
	}

	return v
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Plain()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}

		return out
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}

		return f
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	}

	return v
}

func toStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// appendStrings appends values to the list stored under key, creating the
// list when absent.
func appendStrings(m *Map, key string, values ...string) {
	v, _ := m.Get(key)
	list, _ := v.([]any)

	if list == nil {
		list = make([]any, 0, len(values))
	}

	for _, s := range values {
		list = append(list, s)
	}

	m.Set(key, list)
}
