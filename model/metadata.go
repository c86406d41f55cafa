package model

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Metadata is an ordered string-to-string mapping with unique keys and
// last-write-wins semantics, used for free-form suite metadata. Insertion
// order is preserved through map and JSON serialization.
type Metadata struct {
	items *orderedmap.OrderedMap[string, string]
}

// NewMetadata creates an empty metadata mapping.
func NewMetadata() *Metadata {
	return &Metadata{items: orderedmap.New[string, string]()}
}

// Set stores a value under the given key. Re-setting an existing key keeps
// its original position.
func (m *Metadata) Set(name, value string) {
	m.items.Set(name, value)
}

// Get returns the value stored under the given key.
func (m *Metadata) Get(name string) (string, bool) {
	return m.items.Get(name)
}

// Delete removes the given key.
func (m *Metadata) Delete(name string) {
	m.items.Delete(name)
}

// Len returns the number of stored items.
func (m *Metadata) Len() int {
	return m.items.Len()
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	keys := make([]string, 0, m.items.Len())
	for pair := m.items.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ToMap serializes the metadata into a plain map. Ordering is kept for XML
// sourced data through Keys; plain map consumers see an unordered view.
func (m *Metadata) ToMap() map[string]any {
	out := make(map[string]any, m.items.Len())
	for pair := m.items.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// DeepCopy returns an independent copy of the metadata.
func (m *Metadata) DeepCopy() *Metadata {
	out := NewMetadata()
	for pair := m.items.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// MarshalJSON serializes the metadata as a JSON object in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	return m.items.MarshalJSON()
}

// UnmarshalJSON loads the metadata from a JSON object, preserving the
// document order of its keys.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if m.items == nil {
		m.items = orderedmap.New[string, string]()
	}
	return m.items.UnmarshalJSON(data)
}

// String returns the metadata in "{k1: v1, k2: v2}" form.
func (m *Metadata) String() string {
	var b strings.Builder
	b.WriteString("{")
	for pair := m.items.Oldest(); pair != nil; pair = pair.Next() {
		if pair != m.items.Oldest() {
			b.WriteString(", ")
		}
		b.WriteString(pair.Key)
		b.WriteString(": ")
		b.WriteString(pair.Value)
	}
	b.WriteString("}")
	return b.String()
}
