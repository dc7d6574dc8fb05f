package service

import (
	"bytes"
	"encoding/json"
)

// JSONObject is a JSON object that preserves key insertion order. Response
// field order must follow selection source order, so the engine cannot use a
// plain map for accumulated values, argument objects, or object literals.
// Overwriting an existing key keeps its original position.
type JSONObject struct {
	keys   []string
	values map[string]any
}

func NewJSONObject() *JSONObject {
	return &JSONObject{values: make(map[string]any)}
}

func (o *JSONObject) Set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *JSONObject) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *JSONObject) Keys() []string { return o.keys }

func (o *JSONObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
