package document

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes a scalar as a string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		return json.Marshal(v.items)
	}
	s, _ := v.First()
	return json.Marshal(s)
}

// MarshalJSON encodes the record as an object whose keys keep insertion
// order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
