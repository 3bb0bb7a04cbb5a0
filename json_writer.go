package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonFields is a JSON object written with its keys in insertion order.
type jsonFields []jsonField

type jsonField struct {
	key   string
	value any
}

// with returns f with key appended.
func (f jsonFields) with(key string, value any) jsonFields {
	return append(f, jsonField{key, value})
}

// withOptional is like with but skips zero values.
func (f jsonFields) withOptional(key string, value any) jsonFields {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return f
	}
	return f.with(key, value)
}

// MarshalJSON implements json.Marshaler.
func (f jsonFields) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, field := range f {
		value, err := json.Marshal(field.value)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal %q: %w", field.key, err)
		}
		key, _ := json.Marshal(field.key)
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
