package handlers

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Nullable is a JSON field that distinguishes "absent" from "null".
// Set is true whenever the field appeared in the body, null included.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a field that was sent with value v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a field that was sent as an explicit null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// nullableValue lets the validator check the wrapped value. Null and absent
// fields validate as empty.
func nullableValue[T any](field reflect.Value) any {
	n := field.Interface().(Nullable[T])
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
