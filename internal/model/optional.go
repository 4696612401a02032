package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that tells an absent key apart from an explicit
// null. Set is true whenever the key was present in the body; Value is nil
// for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some sets the field to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsZero lets `omitzero` drop fields that were never set.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// UnmarshalJSON вызывается только для ключей, которые есть в теле, в том числе для null
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// applyPtr writes into a nullable field; null stores nil.
func (o Optional[T]) applyPtr(dst **T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}

// applyValue writes into a value field; null stores the zero value.
func (o Optional[T]) applyValue(dst *T) {
	if !o.Set {
		return
	}
	var v T
	if o.Value != nil {
		v = *o.Value
	}
	*dst = v
}
