package scoped

import "encoding/json"

// Codec serializes values of type T to and from the byte slices the engine
// stores. Implementations must be deterministic: encoding the same value
// twice must yield the same bytes, since encoded keys participate in lookups
// and range comparisons.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// JSONCodec serializes values as JSON. It is the default codec used by the
// convenience constructors; supply your own Codec for a different encoding.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// BytesCodec passes byte slices through unmodified. Decoded slices alias
// engine-owned memory and are valid only until the transaction ends; copy
// them if retained longer.
type BytesCodec struct{}

func (BytesCodec) Encode(b []byte) ([]byte, error) {
	return b, nil
}

func (BytesCodec) Decode(data []byte) ([]byte, error) {
	return data, nil
}
