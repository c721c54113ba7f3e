package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent PATCH field from an explicit null (RFC 7396).
// encoding/json only calls UnmarshalJSON for keys that are present, so the
// zero value means "leave unchanged".
type Optional[T any] struct {
	Present bool
	Value   *T // nil when the field was null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
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

// OptionalString is the common case for nullable text columns
type OptionalString = Optional[string]
