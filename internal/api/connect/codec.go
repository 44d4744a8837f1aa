package connect

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Codec encodes plain Go message structs as JSON.
// It is registered under "json" and replaces the protobuf JSON codec.
type Codec struct{}

// Name returns the codec name used in the content type.
func (Codec) Name() string {
	return "json"
}

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	return data, nil
}

// Unmarshal decodes data into v. Unknown fields are rejected.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "failed to unmarshal message")
	}
	return nil
}
