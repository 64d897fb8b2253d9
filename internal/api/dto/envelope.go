package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the outer {"data": ...} wrapper every POST body uses. The
// payload may be a JSON object or a string holding encoded JSON.
type Envelope struct {
	Data json.RawMessage `json:"data"`
}

// ErrMissingData reports an envelope without a usable data field.
var ErrMissingData = errors.New("data is required")

// DecodeData unmarshals the envelope payload into v.
func (e Envelope) DecodeData(v any) error {
	raw := bytes.TrimSpace(e.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ErrMissingData
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return fmt.Errorf("decode data string: %w", err)
		}
		raw = bytes.TrimSpace([]byte(encoded))
		if len(raw) == 0 {
			return ErrMissingData
		}
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
