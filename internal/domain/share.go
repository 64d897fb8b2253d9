package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Immutable, identifier-addressed copy of a computed result set.
// Places is the client's JSON array exactly as submitted; ID and CreatedAt
// are storage metadata and never part of it.
type ShareSnapshot struct {
	ID        string
	Places    json.RawMessage
	CreatedAt time.Time
}

// EmptyPlaceList is stored when a client shares no places.
var EmptyPlaceList = json.RawMessage(`[]`)

// NormalizePlaceList checks that raw is a JSON array and returns a private
// copy of it. Absent or null input becomes an empty array. Elements are not
// interpreted.
func NormalizePlaceList(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return append(json.RawMessage(nil), EmptyPlaceList...), nil
	}
	if trimmed[0] != '[' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: place list must be a JSON array", ErrInvalidInput)
	}
	return append(json.RawMessage(nil), trimmed...), nil
}
