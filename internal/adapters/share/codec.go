package share

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"venue-finder-service/internal/domain"
)

// ErrDuplicateID is returned when a snapshot id is already taken.
var ErrDuplicateID = errors.New("share snapshot id already exists")

// prepare validates s and returns it with Places normalized to a JSON array.
func prepare(s domain.ShareSnapshot) (domain.ShareSnapshot, error) {
	if strings.TrimSpace(s.ID) == "" {
		return domain.ShareSnapshot{}, errors.New("share snapshot: id must be non-empty")
	}
	places, err := domain.NormalizePlaceList(s.Places)
	if err != nil {
		return domain.ShareSnapshot{}, fmt.Errorf("share snapshot %q: %w", s.ID, err)
	}
	s.Places = places
	return s, nil
}

// encode frames a snapshot as "<created_at RFC3339Nano>\n<places>". The
// places bytes are written untouched so loads return exactly what was saved.
func encode(s domain.ShareSnapshot) []byte {
	ts := s.CreatedAt.UTC().Format(time.RFC3339Nano)
	b := make([]byte, 0, len(ts)+1+len(s.Places))
	b = append(b, ts...)
	b = append(b, '\n')
	return append(b, s.Places...)
}

func decode(id string, b []byte) (domain.ShareSnapshot, error) {
	header, places, ok := bytes.Cut(b, []byte{'\n'})
	if !ok {
		return domain.ShareSnapshot{}, fmt.Errorf("decode snapshot %q: missing header", id)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, string(header))
	if err != nil {
		return domain.ShareSnapshot{}, fmt.Errorf("decode snapshot %q: created_at: %w", id, err)
	}
	return domain.ShareSnapshot{
		ID:        id,
		Places:    append([]byte(nil), places...),
		CreatedAt: createdAt,
	}, nil
}
