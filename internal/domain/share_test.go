package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizePlaceList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absent", ``, `[]`},
		{"null", `null`, `[]`},
		{"empty", ` [] `, `[]`},
		{"unknown fields kept", `[{"name":"X","lat":"51.5","extra":"kept"}]`, `[{"name":"X","lat":"51.5","extra":"kept"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePlaceList(json.RawMessage(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizePlaceListRejectsNonArrays(t *testing.T) {
	for _, in := range []string{`{"name":"X"}`, `"places"`, `42`, `[{"name":`} {
		if _, err := NormalizePlaceList(json.RawMessage(in)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestNormalizePlaceListCopies(t *testing.T) {
	in := json.RawMessage(`[1]`)
	got, err := NormalizePlaceList(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in[1] = '2'
	if string(got) != `[1]` {
		t.Fatalf("result aliases input: %s", got)
	}
}
