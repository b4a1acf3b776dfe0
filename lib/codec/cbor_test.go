// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/tabula/lib/record"
)

type vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model,omitempty"`
}

type quote struct {
	ID      string    `json:"id"`
	Amount  float64   `json:"amount"`
	Count   int       `json:"count"`
	Vehicle vehicle   `json:"vehicle_info"`
	Created time.Time `json:"created_at"`
	Note    string    `json:"note,omitempty"`
}

func TestRowsFromStructSlice(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	rows, err := Rows([]quote{
		{ID: "q-1", Amount: 1200.5, Count: 3, Vehicle: vehicle{Make: "Volvo"}, Created: created},
		{ID: "q-2", Amount: 80, Count: 1, Vehicle: vehicle{Make: "Saab", Model: "900"}},
	})
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.ID() != "q-1" {
		t.Errorf("ID = %q", first.ID())
	}
	if got := first.Get("vehicle_info.make"); got != "Volvo" {
		t.Errorf("vehicle_info.make = %v", got)
	}
	if amount, ok := record.Number(first.Get("amount")); !ok || amount != 1200.5 {
		t.Errorf("amount = %v (%T)", first.Get("amount"), first.Get("amount"))
	}
	if count, ok := record.Number(first.Get("count")); !ok || count != 3 {
		t.Errorf("count = %v (%T)", first.Get("count"), first.Get("count"))
	}
	if got := first.Get("created_at"); got != "2026-03-01T09:30:00Z" {
		t.Errorf("created_at = %v", got)
	}
	if _, present := first.Lookup("note"); present {
		t.Error("omitempty field present")
	}
	if got := rows[1].Get("vehicle_info.model"); got != "900" {
		t.Errorf("second row model = %v", got)
	}
}

func TestRowsPassesThroughRecordShapes(t *testing.T) {
	input := []record.Row{{"id": "a"}}
	rows, err := Rows(input)
	if err != nil || len(rows) != 1 || rows[0].ID() != "a" {
		t.Fatalf("Rows(rows) = %v, %v", rows, err)
	}
}

func TestRowsRejectsNonCollections(t *testing.T) {
	for _, value := range []any{nil, "rows", 42, quote{ID: "single"}} {
		if _, err := Rows(value); !errors.Is(err, ErrNotCollection) {
			t.Errorf("Rows(%T) error = %v, want ErrNotCollection", value, err)
		}
	}
}

func TestEncodeDecodeRows(t *testing.T) {
	rows := []record.Row{
		{"id": "1", "name": "Acme", "tags": []any{"a", "b"}},
		{"id": "2", "name": "Zeta", "owner": map[string]any{"name": "Ada"}},
	}

	var buffer bytes.Buffer
	if err := EncodeRows(&buffer, rows); err != nil {
		t.Fatalf("EncodeRows: %v", err)
	}
	decoded, err := DecodeRows(buffer.Bytes())
	if err != nil {
		t.Fatalf("DecodeRows: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Get("owner.name") != "Ada" || decoded[0].Get("tags.1") != "b" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestEncodeRowsDeterministic(t *testing.T) {
	rows := []record.Row{{"b": 2, "a": 1, "id": "x"}}
	var first, second bytes.Buffer
	if err := EncodeRows(&first, rows); err != nil {
		t.Fatal(err)
	}
	if err := EncodeRows(&second, rows); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("encoding not deterministic: %x != %x", first.Bytes(), second.Bytes())
	}
}

func TestDecodeRowsRejectsScalar(t *testing.T) {
	data, err := Marshal("just a string")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeRows(data); !errors.Is(err, ErrNotCollection) {
		t.Errorf("DecodeRows(scalar) error = %v", err)
	}
}
