// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/tabula/lib/record"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode decodes standard CBOR. Unknown fields are ignored.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Rows are map[string]any. The CBOR default for any-typed
		// maps is map[interface{}]interface{}, which nothing in the
		// engine can resolve field paths through.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// ErrNotCollection is returned when a value does not normalize to a
// collection of records.
var ErrNotCollection = errors.New("value is not a collection of records")

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns a CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Rows normalizes value into rows. Collections the record package
// already understands are returned directly. Anything else (a slice
// of structs, a slice of pointers) is encoded and decoded back into
// generic maps, so struct fields appear under their json or cbor tag
// names. Values that are not collections return ErrNotCollection.
func Rows(value any) ([]record.Row, error) {
	if rows, ok := record.FromValue(value); ok {
		return rows, nil
	}
	if value == nil {
		return nil, ErrNotCollection
	}
	kind := reflect.TypeOf(value).Kind()
	if kind != reflect.Slice && kind != reflect.Array {
		return nil, fmt.Errorf("%w: got %T", ErrNotCollection, value)
	}

	data, err := Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", value, err)
	}
	return DecodeRows(data)
}

// DecodeRows decodes a CBOR array of maps into rows.
func DecodeRows(data []byte) ([]record.Row, error) {
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	rows, ok := record.FromValue(decoded)
	if !ok {
		return nil, fmt.Errorf("%w: top-level CBOR item is %T", ErrNotCollection, decoded)
	}
	return rows, nil
}

// EncodeRows writes rows as a single CBOR array.
func EncodeRows(w io.Writer, rows []record.Row) error {
	plain := make([]map[string]any, len(rows))
	for index, row := range rows {
		plain[index] = row
	}
	if err := NewEncoder(w).Encode(plain); err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	return nil
}
