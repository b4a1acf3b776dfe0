// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rowsource

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/tabula/lib/codec"
	"github.com/bureau-foundation/tabula/lib/record"
)

// Format is the encoding of a row file.
type Format uint8

const (
	FormatJSON Format = iota
	FormatJSONL
	FormatCBOR
)

func (format Format) String() string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", format)
	}
}

// FormatFromPath derives the format and compression from a file name.
// Unknown extensions are an error.
func FormatFromPath(path string) (Format, Compression, error) {
	compression, stripped := compressionFromPath(path)
	switch strings.ToLower(filepath.Ext(stripped)) {
	case ".json":
		return FormatJSON, compression, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, compression, nil
	case ".cbor":
		return FormatCBOR, compression, nil
	default:
		return 0, 0, fmt.Errorf("%s: unrecognized row file extension (want .json, .jsonl or .cbor, optionally .zst or .lz4)", path)
	}
}

// ReadFile reads a row file, picking format and compression from its
// name.
func ReadFile(path string) ([]record.Row, error) {
	format, compression, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	data, err = Decompress(data, compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// WriteFile writes rows to path in the format and compression its
// name calls for.
func WriteFile(path string, rows []record.Row) error {
	format, compression, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	if err := Encode(&buffer, rows, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	data, err := Compress(buffer.Bytes(), compression)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Decode parses uncompressed row data. JSON numbers decode as
// json.Number so large integer ids keep their digits.
func Decode(data []byte, format Format) ([]record.Row, error) {
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		var decoded any
		if err := decoder.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("decoding JSON rows: %w", err)
		}
		rows, ok := record.FromValue(decoded)
		if !ok {
			return nil, fmt.Errorf("%w: top-level JSON value is %T", codec.ErrNotCollection, decoded)
		}
		return rows, nil

	case FormatJSONL:
		return decodeLines(data)

	case FormatCBOR:
		return codec.DecodeRows(data)

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func decodeLines(data []byte) ([]record.Row, error) {
	var rows []record.Row
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		decoder := json.NewDecoder(bytes.NewReader(text))
		decoder.UseNumber()
		var row map[string]any
		if err := decoder.Decode(&row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			return nil, fmt.Errorf("line %d: %w", line, errors.New("null is not a row"))
		}
		rows = append(rows, record.Row(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	if rows == nil {
		rows = []record.Row{}
	}
	return rows, nil
}

// Encode writes rows in the given format.
func Encode(w io.Writer, rows []record.Row, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if rows == nil {
			rows = []record.Row{}
		}
		return encoder.Encode(rows)

	case FormatJSONL:
		encoder := json.NewEncoder(w)
		for index, row := range rows {
			if err := encoder.Encode(row); err != nil {
				return fmt.Errorf("row %d: %w", index, err)
			}
		}
		return nil

	case FormatCBOR:
		return codec.EncodeRows(w, rows)

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// DatasetName names the rows in path after the file, without its
// format and compression extensions: "data/quotes.jsonl.zst" returns
// "quotes".
func DatasetName(path string) string {
	_, stripped := compressionFromPath(filepath.Base(path))
	return strings.TrimSuffix(stripped, filepath.Ext(stripped))
}
