package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cocktail-popularity/models"
)

// JSONWriter writes the popularity entries as an indented JSON array.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write replaces the output file. The data goes to a temp file in the same
// directory first, so a failed write leaves any previous output intact.
func (w *JSONWriter) Write(entries []models.PopularityEntry) error {
	data, err := EncodePopularity(entries)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("json: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("json: write %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("json: close %q: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("json: chmod %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("json: replace %q: %w", w.path, err)
	}
	return nil
}

// EncodePopularity renders entries with two-space indentation, keeping
// non-ASCII and HTML characters literal, U+2028 and U+2029 included.
// A nil slice encodes as []. There is no trailing newline.
func EncodePopularity(entries []models.PopularityEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.PopularityEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("json: encode: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into the raw characters. An escaped backslash followed
// by "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		switch esc := data[i+1:]; {
		case bytes.HasPrefix(esc, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += len("u2028")
		case bytes.HasPrefix(esc, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += len("u2029")
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}
