package details

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"
)

// Format identifies the syntax of a source document.
type Format string

const (
	// FormatJSON is JSON extended with comments and trailing commas (JSONC).
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the [Format] implied by the file extension of path.
// Unknown extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}

	return FormatJSON
}

// Decode parses a source document into an ordered [Map].
//
// Blank input decodes to an empty map. A document whose top level is not a
// mapping fails with [ErrSchemaValidation].
func Decode(data []byte, format Format) (*Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMap(), nil
	}

	var (
		v   any
		err error
	)

	switch format {
	case FormatYAML:
		v, err = decodeYAML(data)
	default:
		v, err = decodeJSON(jsonc.ToJSON(data))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if v == nil {
		return NewMap(), nil
	}

	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping, got %T", ErrSchemaValidation, v)
	}

	return m, nil
}

// ReadFile reads and decodes the source document at path. A missing file
// is an empty source.
func ReadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Source paths come from the project layout.
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("source not found, using empty source", slog.String("path", path))

		return NewMap(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	m, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any

	err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap())
	if err != nil {
		return nil, err
	}

	return fromYAML(v), nil
}

// fromYAML converts the ordered YAML representation into [Map] values.
func fromYAML(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := NewMap()
		for _, item := range t {
			m.Set(fmt.Sprint(item.Key), fromYAML(item.Value))
		}

		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromYAML(item)
		}

		return out
	}

	return v
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := NewMap()

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}

			value, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}

			m.Set(key, value)
		}

		_, err = dec.Token()

		return m, err

	case '[':
		list := []any{}

		for dec.More() {
			value, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}

			list = append(list, value)
		}

		_, err = dec.Token()

		return list, err
	}

	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}
