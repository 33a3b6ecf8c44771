package details_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/documentary/details"
	"go.jacobcolvin.com/documentary/stringtest"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		format details.Format
		keys   []string
		json   string
	}{
		"empty": {
			input:  "",
			format: details.FormatJSON,
			json:   `{}`,
		},
		"blank yaml": {
			input:  "\n  \n",
			format: details.FormatYAML,
			json:   `{}`,
		},
		"json keeps key order": {
			input:  `{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": ["x", "y"]}`,
			format: details.FormatJSON,
			keys:   []string{"zeta", "alpha", "mid"},
			json:   `{"zeta":1,"alpha":{"b":true,"a":null},"mid":["x","y"]}`,
		},
		"jsonc comments and trailing commas": {
			input: stringtest.JoinLF(
				`{`,
				`  // line comment`,
				`  "second": "b", /* block */`,
				`  "first": ["a",],`,
				`}`,
			),
			format: details.FormatJSON,
			keys:   []string{"second", "first"},
			json:   `{"second":"b","first":["a"]}`,
		},
		"yaml keeps key order": {
			input: stringtest.Input(`
				split:
				  param:
				    subject: string
				    limit: [int, optional]
				match:
				  return-type: bool
			`),
			format: details.FormatYAML,
			keys:   []string{"split", "match"},
			json:   `{"split":{"param":{"subject":"string","limit":["int","optional"]}},"match":{"return-type":"bool"}}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := details.Decode([]byte(tc.input), tc.format)
			require.NoError(t, err)

			if tc.keys != nil {
				assert.Equal(t, tc.keys, got.Keys())
			}

			b, err := got.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tc.json, string(b))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		format details.Format
		err    error
	}{
		"malformed json": {
			input:  `{"a": `,
			format: details.FormatJSON,
			err:    details.ErrReadInput,
		},
		"trailing data": {
			input:  `{} {}`,
			format: details.FormatJSON,
			err:    details.ErrReadInput,
		},
		"top level list": {
			input:  `["a"]`,
			format: details.FormatJSON,
			err:    details.ErrSchemaValidation,
		},
		"top level scalar yaml": {
			input:  "just text",
			format: details.FormatYAML,
			err:    details.ErrSchemaValidation,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := details.Decode([]byte(tc.input), tc.format)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	missing, err := details.ReadFile(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, missing.Len())

	path := filepath.Join(dir, "declaration.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quote:\n  return-type: string\n"), 0o600))

	got, err := details.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"quote"}, got.Keys())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	_, err = details.ReadFile(bad)
	require.ErrorIs(t, err, details.ErrReadInput)
	assert.Contains(t, err.Error(), bad)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, details.FormatYAML, details.FormatFromPath("a/b.yaml"))
	assert.Equal(t, details.FormatYAML, details.FormatFromPath("a/b.YML"))
	assert.Equal(t, details.FormatJSON, details.FormatFromPath("a/b.json"))
	assert.Equal(t, details.FormatJSON, details.FormatFromPath("a/b.jsonc"))
}

func TestMapClone(t *testing.T) {
	t.Parallel()

	orig := mustDecode(t, `{"a": {"list": ["x"]}, "b": 1}`)
	clone := orig.Clone()

	clone.Map("a").Set("list", []any{"y"})
	clone.Set("c", true)
	clone.Delete("b")

	b, err := orig.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"list":["x"]},"b":1}`, string(b))
	assert.Equal(t, []string{"a", "c"}, clone.Keys())
}

func TestMapPlain(t *testing.T) {
	t.Parallel()

	m := mustDecode(t, `{"n": 2, "nested": {"list": [1.5, "s", null]}}`)

	assert.Equal(t, map[string]any{
		"n": float64(2),
		"nested": map[string]any{
			"list": []any{1.5, "s", nil},
		},
	}, m.Plain())
}
