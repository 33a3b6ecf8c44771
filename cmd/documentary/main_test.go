package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/documentary/document"
)

const pregTemplate = "<?php\n    /** {@documentary:quote} */\n    function quote() {}\n"

func project(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"src/preg.php":                              pregTemplate,
		"documentary/src/preg.php/declaration.json": `{"quote": {"param": {"string": "string"}, "return-type": "string"}}`,
		"documentary/src/preg.php/definitions.json": `{"quote": {"definition": "Quotes a string", "return": "the quoted string"}}`,
	}

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestDocument(t *testing.T) {
	t.Parallel()

	root := project(t)
	path := filepath.Join(root, "src", "preg.php")

	out, err := execute(t, root, "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "File \""+path+"\" documented\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "     * @param string $string\n")

	out, err = execute(t, root, "--color", "never", "--check")
	require.NoError(t, err)
	assert.Equal(t, "File \""+path+"\" up to date\n", out)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	root := project(t)
	path := filepath.Join(root, "src", "preg.php")

	out, err := execute(t, root, "--color", "never", "--check")
	require.ErrorIs(t, err, ErrOutdated)
	assert.Equal(t, "File \""+path+"\" is not up to date\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pregTemplate, string(data))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	root := project(t)

	out, err := execute(t, root, "--diff", "--template", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "--- src/preg.php\n")
	assert.Contains(t, out, "-    /** {@documentary:quote} */\n")
}

func TestProjectFile(t *testing.T) {
	t.Parallel()

	root := project(t)
	out := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, document.ConfigFile),
		[]byte("output = \""+filepath.ToSlash(out)+"\"\ninclude-template-tag = false\n"), 0o644))

	_, err := execute(t, root, "--color", "never")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "src", "preg.php"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "{@documentary:quote}")
	assert.Contains(t, string(data), "     * Quotes a string.\n")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
		err  error
	}{
		"no documentary": {
			args: []string{"--color", "never"},
			err:  document.ErrNoDocumentary,
		},
		"invalid color": {
			args: []string{"--color", "rainbow"},
			err:  ErrInvalidColor,
		},
		"invalid style": {
			args: []string{"--style", "rst"},
			err:  document.ErrInvalidConfig,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{t.TempDir()}, tc.args...)

			_, err := execute(t, args...)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDetails(t *testing.T) {
	t.Parallel()

	root := project(t)

	out, err := execute(t, "details", root, "--template", "src/preg.php")
	require.NoError(t, err)

	var got map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Contains(t, got, "quote")

	quote, ok := got["quote"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "quote", quote["name"])
	assert.Equal(t, "Quotes a string", quote["definition"])
}
