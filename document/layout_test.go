package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/documentary/document"
)

// store writes each file below root, creating parent directories. Names
// ending in a slash create empty directories.
func store(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))

		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		files   map[string]string
		err     error
		message string
	}{
		"documented": {
			files: map[string]string{
				"src/preg.php":              "<?php",
				"documentary/src/preg.php/": "",
			},
		},
		"missing documentary": {
			files: map[string]string{
				"src/preg.php": "<?php",
			},
			err:     document.ErrNoDocumentary,
			message: `navigate to a directory with "documentary" folder`,
		},
		"missing template": {
			files: map[string]string{
				"documentary/": "",
			},
			err:     document.ErrTemplateNotFound,
			message: "but it doesn't exist",
		},
		"missing documentation": {
			files: map[string]string{
				"src/preg.php": "<?php",
				"documentary/": "",
			},
			err:     document.ErrNotDocumented,
			message: `directory "src/preg.php" is missing in documentary folder`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			store(t, root, tc.files)

			got, err := document.Resolve(root, "src/preg.php")
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.ErrorContains(t, err, tc.message)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "src/preg.php", got.Name)
			assert.Equal(t, filepath.Join(root, "src", "preg.php"), got.Path)
			assert.Equal(t, filepath.Join(root, "documentary", "src", "preg.php"), got.Dir)
		})
	}
}

func TestTemplateSource(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store(t, root, map[string]string{
		"src/a.php":                              "",
		"documentary/src/a.php/declaration.yaml": "{}",
		"documentary/src/a.php/definitions.json": "{}",
		"documentary/src/a.php/definitions.yml":  "{}",
	})

	tmpl, err := document.Resolve(root, "src/a.php")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpl.Dir, "declaration.yaml"), tmpl.Source(document.SourceDeclaration))
	assert.Equal(t, filepath.Join(tmpl.Dir, "definitions.json"), tmpl.Source(document.SourceDefinitions))
	assert.Equal(t, filepath.Join(tmpl.Dir, "decorations.json"), tmpl.Source(document.SourceDecorations))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store(t, root, map[string]string{
		"src/main/second.py":    "template file",
		"src/main/sub/first.py": "template file",
		"src/test/first.py":     "template file",
		"src/other/first.py":    "template file",

		"documentary/src/main/first.py/definitions.json":      "{}",
		"documentary/src/main/second.py/definitions.json":     "{}",
		"documentary/src/main/sub/first.py/definitions.json":  "{}",
		"documentary/src/main/sub/second.py/definitions.json": "{}",
		"documentary/src/test/first.py/definitions.json":      "{}",
		"documentary/src/test/second.py/definitions.json":     "{}",
	})

	tcs := map[string]struct {
		folder  string
		want    []string
		err     error
		message string
	}{
		"children": {
			folder: "src",
			want: []string{
				"src/main/second.py",
				"src/main/sub/first.py",
				"src/test/first.py",
			},
		},
		"nested folder": {
			folder: "src/main/sub",
			want:   []string{"src/main/sub/first.py"},
		},
		"file": {
			folder: "src/main/second.py",
			want:   []string{"src/main/second.py"},
		},
		"missing file": {
			folder:  "src/main/third.py",
			err:     document.ErrTemplateNotFound,
			message: `file/folder "src/main/third.py" does not exist`,
		},
		"undocumented folder": {
			folder:  "src/other",
			err:     document.ErrNotDocumented,
			message: `file/folder "src/other" is not documented`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := document.Discover(root, tc.folder)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.ErrorContains(t, err, tc.message)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDiscoverWithoutDocumentary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store(t, root, map[string]string{"src/file": "template"})

	_, err := document.Discover(root, "src")
	require.ErrorIs(t, err, document.ErrNoDocumentary)
}
