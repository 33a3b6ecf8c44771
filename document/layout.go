package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

const (
	// DirName is the documentation folder at the project root.
	DirName = "documentary"
	// FragmentsDir is the fragment folder inside a template's documentation
	// directory.
	FragmentsDir = "fragments"
)

// Source document names inside a template's documentation directory.
const (
	SourceDeclaration = "declaration"
	SourceDecorations = "decorations"
	SourceDefinitions = "definitions"
)

var sourceExtensions = []string{".json", ".jsonc", ".yaml", ".yml"}

// Template is a documented template file of a project.
type Template struct {
	// Name is the template path relative to the project root, slash
	// separated.
	Name string
	// Path is the template file.
	Path string
	// Dir is the documentation directory of the template.
	Dir string
}

// Source returns the path of the named source document. The first existing
// file among the supported extensions wins; when none exists the JSON path
// is returned, which loads as an empty source.
func (t *Template) Source(name string) string {
	for _, ext := range sourceExtensions {
		p := filepath.Join(t.Dir, name+ext)

		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p
		}
	}

	return filepath.Join(t.Dir, name+sourceExtensions[0])
}

// Resolve locates template within the project at root and its
// documentation directory.
func Resolve(root, template string) (*Template, error) {
	docs, err := documentaryDir(root)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, template)
	if !exists(path) {
		return nil, fmt.Errorf("%w: tried to document file %q, but it doesn't exist", ErrTemplateNotFound, path)
	}

	dir := filepath.Join(docs, template)
	if !exists(dir) {
		return nil, fmt.Errorf("%w: directory %q is missing in documentary folder",
			ErrNotDocumented, filepath.Clean(template))
	}

	return &Template{
		Name: filepath.ToSlash(filepath.Clean(template)),
		Path: path,
		Dir:  dir,
	}, nil
}

// Discover lists the documented templates under folder, sorted by name. A
// folder naming a file yields that file alone. A template is documented
// when the documentary folder holds a directory at the same relative path.
func Discover(root, folder string) ([]string, error) {
	docs, err := documentaryDir(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filepath.Join(root, folder))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: file/folder %q does not exist", ErrTemplateNotFound, folder)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	}

	if !info.IsDir() {
		return []string{filepath.ToSlash(filepath.Clean(folder))}, nil
	}

	parent := filepath.Join(docs, folder)
	if !isDir(parent) {
		return nil, fmt.Errorf("%w: file/folder %q is not documented", ErrNotDocumented, folder)
	}

	var templates []string

	err = filepath.WalkDir(parent, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(docs, p)
		if err != nil {
			return err
		}

		if isFile(filepath.Join(root, rel)) {
			templates = append(templates, filepath.ToSlash(rel))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", folder, err)
	}

	slices.Sort(templates)

	return templates, nil
}

func documentaryDir(root string) (string, error) {
	docs := filepath.Join(root, DirName)
	if !isDir(docs) {
		return "", fmt.Errorf("%w: to generate documentation, navigate to a directory with %q folder",
			ErrNoDocumentary, DirName)
	}

	return docs, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
