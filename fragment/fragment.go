// Package fragment reads fallback prose for rendered comments.
//
// Fragments are plain text files named after what they document:
//
//	<method>.param.<param>.html   the summary of one method's parameter
//	param.<param>.html            the summary of a parameter in any method
//	method.<method>.html          the definition of a method
//
// A [Store] looks for fragments in the template's own fragment directory
// first and then in the project-wide fragment directory.
package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

// ErrMissingFragment is returned when a required fragment does not exist.
var ErrMissingFragment = errors.New("missing fragment")

// DefaultProjectDir is the project-wide fragment directory, relative to the
// store's file system.
const DefaultProjectDir = "project/fragment"

// DefaultExtension is the file extension of fragments.
const DefaultExtension = ".html"

// Option configures a [Store].
type Option func(*Store)

// WithProjectDir sets the project-wide fragment directory. An empty
// directory disables the project lookup.
func WithProjectDir(dir string) Option {
	return func(s *Store) {
		s.projectDir = dir
	}
}

// WithExtension sets the file extension of fragments.
func WithExtension(ext string) Option {
	return func(s *Store) {
		s.extension = ext
	}
}

// WithStrictDefinitions controls whether a method without a definition
// requires a "method.<method>" fragment. Enabled by default; when disabled
// a missing fragment renders no definition.
func WithStrictDefinitions(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// Store is a read-only fragment store over an [fs.FS].
//
// Create instances with [NewStore].
type Store struct {
	fsys       fs.FS
	dir        string
	projectDir string
	extension  string
	strict     bool
}

// NewStore creates a [Store] reading fragments from dir within fsys.
func NewStore(fsys fs.FS, dir string, opts ...Option) *Store {
	s := &Store{
		fsys:       fsys,
		dir:        dir,
		projectDir: DefaultProjectDir,
		extension:  DefaultExtension,
		strict:     true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fallback returns the first fragment found among names, looking in the
// local directory and then in the project directory. It returns an empty
// string when none exists.
func (s *Store) Fallback(names ...string) (string, error) {
	for _, dir := range s.dirs() {
		for _, name := range names {
			text, ok, err := s.read(dir, name)
			if err != nil {
				return "", err
			}

			if ok {
				return text, nil
			}
		}
	}

	slog.Debug("no fragment found", slog.Any("names", names))

	return "", nil
}

// Fragment is like [Store.Fallback], but fails with [ErrMissingFragment]
// when none of names exists.
func (s *Store) Fragment(names ...string) (string, error) {
	for _, dir := range s.dirs() {
		for _, name := range names {
			text, ok, err := s.read(dir, name)
			if err != nil {
				return "", err
			}

			if ok {
				return text, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s%s", ErrMissingFragment, path.Join(s.dir, names[0]), s.extension)
}

// ParamFallback returns the summary of param in method. It implements
// comment.ParamFallback.
func (s *Store) ParamFallback(method, param string) (string, error) {
	return s.Fallback(method+".param."+param, "param."+param)
}

// DefinitionFallback returns the definition of method. It implements
// comment.DefinitionFallback.
func (s *Store) DefinitionFallback(method string) (string, error) {
	if s.strict {
		return s.Fragment("method." + method)
	}

	return s.Fallback("method." + method)
}

func (s *Store) dirs() []string {
	if s.projectDir == "" || s.projectDir == s.dir {
		return []string{s.dir}
	}

	return []string{s.dir, s.projectDir}
}

func (s *Store) read(dir, name string) (string, bool, error) {
	p := path.Join(dir, name+s.extension)

	data, err := fs.ReadFile(s.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("read fragment %s: %w", p, err)
	}

	slog.Debug("fragment found", slog.String("path", p))

	return string(data), true, nil
}
