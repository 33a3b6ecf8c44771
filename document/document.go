package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.jacobcolvin.com/documentary/comment"
	"go.jacobcolvin.com/documentary/details"
	"go.jacobcolvin.com/documentary/fragment"
	"go.jacobcolvin.com/documentary/template"
)

// MethodPlaceholder is replaced with the method name in a method format.
const MethodPlaceholder = "{method}"

// Mode selects what [Documenter.Document] does with a compiled template.
type Mode string

const (
	// ModeWrite writes changed templates.
	ModeWrite Mode = "write"
	// ModeCheck only reports whether templates would change.
	ModeCheck Mode = "check"
	// ModeDiff reports the changes as a diff without writing.
	ModeDiff Mode = "diff"
)

// Option configures a [Documenter].
type Option func(*Documenter)

// WithOutput sets the directory documented templates are written to. By
// default templates are rewritten in place.
func WithOutput(dir string) Option {
	return func(d *Documenter) {
		d.output = dir
	}
}

// WithStyle sets the markup style of rendered comments.
func WithStyle(s comment.Style) Option {
	return func(d *Documenter) {
		d.style = s
	}
}

// WithMethodFormat sets how documented methods are referenced in @see
// lines. [MethodPlaceholder] is replaced with the method name; methods that
// are not documented keep their name as written.
func WithMethodFormat(format string) Option {
	return func(d *Documenter) {
		d.methodFormat = format
	}
}

// WithTemplateTag controls whether rendered comments keep their marker.
// Enabled by default.
func WithTemplateTag(include bool) Option {
	return func(d *Documenter) {
		d.includeTag = include
	}
}

// WithStrictDefinitions controls whether methods without a definition
// require a definition fragment. Enabled by default.
func WithStrictDefinitions(strict bool) Option {
	return func(d *Documenter) {
		d.strict = strict
	}
}

// WithFragmentExtension sets the file extension of fragments.
func WithFragmentExtension(ext string) Option {
	return func(d *Documenter) {
		d.fragmentExt = ext
	}
}

// WithMode sets the [Mode]. The default is [ModeWrite].
func WithMode(m Mode) Option {
	return func(d *Documenter) {
		d.mode = m
	}
}

// Documenter documents the templates of one project.
//
// Create instances with [NewDocumenter].
type Documenter struct {
	style        comment.Style
	root         string
	output       string
	methodFormat string
	fragmentExt  string
	mode         Mode
	includeTag   bool
	strict       bool
}

// NewDocumenter creates a [Documenter] for the project at root.
func NewDocumenter(root string, opts ...Option) *Documenter {
	d := &Documenter{
		root:         root,
		output:       root,
		style:        comment.Markdown{},
		methodFormat: MethodPlaceholder,
		fragmentExt:  fragment.DefaultExtension,
		mode:         ModeWrite,
		includeTag:   true,
		strict:       true,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Outcome describes one documented template.
type Outcome struct {
	// Template is the template name relative to the project root.
	Template string
	// Path is the template file that was read.
	Path string
	// Output is the file the documented template belongs in.
	Output string
	// Diff is the change as a line diff, set in [ModeDiff].
	Diff string
	// Rendered lists the methods whose comments were rendered.
	Rendered []string
	// Skipped lists the markers naming undocumented methods.
	Skipped []string
	// Changed reports whether Output differs from the documented template.
	Changed bool
	// Written reports whether Output was written.
	Written bool
}

// DocumentAll documents every template discovered under folder, in order.
// It stops at the first failing template.
func (d *Documenter) DocumentAll(ctx context.Context, folder string) ([]*Outcome, error) {
	names, err := Discover(d.root, folder)
	if err != nil {
		return nil, err
	}

	outcomes := make([]*Outcome, 0, len(names))

	for _, name := range names {
		o, err := d.Document(ctx, name)
		if err != nil {
			return outcomes, err
		}

		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

// Document compiles the template called name with its details and, in
// [ModeWrite], writes it when its output changes. A template is written
// whole or not at all.
func (d *Documenter) Document(ctx context.Context, name string) (*Outcome, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	t, err := Resolve(d.root, name)
	if err != nil {
		return nil, err
	}

	det, err := details.Load(
		t.Source(SourceDeclaration),
		t.Source(SourceDecorations),
		t.Source(SourceDefinitions),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}

	content, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", details.ErrReadInput, err)
	}

	result, err := d.compiler(t, det).Compile(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}

	o := &Outcome{
		Template: t.Name,
		Path:     t.Path,
		Output:   filepath.Join(d.output, filepath.FromSlash(t.Name)),
		Rendered: result.Rendered,
		Skipped:  result.Skipped,
	}

	current := string(content)
	if o.Output != t.Path {
		current, err = readOptional(o.Output)
		if err != nil {
			return nil, err
		}
	}

	o.Changed = current != result.Content

	switch d.mode {
	case ModeCheck:
	case ModeDiff:
		o.Diff = Diff(t.Name, current, result.Content)

	default:
		if o.Changed {
			err := writeFile(o.Output, result.Content)
			if err != nil {
				return nil, err
			}

			o.Written = true

			slog.Debug("template documented",
				slog.String("template", t.Name),
				slog.String("output", o.Output),
			)
		}
	}

	return o, nil
}

func (d *Documenter) compiler(t *Template, det *details.Details) *template.Compiler {
	store := fragment.NewStore(
		os.DirFS(filepath.Join(d.root, DirName)),
		path.Join(t.Name, FragmentsDir),
		fragment.WithExtension(d.fragmentExt),
		fragment.WithStrictDefinitions(d.strict),
	)

	renderer := comment.NewRenderer(
		comment.WithStyle(d.style),
		comment.WithMethodFormatter(methodFormatter(d.methodFormat, det)),
		comment.WithParamFallback(store),
		comment.WithDefinitionFallback(store),
	)

	return template.NewCompiler(det, renderer, template.WithTemplateTag(d.includeTag))
}

func methodFormatter(format string, det *details.Details) comment.MethodFormatter {
	return comment.MethodFormatterFunc(func(name string) string {
		if format == "" || !det.Has(name) {
			return name
		}

		return strings.ReplaceAll(format, MethodPlaceholder, name)
	})
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Output paths come from the project layout.
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", details.ErrReadInput, err)
	}

	return string(data), nil
}

// writeFile replaces path with content through a temporary file in the same
// directory.
func writeFile(path, content string) error {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = tmp.WriteString(content)
	if err != nil {
		closeAndRemove(tmp)

		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	err = tmp.Chmod(0o644)
	if err != nil {
		closeAndRemove(tmp)

		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	err = tmp.Close()
	if err != nil {
		removeTemp(tmp.Name())

		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		removeTemp(tmp.Name())

		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	return nil
}

func closeAndRemove(f *os.File) {
	err := f.Close()
	if err != nil {
		slog.Debug("close temporary file", slog.String("path", f.Name()), slog.Any("error", err))
	}

	removeTemp(f.Name())
}

func removeTemp(name string) {
	err := os.Remove(name)
	if err != nil {
		slog.Debug("remove temporary file", slog.String("path", name), slog.Any("error", err))
	}
}
