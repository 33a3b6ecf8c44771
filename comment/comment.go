// Package comment renders canonical method details as doc block comments.
//
// A [Renderer] assembles the sections of a comment in a fixed order:
//
//   - the marker tag, when the caller keeps it;
//   - the definition, or the definition fallback when there is none;
//   - one @param line per parameter, followed by its fallback summary;
//   - the @return section;
//   - one @template line per generic parameter;
//   - @throws, @see and @link lines.
//
// Sections without text are dropped and the rest are separated by a blank
// line. Backtick-quoted words are then marked up with the renderer's
// [Style]: names of the method's parameters are emphasized, anything else is
// rendered as a strong literal.
//
// Text supplied by callbacks ([MethodFormatter], [ParamFallback] and
// [DefinitionFallback]) must be valid UTF-8 and must not contain the block
// comment closer; otherwise rendering fails with
// [ErrInvalidRendererOutput].
package comment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.jacobcolvin.com/documentary/details"
)

// Sentinel errors returned by [Renderer.Render] and the style registry.
var (
	ErrReturnArityMismatch   = errors.New("mismatched declaration and definition return types")
	ErrInvalidRendererOutput = errors.New("invalid renderer output")
	ErrInvalidOption         = errors.New("invalid option")
)

const (
	closer        = "*/"
	escapedCloser = `*\/`
)

var markupPattern = regexp.MustCompile("`([^`\n\r]+)`")

// MethodFormatter formats the name of a referenced method for @see lines.
type MethodFormatter interface {
	FormatMethod(name string) string
}

// ParamFallback supplies the summary of a parameter. An empty summary
// renders the bare @param line.
type ParamFallback interface {
	ParamFallback(method, param string) (string, error)
}

// DefinitionFallback supplies the definition of a method that has none.
type DefinitionFallback interface {
	DefinitionFallback(method string) (string, error)
}

// MethodFormatterFunc adapts a function to [MethodFormatter].
type MethodFormatterFunc func(name string) string

// FormatMethod implements [MethodFormatter].
func (f MethodFormatterFunc) FormatMethod(name string) string { return f(name) }

// ParamFallbackFunc adapts a function to [ParamFallback].
type ParamFallbackFunc func(method, param string) (string, error)

// ParamFallback implements [ParamFallback].
func (f ParamFallbackFunc) ParamFallback(method, param string) (string, error) {
	return f(method, param)
}

// DefinitionFallbackFunc adapts a function to [DefinitionFallback].
type DefinitionFallbackFunc func(method string) (string, error)

// DefinitionFallback implements [DefinitionFallback].
func (f DefinitionFallbackFunc) DefinitionFallback(method string) (string, error) {
	return f(method)
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithMethodFormatter sets the formatter for @see entries. By default names
// are used as they are.
func WithMethodFormatter(f MethodFormatter) Option {
	return func(r *Renderer) {
		r.formatter = f
	}
}

// WithParamFallback sets the source of parameter summaries. By default
// parameters have no summary.
func WithParamFallback(f ParamFallback) Option {
	return func(r *Renderer) {
		r.paramFallback = f
	}
}

// WithDefinitionFallback sets the source of definitions for methods without
// one. By default such methods have no definition section.
func WithDefinitionFallback(f DefinitionFallback) Option {
	return func(r *Renderer) {
		r.definitionFallback = f
	}
}

// WithStyle sets the markup [Style]. The default is [Markdown].
func WithStyle(s Style) Option {
	return func(r *Renderer) {
		r.style = s
	}
}

// Renderer renders [details.Detail] values as comments.
//
// Create instances with [NewRenderer].
type Renderer struct {
	formatter          MethodFormatter
	paramFallback      ParamFallback
	definitionFallback DefinitionFallback
	style              Style
}

// NewRenderer creates a new [Renderer].
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		formatter: MethodFormatterFunc(func(name string) string { return name }),
		paramFallback: ParamFallbackFunc(func(string, string) (string, error) {
			return "", nil
		}),
		definitionFallback: DefinitionFallbackFunc(func(string) (string, error) {
			return "", nil
		}),
		style: Markdown{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render renders detail as a comment indented by indent spaces. A non-empty
// tag is kept as the first line of the comment. A return type without
// return prose renders as a bare "@return <type>" line.
//
// Source prose containing the comment closer fails with
// [details.ErrSchemaValidation].
func (r *Renderer) Render(detail *details.Detail, tag string, indent int) (string, error) {
	sections, err := r.sections(detail, tag)
	if err != nil {
		return "", fmt.Errorf("method %q: %w", detail.Name, err)
	}

	lines := joinSections(sections)

	for i, line := range lines {
		if strings.Contains(line, closer) {
			return "", fmt.Errorf("%w: method %q: line %q closes the comment",
				details.ErrSchemaValidation, detail.Name, line)
		}

		lines[i] = r.markup(detail, line)
	}

	pad := strings.Repeat(" ", indent)

	out := make([]string, 0, len(lines)+2)
	out = append(out, pad+"/**")

	for _, line := range lines {
		out = append(out, strings.TrimRight(pad+" * "+line, " "))
	}

	out = append(out, pad+" */")

	return strings.Join(out, "\n"), nil
}

func (r *Renderer) sections(detail *details.Detail, tag string) ([][]string, error) {
	var tagSection []string
	if tag != "" {
		tagSection = []string{tag}
	}

	definition, err := r.definition(detail)
	if err != nil {
		return nil, err
	}

	params, err := r.params(detail)
	if err != nil {
		return nil, err
	}

	ret, err := r.returns(detail)
	if err != nil {
		return nil, err
	}

	see := make([]string, 0, len(detail.See))

	for _, name := range detail.See {
		formatted := r.formatter.FormatMethod(name)

		err := checkOutput("method formatter", formatted)
		if err != nil {
			return nil, err
		}

		see = append(see, "@see "+formatted)
	}

	return [][]string{
		tagSection,
		definition,
		params,
		ret,
		templates(detail),
		prefixed("@throws ", detail.Throws),
		see,
		prefixed("@link ", detail.Link),
	}, nil
}

func (r *Renderer) definition(detail *details.Detail) ([]string, error) {
	if detail.Definition != nil {
		text := strings.TrimSpace(*detail.Definition)
		if text == "" {
			return nil, nil
		}

		if !strings.HasSuffix(text, ".") {
			text += "."
		}

		return splitLines(text), nil
	}

	text, err := r.definitionFallback.DefinitionFallback(detail.Name)
	if err != nil {
		return nil, err
	}

	err = checkOutput("definition fallback", text)
	if err != nil {
		return nil, err
	}

	return splitLines(text), nil
}

func (r *Renderer) params(detail *details.Detail) ([]string, error) {
	var lines []string

	for _, p := range detail.Params {
		summary, err := r.paramFallback.ParamFallback(detail.Name, p.Name)
		if err != nil {
			return nil, err
		}

		err = checkOutput("parameter fallback", summary)
		if err != nil {
			return nil, err
		}

		signature := paramSignature(p)

		summaryLines := splitLines(summary)
		if len(summaryLines) == 0 {
			lines = append(lines, signature)

			continue
		}

		lines = append(lines, signature+" "+summaryLines[0])
		lines = append(lines, summaryLines[1:]...)
	}

	return lines, nil
}

func paramSignature(p details.NamedParam) string {
	var ref, modifiers string

	switch {
	case p.Ref && p.Optional:
		ref, modifiers = "&", " [optional, reference]"
	case p.Ref:
		ref, modifiers = "&", " [reference]"
	case p.Optional:
		modifiers = " [optional]"
	}

	return "@param " + p.Type.String() + " " + ref + "$" + p.Name + modifiers
}

func (r *Renderer) returns(detail *details.Detail) ([]string, error) {
	ret, rt := detail.Return, detail.ReturnType

	switch {
	case ret.IsZero() && rt.IsZero():
		return nil, nil

	case ret.Variants != nil:
		if !rt.List || !variantsMatch(ret.Variants, rt.Names) {
			return nil, fmt.Errorf("%w: return variants %v, return types %v",
				ErrReturnArityMismatch, variantTypes(ret.Variants), rt.Names)
		}

		whens := make([]string, len(ret.Variants))
		items := make([]string, len(ret.Variants))

		for i, v := range ret.Variants {
			whens[i] = r.style.Strong(v.Type) + " " + v.When
			items[i] = v.Return + " " + v.When
		}

		lines := []string{"@return " + rt.String() + " returns " + strings.Join(whens, ", ")}

		return append(lines, r.style.List(items)...), nil

	case ret.Text != nil:
		if rt.IsZero() || rt.List {
			return nil, fmt.Errorf("%w: return %q, return types %v", ErrReturnArityMismatch, *ret.Text, rt.Names)
		}

		lines := splitLines(*ret.Text)
		if len(lines) == 0 {
			return []string{"@return " + rt.String()}, nil
		}

		lines[0] = "@return " + rt.String() + " " + lines[0]

		return lines, nil
	}

	return []string{"@return " + rt.String()}, nil
}

func variantsMatch(variants []details.Variant, names []string) bool {
	if len(variants) == 0 || len(variants) != len(names) {
		return false
	}

	for i, v := range variants {
		if v.Type != names[i] {
			return false
		}
	}

	return true
}

func variantTypes(variants []details.Variant) []string {
	types := make([]string, len(variants))
	for i, v := range variants {
		types[i] = v.Type
	}

	return types
}

func templates(detail *details.Detail) []string {
	lines := make([]string, 0, len(detail.Template))

	for _, t := range detail.Template {
		if len(t.Types) == 0 {
			lines = append(lines, "@template "+t.Name)

			continue
		}

		lines = append(lines, "@template "+t.Name+" of "+strings.Join(t.Types, "|"))
	}

	return lines
}

func prefixed(prefix string, values []string) []string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = prefix + v
	}

	return lines
}

// joinSections drops sections without text and separates the rest with a
// blank line.
func joinSections(sections [][]string) []string {
	var lines []string

	for _, section := range sections {
		if !hasText(section) {
			continue
		}

		if lines != nil {
			lines = append(lines, "")
		}

		lines = append(lines, section...)
	}

	return lines
}

func hasText(lines []string) bool {
	for _, line := range lines {
		if line != "" {
			return true
		}
	}

	return false
}

// markup applies the style to backtick-quoted words. A closer formed by the
// markup itself, as in "**a**/**b**", has its slash escaped.
func (r *Renderer) markup(detail *details.Detail, text string) string {
	text = markupPattern.ReplaceAllStringFunc(text, func(match string) string {
		word := match[1 : len(match)-1]
		if detail.HasParam(word) {
			return r.style.Emphasis(word)
		}

		return r.style.Strong(word)
	})

	return strings.ReplaceAll(text, closer, escapedCloser)
}

func checkOutput(source, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s returned invalid UTF-8", ErrInvalidRendererOutput, source)
	}

	if strings.Contains(s, closer) {
		return fmt.Errorf("%w: %s returned %q, which closes the comment", ErrInvalidRendererOutput, source, s)
	}

	return nil
}

// splitLines splits s at line boundaries. A trailing line break does not
// start another line, and an empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")

	return strings.Split(s, "\n")
}
