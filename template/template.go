// Package template compiles source templates by replacing documentation
// markers with rendered comments.
package template

import (
	"log/slog"
	"strings"

	"go.jacobcolvin.com/documentary/comment"
	"go.jacobcolvin.com/documentary/details"
	"go.jacobcolvin.com/documentary/placeholder"
)

// Option configures a [Compiler].
type Option func(*Compiler)

// WithTemplateTag keeps each marker as the first line of its rendered
// comment, so the output can be compiled again. Enabled by default.
func WithTemplateTag(include bool) Option {
	return func(c *Compiler) {
		c.includeTag = include
	}
}

// Compiler replaces the markers of a template with comments rendered from a
// set of [details.Details].
//
// Create instances with [NewCompiler].
type Compiler struct {
	details    *details.Details
	renderer   *comment.Renderer
	includeTag bool
}

// NewCompiler creates a new [Compiler].
func NewCompiler(d *details.Details, r *comment.Renderer, opts ...Option) *Compiler {
	c := &Compiler{
		details:    d,
		renderer:   r,
		includeTag: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Result is the outcome of [Compiler.Compile].
type Result struct {
	// Content is the compiled template.
	Content string
	// Rendered lists the methods whose markers were replaced, in order.
	Rendered []string
	// Skipped lists the methods whose markers were left untouched because
	// they are not documented.
	Skipped []string
	// Changed reports whether Content differs from the input.
	Changed bool
}

// Compile replaces every marker of content. Markers naming undocumented
// methods are left as they are; any rendering error aborts the template.
// Rendered comments use the line ending of their marker's line.
func (c *Compiler) Compile(content string) (*Result, error) {
	result := &Result{}

	out, err := placeholder.Populate(content, func(p placeholder.Placeholder) (string, bool, error) {
		detail, ok := c.details.Get(p.Method)
		if !ok {
			slog.Debug("method not documented, skipping marker",
				slog.String("method", p.Method),
			)

			result.Skipped = append(result.Skipped, p.Method)

			return "", false, nil
		}

		var tag string
		if c.includeTag {
			tag = p.Tag
		}

		text, err := c.renderer.Render(detail, tag, p.Indent)
		if err != nil {
			return "", false, err
		}

		if p.CRLF {
			text = strings.ReplaceAll(text, "\n", "\r\n")
		}

		result.Rendered = append(result.Rendered, p.Method)

		return text, true, nil
	})
	if err != nil {
		return nil, err
	}

	result.Content = out
	result.Changed = out != content

	return result, nil
}
