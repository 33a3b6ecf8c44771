package comment

import (
	"fmt"
	"slices"
)

// Style renders the inline markup and lists used inside a comment.
type Style interface {
	// Name identifies the style in a [Registry].
	Name() string
	// Strong marks literals and return types.
	Strong(s string) string
	// Emphasis marks parameter names.
	Emphasis(s string) string
	// List renders items as a bulleted list, one element per line.
	List(items []string) []string
}

// Registry maps style names to styles.
type Registry map[string]Style

// Add registers each style under its name, replacing any existing entry.
func (r Registry) Add(styles ...Style) {
	for _, s := range styles {
		r[s.Name()] = s
	}
}

// Get returns the style called name.
func (r Registry) Get(name string) (Style, error) {
	s, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown style %q", ErrInvalidOption, name)
	}

	return s, nil
}

// Names returns the registered style names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// DefaultRegistry returns a [Registry] holding [Markdown] and [HTML].
func DefaultRegistry() Registry {
	r := make(Registry)
	r.Add(Markdown{}, HTML{})

	return r
}

// Markdown renders markup as Markdown. It is the default style.
type Markdown struct{}

// Name implements [Style].
func (Markdown) Name() string { return "markdown" }

// Strong implements [Style].
func (Markdown) Strong(s string) string { return "**" + s + "**" }

// Emphasis implements [Style].
func (Markdown) Emphasis(s string) string { return "*" + s + "*" }

// List implements [Style].
func (Markdown) List(items []string) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}

	return lines
}

// HTML renders markup as HTML tags.
type HTML struct{}

// Name implements [Style].
func (HTML) Name() string { return "html" }

// Strong implements [Style].
func (HTML) Strong(s string) string { return "<b>" + s + "</b>" }

// Emphasis implements [Style].
func (HTML) Emphasis(s string) string { return "<i>" + s + "</i>" }

// List implements [Style].
func (HTML) List(items []string) []string {
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, "<ul>")

	for _, item := range items {
		lines = append(lines, " <li>"+item+"</li>")
	}

	return append(lines, "</ul>")
}
