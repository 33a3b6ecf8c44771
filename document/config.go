package document

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/documentary/comment"
	"go.jacobcolvin.com/documentary/fragment"
)

// ConfigFile is the project configuration file at the project root.
const ConfigFile = "documentary.toml"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Flags holds CLI flag names for document configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Template           string
	Output             string
	Style              string
	MethodFormat       string
	IncludeTemplateTag string
	StrictDefinitions  string
	FragmentExtension  string
	Check              string
	Diff               string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:              f,
		Template:           ".",
		Style:              comment.Markdown{}.Name(),
		MethodFormat:       MethodPlaceholder,
		IncludeTemplateTag: true,
		StrictDefinitions:  true,
		FragmentExtension:  fragment.DefaultExtension,
		Registry:           comment.DefaultRegistry(),
	}
}

// Config holds document configuration from CLI flags and the project
// configuration file.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags] and merge the project file with [Config.LoadFile].
// Use [Config.NewDocumenter] to create a [Documenter].
type Config struct {
	// Registry holds the available comment styles.
	Registry comment.Registry `toml:"-" validate:"-"`

	Flags Flags `toml:"-" validate:"-"`

	// Template is the template file or folder to document, relative to the
	// project root.
	Template string `toml:"template" validate:"required"`
	// Output is the output root. Empty means in place.
	Output string `toml:"output"`
	// Style names the comment markup style.
	Style string `toml:"style" validate:"required"`
	// MethodFormat formats documented methods in @see lines.
	MethodFormat string `toml:"method-format" validate:"omitempty,contains={method}"`
	// FragmentExtension is the file extension of fragments.
	FragmentExtension string `toml:"fragment-extension" validate:"required,startswith=."`

	IncludeTemplateTag bool `toml:"include-template-tag"`
	StrictDefinitions  bool `toml:"strict-definitions"`
	Check              bool `toml:"-" validate:"excluded_with=Diff"`
	Diff               bool `toml:"-"`
}

// NewConfig returns a new [Config] with default values.
func NewConfig() *Config {
	f := Flags{
		Template:           "template",
		Output:             "output",
		Style:              "style",
		MethodFormat:       "method-format",
		IncludeTemplateTag: "include-template-tag",
		StrictDefinitions:  "strict-definitions",
		FragmentExtension:  "fragment-extension",
		Check:              "check",
		Diff:               "diff",
	}

	return f.NewConfig()
}

// RegisterFlags adds document flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Template, c.Flags.Template, c.Template,
		"template file or folder to document, relative to the project root")
	flags.StringVar(&c.Output, c.Flags.Output, c.Output,
		"output root for documented templates (default: in place)")
	flags.StringVar(&c.Style, c.Flags.Style, c.Style,
		fmt.Sprintf("comment markup style, one of: %s", strings.Join(c.Registry.Names(), ", ")))
	flags.StringVar(&c.MethodFormat, c.Flags.MethodFormat, c.MethodFormat,
		"format of documented methods in @see lines, "+MethodPlaceholder+" is the method name")
	flags.BoolVar(&c.IncludeTemplateTag, c.Flags.IncludeTemplateTag, c.IncludeTemplateTag,
		"keep the marker in rendered comments")
	flags.BoolVar(&c.StrictDefinitions, c.Flags.StrictDefinitions, c.StrictDefinitions,
		"require a definition fragment for methods without a definition")
	flags.StringVar(&c.FragmentExtension, c.Flags.FragmentExtension, c.FragmentExtension,
		"file extension of fragments")
	flags.BoolVar(&c.Check, c.Flags.Check, c.Check,
		"report templates that would change without writing them")
	flags.BoolVar(&c.Diff, c.Flags.Diff, c.Diff,
		"print changes as a diff without writing them")
}

// RegisterCompletions registers shell completions for document flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Style,
		cobra.FixedCompletions(c.Registry.Names(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Style, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Output,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Output, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.MethodFormat,
		cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MethodFormat, err)
	}

	return nil
}

// LoadFile merges the project configuration file at path into c. Values of
// flags set on flags take precedence over the file; flags may be nil. A
// missing file leaves c unchanged.
func (c *Config) LoadFile(path string, flags *pflag.FlagSet) error {
	var file Config

	meta, err := toml.DecodeFile(path, &file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s: unknown key %q", ErrInvalidConfig, path, undecoded[0].String())
	}

	changed := func(name string) bool {
		return flags != nil && flags.Changed(name)
	}

	str := []struct {
		dst  *string
		src  string
		key  string
		flag string
	}{
		{&c.Template, file.Template, "template", c.Flags.Template},
		{&c.Output, file.Output, "output", c.Flags.Output},
		{&c.Style, file.Style, "style", c.Flags.Style},
		{&c.MethodFormat, file.MethodFormat, "method-format", c.Flags.MethodFormat},
		{&c.FragmentExtension, file.FragmentExtension, "fragment-extension", c.Flags.FragmentExtension},
	}

	for _, s := range str {
		if meta.IsDefined(s.key) && !changed(s.flag) {
			*s.dst = s.src
		}
	}

	boolean := []struct {
		dst  *bool
		src  bool
		key  string
		flag string
	}{
		{&c.IncludeTemplateTag, file.IncludeTemplateTag, "include-template-tag", c.Flags.IncludeTemplateTag},
		{&c.StrictDefinitions, file.StrictDefinitions, "strict-definitions", c.Flags.StrictDefinitions},
	}

	for _, b := range boolean {
		if meta.IsDefined(b.key) && !changed(b.flag) {
			*b.dst = b.src
		}
	}

	return nil
}

// Validate reports whether the configuration values are usable.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	_, err = c.Registry.Get(c.Style)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Mode returns the [Mode] selected by the check and diff settings.
func (c *Config) Mode() Mode {
	switch {
	case c.Diff:
		return ModeDiff
	case c.Check:
		return ModeCheck
	}

	return ModeWrite
}

// NewDocumenter validates c and creates a [Documenter] for the project at
// root.
func (c *Config) NewDocumenter(root string) (*Documenter, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	style, err := c.Registry.Get(c.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := []Option{
		WithStyle(style),
		WithMethodFormat(c.MethodFormat),
		WithTemplateTag(c.IncludeTemplateTag),
		WithStrictDefinitions(c.StrictDefinitions),
		WithFragmentExtension(c.FragmentExtension),
		WithMode(c.Mode()),
	}

	if c.Output != "" {
		opts = append(opts, WithOutput(c.Output))
	}

	return NewDocumenter(root, opts...), nil
}

// ProjectFile returns the path of the project configuration file of the
// project at root.
func ProjectFile(root string) string {
	return filepath.Join(root, ConfigFile)
}
