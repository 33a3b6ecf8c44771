package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags names the CLI flags bound by [Config.RegisterFlags].
type Flags struct {
	Level   string
	Format  string
	Verbose string
}

// DefaultFlags returns the flag names used by [NewConfig].
func DefaultFlags() Flags {
	return Flags{
		Level:   "log-level",
		Format:  "log-format",
		Verbose: "verbose",
	}
}

// Config holds the logging options of a command.
//
// Verbose overrides Level with [LevelDebug].
type Config struct {
	Flags   Flags
	Level   string
	Format  string
	Verbose bool
}

// NewConfig returns a [Config] that logs warnings as text, bound to
// [DefaultFlags].
func NewConfig() *Config {
	return &Config{
		Flags:  DefaultFlags(),
		Level:  string(LevelWarn),
		Format: string(FormatText),
	}
}

// RegisterFlags binds c to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		"log level, one of: "+strings.Join(GetAllLevelStrings(), ", "))
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		"log format, one of: "+strings.Join(GetAllFormatStrings(), ", "))
	flags.BoolVarP(&c.Verbose, c.Flags.Verbose, "v", c.Verbose,
		"log at debug level, overriding --"+c.Flags.Level)
}

// RegisterCompletions completes the level and format flags of cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	values := map[string][]string{
		c.Flags.Level:  GetAllLevelStrings(),
		c.Flags.Format: GetAllFormatStrings(),
	}

	for name, choices := range values {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions(choices, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewHandler returns a [slog.Handler] writing to w as configured by c.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level := c.Level
	if c.Verbose {
		level = string(LevelDebug)
	}

	return NewHandlerFromStrings(w, level, c.Format)
}
