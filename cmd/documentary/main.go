// Package main provides the CLI entry point for documentary, a tool that
// renders doc block comments into source templates from declaration,
// decoration and definition files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/documentary/details"
	"go.jacobcolvin.com/documentary/document"
	"go.jacobcolvin.com/documentary/log"
	"go.jacobcolvin.com/documentary/version"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var (
	// ErrOutdated is returned in check mode when a template would change.
	ErrOutdated = errors.New("templates are not up to date")
	// ErrInvalidColor indicates an unknown --color value.
	ErrInvalidColor = errors.New("invalid color mode")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type options struct {
	doc   *document.Config
	log   *log.Config
	color string
}

func newRootCmd() *cobra.Command {
	opts := &options{
		doc:   document.NewConfig(),
		log:   log.NewConfig(),
		color: colorAuto,
	}

	rootCmd := &cobra.Command{
		Use:   "documentary [flags] [root]",
		Short: "Render doc block comments into source templates",
		Long: `documentary replaces documentation markers such as {@documentary:method}
in the templates of a project with doc block comments. The comments are built
from the declaration, decoration and definition files kept under the
"documentary" folder at the project root.`,
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(opts.log, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, projectRoot(args))
		},
	}

	opts.log.RegisterFlags(rootCmd.PersistentFlags())
	opts.doc.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&opts.color, "color", opts.color,
		fmt.Sprintf("colorize output, one of: %s, %s, %s", colorAuto, colorAlways, colorNever))

	err := opts.log.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	err = opts.doc.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	err = rootCmd.RegisterFlagCompletionFunc("color",
		cobra.FixedCompletions([]string{colorAuto, colorAlways, colorNever}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newDetailsCmd())

	return rootCmd
}

func newDetailsCmd() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "details [flags] [root]",
		Short: "Print the compiled details of a template as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDetails(cmd.OutOrStdout(), projectRoot(args), template)
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "template file, relative to the project root")

	err := cmd.MarkFlagRequired("template")
	if err != nil {
		fmt.Fprintf(os.Stderr, "mark template flag: %v\n", err)
	}

	return cmd
}

func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return "."
}

func setupLogging(cfg *log.Config, w io.Writer) error {
	handler, err := cfg.NewHandler(w)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func run(cmd *cobra.Command, opts *options, root string) error {
	out, err := newPrinter(cmd.OutOrStdout(), opts.color)
	if err != nil {
		return err
	}

	err = opts.doc.LoadFile(document.ProjectFile(root), cmd.Flags())
	if err != nil {
		return err
	}

	d, err := opts.doc.NewDocumenter(root)
	if err != nil {
		return err
	}

	slog.Debug("documenting templates",
		slog.String("root", root),
		slog.String("template", opts.doc.Template),
		slog.String("mode", string(opts.doc.Mode())),
	)

	outcomes, err := d.DocumentAll(cmd.Context(), opts.doc.Template)
	for _, o := range outcomes {
		out.outcome(opts.doc.Mode(), o)
	}

	if err != nil {
		return err
	}

	if opts.doc.Mode() == document.ModeCheck {
		for _, o := range outcomes {
			if o.Changed {
				return ErrOutdated
			}
		}
	}

	return nil
}

func printDetails(w io.Writer, root, template string) error {
	t, err := document.Resolve(root, template)
	if err != nil {
		return err
	}

	d, err := details.Load(
		t.Source(document.SourceDeclaration),
		t.Source(document.SourceDecorations),
		t.Source(document.SourceDefinitions),
	)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", document.ErrWriteOutput, err)
	}

	_, err = fmt.Fprintf(w, "%s\n", data)
	if err != nil {
		return fmt.Errorf("%w: %w", document.ErrWriteOutput, err)
	}

	return nil
}

// printer writes the status lines of documented templates.
type printer struct {
	w       io.Writer
	done    *color.Color
	pending *color.Color
	same    *color.Color
}

func newPrinter(w io.Writer, mode string) (*printer, error) {
	var enabled bool

	switch mode {
	case colorAlways:
		enabled = true
	case colorNever:
		enabled = false
	case colorAuto:
		f, ok := w.(*os.File)
		enabled = ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in an int.
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, mode)
	}

	p := &printer{
		w:       w,
		done:    color.New(color.FgGreen),
		pending: color.New(color.FgYellow),
		same:    color.New(color.Faint),
	}

	for _, c := range []*color.Color{p.done, p.pending, p.same} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p, nil
}

func (p *printer) outcome(mode document.Mode, o *document.Outcome) {
	switch {
	case mode == document.ModeDiff && o.Changed:
		fmt.Fprint(p.w, o.Diff)
	case o.Written:
		p.done.Fprintf(p.w, "File \"%s\" documented\n", o.Path)
	case o.Changed:
		p.pending.Fprintf(p.w, "File \"%s\" is not up to date\n", o.Path)
	default:
		p.same.Fprintf(p.w, "File \"%s\" up to date\n", o.Path)
	}
}
