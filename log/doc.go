// Package log builds [log/slog] handlers from level and format names.
//
// Three formats are supported: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, [FormatText] uses a charm logger for terminal
// output. Use [NewHandler] directly, or a [Config] wired to CLI flags:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
package log
