package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"lute/internal/evaluator"
	"lute/internal/parser"
	"lute/internal/repl"
	"lute/internal/util"
)

var (
	// Version is set at build time through -ldflags
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

var (
	logLevel string
	logFile  string

	config util.Configuration
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("196"))

var rootCmd = &cobra.Command{
	Use:   "lute [script]",
	Short: "The Lute programming language",
	Long: `Lute is a small imperative scripting language with copy-based
scoping: every function call runs against a full duplicate of the caller's
frame, so the only way data flows back out is through an explicit return.

With no arguments an interactive session is started.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			repl.Start(os.Stdout)
			return nil
		}
		return runFile(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"log file path (defaults to stderr)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("lute v%s %s %s\n", Version, BuildDate, Commit))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// initConfig loads lute.toml from the working directory and applies it
// wherever a flag was not given explicitly.
func initConfig() {
	var err error
	config, err = util.LoadConfiguration("lute.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid lute.toml: %v\n", err)
		os.Exit(1)
	}
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit

	if logLevel == "" {
		logLevel = config.LogLevel
	}
	if logFile == "" {
		logFile = config.LogFile
	}
	if config.LibPath != "" {
		libPath := config.LibPath
		if existing := os.Getenv(evaluator.LibPathVar); existing != "" {
			libPath = libPath + ":" + existing
		}
		os.Setenv(evaluator.LibPathVar, libPath)
	}

	setupLogging()
}

func setupLogging() {
	options := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(logLevel),
	}
	logger := slog.New(slog.NewJSONHandler(configureLogWriter(), options))
	slog.SetDefault(logger)
}

func configureLogWriter() *os.File {
	if logFile == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	writer, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return writer
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error opening file at %s", path)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return err
	}

	eval := evaluator.New(path)
	return eval.Run(program, evaluator.NewRootEnvironment())
}
