// Command draftconv converts editor documents and embed HTML from the
// command line. Input is read from --in or stdin, output goes to stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"draftconv/internal/config"
	"draftconv/internal/service/editor"
	"draftconv/internal/service/editor/plugin"
)

var (
	inPath      string
	logDir      string
	maxLogFiles int
	verbose     bool

	// populated in PersistentPreRunE
	converter *editor.Converter
	logFile   *os.File
)

var rootCmd = &cobra.Command{
	Use:           "draftconv",
	Short:         "Convert editor documents to embed HTML and back",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()

		logger, err := setupLogger(cfg)
		if err != nil {
			return err
		}

		registry, err := plugin.Default(logger)
		if err != nil {
			return fmt.Errorf("build plugin registry: %w", err)
		}

		converter = editor.NewConverter(registry, editor.Options{
			SanitizeInput:  cfg.SanitizeInput,
			TrimWhitespace: cfg.TrimWhitespace,
			Normalizer: editor.NormalizerOptions{
				MaxPasses: cfg.NormalizeMaxPasses,
				Strict:    cfg.StrictNormalization(),
			},
		}, logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inPath, "in", "", "input file (default stdin)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "write logs to a timestamped file in this directory")
	rootCmd.PersistentFlags().IntVar(&maxLogFiles, "max-log-files", 10, "log files to keep in --log-dir")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(htmlCmd, documentCmd, normalizeCmd, markdownCmd)

	// Finalizers run whether or not RunE failed.
	cobra.OnFinalize(closeLogFile)
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
	}
}

// setupLogger logs to stderr so stdout carries only the conversion result.
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logDir != "" {
		f, err := config.SetupLogFile(logDir, "draftconv", maxLogFiles)
		if err != nil {
			return nil, err
		}
		logFile = f
		out = f
		if cfg.Debug {
			level = slog.LevelDebug
		}
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
