package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
)

var version = "0.1.0"

func main() {
	// config files may reference ${VARS} set in a local .env
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "framectl",
		Short: "framectl - inspect and exercise nebulaframe tables",
		Long: `framectl drives the nebulaframe engine from the command line.
It builds tables, runs selections over them and emits the result as CSV or JSON.
The bench command times the same operations and can trace them.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "framectl v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newDemoCommand())
	root.AddCommand(newBenchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the frame configuration from path, or returns defaults
// when path is empty, and initializes the global logger from it.
func loadConfig(path, logLevel string) (*config.FrameConfig, error) {
	cfg := config.NewFrameConfig("demo")
	if path != "" {
		loaded, err := config.LoadFrameConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.Name == "" {
			cfg.Name = "demo"
		}
	}
	if logLevel != "" {
		cfg.Observability.LogLevel = logLevel
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Development: cfg.Observability.Development,
		Encoding:    cfg.Observability.LogEncoding,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded", zap.String("path", path), zap.String("table", cfg.Name))
	return cfg, nil
}
