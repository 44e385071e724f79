package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"speech-kit/cmd/stt-server/cmd/version"
	"speech-kit/internal/app"
	"speech-kit/internal/app/logging"
	"speech-kit/internal/app/speech"
	"speech-kit/internal/config"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath string
	addr       string
	recognizer string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "stt-server",
	Short: "HTTP service that transcribes uploaded WAV files",
	Long: `stt-server accepts 16kHz mono 16-bit PCM WAV uploads on POST /speech-to-text
and returns the transcript produced by a cloud speech recognizer.

Credentials are read from the environment or a .env file:
  GOOGLE_APPLICATION_CREDENTIALS  google (default)
  OPENAI_API_KEY                  openai-whisper
  GEMINI_API_KEY                  gemini`,
	Args: cobra.NoArgs,
	RunE: run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(version.Cmd)

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file (default "+config.DefaultAddr+")")
	rootCmd.Flags().StringVar(&recognizer, "recognizer", "", fmt.Sprintf("recognizer backend, overrides the config file (one of %v)", speech.Backends()))
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "load environment variables from this file instead of searching for .env")
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var envPaths []string
	if envFile != "" {
		envPaths = []string{envFile}
	}
	loadedEnv, err := config.LoadEnv(envPaths...)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLoggerWithLevel(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if loadedEnv != "" {
		logger.Info("loaded environment file", zap.String("path", loadedEnv))
	}
	logger.Debug("credentials found", zap.Strings("backends", config.GetAPIKeys().Available()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := app.InitializeServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", zap.Error(err))
		return err
	}
	defer cleanup()

	srv.Start()

	select {
	case err := <-srv.Errors():
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadConfig() (*config.ServerConfig, error) {
	cfg, err := config.LoadServerConfig(configPath)
	if err != nil {
		return nil, err
	}

	overridden := false
	if addr != "" {
		cfg.Addr = addr
		overridden = true
	}
	if recognizer != "" {
		cfg.Recognizer.Name = recognizer
		cfg.ApplyEnv(config.GetAPIKeys())
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
