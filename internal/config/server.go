package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/speech"
)

const (
	DefaultAddr           = ":8000"
	DefaultRecognizer     = "google"
	DefaultMaxUploadBytes = 32 << 20
	DefaultReadTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 120 * time.Second
)

// ServerConfig configures the transcription service.
type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	Environment    string        `yaml:"environment" validate:"oneof=development production"`
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gte=0"`
	CORSOrigins    []string      `yaml:"cors_origins"`

	Recognizer RecognizerConfig `yaml:"recognizer"`
	Speech     speech.Config    `yaml:"speech"`
}

// RecognizerConfig selects the backend and its settings.
type RecognizerConfig struct {
	Name     string                 `yaml:"name" validate:"required"`
	Settings speech.BackendSettings `yaml:",inline"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:           DefaultAddr,
		Environment:    "production",
		LogLevel:       "info",
		MaxUploadBytes: DefaultMaxUploadBytes,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		CORSOrigins:    []string{"*"},
		Recognizer:     RecognizerConfig{Name: DefaultRecognizer},
		Speech:         speech.DefaultConfig(),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadServerConfig reads a YAML file over the defaults. Environment variables
// in the file are expanded. An empty path yields the defaults.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ApplyEnv(GetAPIKeys())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv fills backend credentials that the file left empty.
func (c *ServerConfig) ApplyEnv(keys APIKeys) {
	settings := &c.Recognizer.Settings
	switch c.Recognizer.Name {
	case "google":
		if settings.CredentialsFile == "" {
			settings.CredentialsFile = keys.GoogleCredentials
		}
	case "openai-whisper":
		if settings.APIKey == "" {
			settings.APIKey = keys.OpenAI
		}
	case "gemini":
		if settings.APIKey == "" {
			settings.APIKey = keys.Gemini
		}
	}
}

var validate = validator.New()

// Validate checks struct constraints and reports every failing field.
func (c *ServerConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.WrapKind(apperrors.ErrInvalidConfig, err, "invalid server configuration")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return apperrors.WithDetail(apperrors.ErrInvalidConfig, "invalid server configuration: %s", strings.Join(fields, "; "))
}
