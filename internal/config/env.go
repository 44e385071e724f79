package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the server.
const (
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvGeminiKey         = "GEMINI_API_KEY"
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
)

// DefaultEnvPaths are tried in order; the first one that exists is loaded.
var DefaultEnvPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads the first .env file found in paths. A missing file is not an
// error since variables may be set system-wide. It returns the loaded path.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}

	for _, envPath := range paths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// APIKeys holds the credentials read from the environment.
type APIKeys struct {
	OpenAI            string
	Gemini            string
	GoogleCredentials string
}

// GetAPIKeys reads API keys from the environment.
func GetAPIKeys() APIKeys {
	return APIKeys{
		OpenAI:            strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		Gemini:            strings.TrimSpace(os.Getenv(EnvGeminiKey)),
		GoogleCredentials: strings.TrimSpace(os.Getenv(EnvGoogleCredentials)),
	}
}

// Available names the backends that have credentials configured.
func (k APIKeys) Available() []string {
	var names []string
	if k.GoogleCredentials != "" {
		names = append(names, "google")
	}
	if k.OpenAI != "" {
		names = append(names, "openai-whisper")
	}
	if k.Gemini != "" {
		names = append(names, "gemini")
	}
	return names
}
