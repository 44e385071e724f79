package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"speech-kit/internal/app/speech"
	_ "speech-kit/internal/app/speech/gemini"
	_ "speech-kit/internal/app/speech/googlecloud"
	_ "speech-kit/internal/app/speech/whisper"
	"speech-kit/internal/config"
)

// provideRegistry creates the registry behind /metrics
func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// provideSpeechConfig extracts the per-request recognition settings
func provideSpeechConfig(cfg *config.ServerConfig) speech.Config {
	return cfg.Speech
}

// provideRecognizer builds the configured backend once and instruments it.
// The cleanup closes the backend client.
func provideRecognizer(ctx context.Context, cfg *config.ServerConfig, reg *prometheus.Registry, logger *zap.Logger) (speech.Recognizer, func(), error) {
	name := cfg.Recognizer.Name
	recognizer, closeFn, err := speech.New(ctx, name, cfg.Recognizer.Settings)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("speech recognizer ready",
		zap.String("backend", name),
		zap.String("language", cfg.Speech.LanguageCode),
		zap.Strings("alternative_languages", cfg.Speech.AlternativeLanguageCodes),
	)

	cleanup := func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close speech recognizer", zap.String("backend", name), zap.Error(err))
		}
	}
	return speech.Instrument(recognizer, name, speech.NewMetrics(reg)), cleanup, nil
}
