//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"
	"speech-kit/internal/api/server"
	"speech-kit/internal/api/v1/services"
	"speech-kit/internal/config"
)

// InitializeServer builds the transcription HTTP server from configuration
func InitializeServer(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(
		provideRegistry,
		provideSpeechConfig,
		provideRecognizer,
		services.NewSpeechService,
		server.NewServer,
	)
	return nil, nil, nil
}
