package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"speech-kit/internal/api/errors"
	"speech-kit/internal/api/v1/dto"
	"speech-kit/internal/app/speech"
)

const (
	MsgOnlyWAV    = "Only WAV files are supported."
	MsgEmptyFile  = "Uploaded file is empty."
	msgRecognizer = "Speech recognition error: %v"
)

// SpeechService turns uploaded WAV bytes into a transcript
type SpeechService interface {
	Transcribe(ctx context.Context, filename string, data []byte) (*dto.TranscriptionResponse, error)
}

type speechService struct {
	recognizer speech.Recognizer
	config     speech.Config
	logger     *zap.Logger
}

// NewSpeechService creates a service around a shared recognizer
func NewSpeechService(recognizer speech.Recognizer, config speech.Config, logger *zap.Logger) SpeechService {
	return &speechService{
		recognizer: recognizer,
		config:     config,
		logger:     logger,
	}
}

// IsWAVFilename reports whether the client-supplied name ends in .wav.
// Matching is case-sensitive.
func IsWAVFilename(filename string) bool {
	return strings.HasSuffix(filename, ".wav")
}

type recognition struct {
	segments []speech.Segment
	err      error
}

func (s *speechService) Transcribe(ctx context.Context, filename string, data []byte) (*dto.TranscriptionResponse, error) {
	if !IsWAVFilename(filename) {
		return nil, errors.NewBadRequestError(MsgOnlyWAV)
	}
	if len(data) == 0 {
		return nil, errors.NewBadRequestError(MsgEmptyFile)
	}

	done := make(chan recognition, 1)
	go func() {
		segments, err := s.recognizer.Recognize(ctx, data, s.config)
		done <- recognition{segments: segments, err: err}
	}()

	var result recognition
	select {
	case result = <-done:
	case <-ctx.Done():
		result.err = ctx.Err()
	}

	if result.err != nil {
		s.logger.Error("speech recognition failed",
			zap.String("file", filename),
			zap.Int("bytes", len(data)),
			zap.Error(result.err),
		)
		return nil, errors.NewInternalError(fmt.Sprintf(msgRecognizer, result.err))
	}

	transcript := speech.JoinTranscript(result.segments)
	s.logger.Info("transcription completed",
		zap.String("file", filename),
		zap.Int("segments", len(result.segments)),
		zap.String("transcript", transcript),
	)

	return &dto.TranscriptionResponse{
		Transcript: transcript,
		File:       filename,
	}, nil
}
