package whisper

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/speech"
)

const Name = "openai-whisper"

func init() {
	speech.Register(Name, func(ctx context.Context, settings speech.BackendSettings) (speech.Recognizer, func() error, error) {
		if settings.APIKey == "" {
			return nil, nil, apperrors.WithDetail(apperrors.ErrMissingConfig, "OPENAI_API_KEY is required for the %s recognizer", Name)
		}

		config := openai.DefaultConfig(settings.APIKey)
		if settings.Endpoint != "" {
			config.BaseURL = settings.Endpoint
		}
		if settings.Timeout > 0 {
			config.HTTPClient = &http.Client{Timeout: settings.Timeout}
		}
		return NewRecognizer(openai.NewClientWithConfig(config), settings.Model), nil, nil
	})
}

// TranscriptionClient is the part of the OpenAI client used here.
type TranscriptionClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Recognizer sends audio to the OpenAI transcription API.
type Recognizer struct {
	client TranscriptionClient
	model  string
}

func NewRecognizer(client TranscriptionClient, model string) *Recognizer {
	if model == "" {
		model = openai.Whisper1
	}
	return &Recognizer{client: client, model: model}
}

// Recognize asks for verbose_json so the response carries segments. Whisper
// takes a single ISO-639-1 language hint, so only the primary language code
// is sent.
func (r *Recognizer) Recognize(ctx context.Context, audio []byte, cfg speech.Config) ([]speech.Segment, error) {
	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    r.model,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: LanguageHint(cfg.LanguageCode),
	})
	if err != nil {
		return nil, err
	}

	segments := make([]speech.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, speech.NewSegment(text))
	}
	if len(segments) == 0 && strings.TrimSpace(resp.Text) != "" {
		segments = append(segments, speech.NewSegment(strings.TrimSpace(resp.Text)))
	}
	return segments, nil
}

// LanguageHint reduces a BCP-47 tag like "hi-IN" to "hi".
func LanguageHint(languageCode string) string {
	primary, _, _ := strings.Cut(languageCode, "-")
	return strings.ToLower(primary)
}
