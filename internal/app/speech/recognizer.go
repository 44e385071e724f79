package speech

import (
	"context"
)

// Recognizer is the narrow capability the transcription endpoint needs from a
// cloud speech service. Implementations must be safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte, cfg Config) ([]Segment, error)
}

// RecognizerFunc adapts a function to Recognizer.
type RecognizerFunc func(ctx context.Context, audio []byte, cfg Config) ([]Segment, error)

func (f RecognizerFunc) Recognize(ctx context.Context, audio []byte, cfg Config) ([]Segment, error) {
	return f(ctx, audio, cfg)
}

// Segment is one unit of recognized speech with its ranked hypotheses, best
// first.
type Segment struct {
	Alternatives []Alternative `json:"alternatives"`
}

type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float32 `json:"confidence,omitempty"`
}

// NewSegment builds a segment with a single hypothesis.
func NewSegment(transcript string) Segment {
	return Segment{Alternatives: []Alternative{{Transcript: transcript}}}
}

const EncodingLinear16 = "LINEAR16"

// Config is sent with every recognition request.
type Config struct {
	Encoding                   string   `yaml:"encoding" json:"encoding" validate:"required"`
	SampleRateHertz            int32    `yaml:"sample_rate_hertz" json:"sample_rate_hertz" validate:"gt=0"`
	LanguageCode               string   `yaml:"language_code" json:"language_code" validate:"required"`
	AlternativeLanguageCodes   []string `yaml:"alternative_language_codes" json:"alternative_language_codes,omitempty"`
	EnableAutomaticPunctuation bool     `yaml:"enable_automatic_punctuation" json:"enable_automatic_punctuation"`
	Model                      string   `yaml:"model" json:"model,omitempty"`
}

// DefaultConfig is LINEAR16 at 16kHz, Hindi with English fallback, with
// automatic punctuation.
func DefaultConfig() Config {
	return Config{
		Encoding:                   EncodingLinear16,
		SampleRateHertz:            16000,
		LanguageCode:               "hi-IN",
		AlternativeLanguageCodes:   []string{"en-IN"},
		EnableAutomaticPunctuation: true,
		Model:                      "default",
	}
}
