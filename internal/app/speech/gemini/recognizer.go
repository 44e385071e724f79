package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/speech"
)

const (
	Name         = "gemini"
	DefaultModel = "gemini-2.5-flash"
)

func init() {
	speech.Register(Name, func(ctx context.Context, settings speech.BackendSettings) (speech.Recognizer, func() error, error) {
		if settings.APIKey == "" {
			return nil, nil, apperrors.WithDetail(apperrors.ErrMissingConfig, "GEMINI_API_KEY is required for the %s recognizer", Name)
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  settings.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "failed to create Gemini client")
		}
		return NewRecognizer(client.Models, settings.Model), nil, nil
	})
}

// ContentGenerator is the part of genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Recognizer transcribes audio with a Gemini model by sending the WAV bytes
// inline next to a transcription prompt.
type Recognizer struct {
	models ContentGenerator
	model  string
}

func NewRecognizer(models ContentGenerator, model string) *Recognizer {
	if model == "" {
		model = DefaultModel
	}
	return &Recognizer{models: models, model: model}
}

func (r *Recognizer) Recognize(ctx context.Context, audio []byte, cfg speech.Config) ([]speech.Segment, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "audio/wav", Data: audio}},
			{Text: Prompt(cfg)},
		},
	}}

	resp, err := r.models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, err
	}
	return Segments(resp), nil
}

// Prompt asks for a verbatim transcript in the configured languages.
func Prompt(cfg speech.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transcribe the speech in this audio verbatim. The primary language is %s.", cfg.LanguageCode)
	if len(cfg.AlternativeLanguageCodes) > 0 {
		fmt.Fprintf(&b, " The speaker may also use %s.", strings.Join(cfg.AlternativeLanguageCodes, ", "))
	}
	if cfg.EnableAutomaticPunctuation {
		b.WriteString(" Add punctuation.")
	}
	b.WriteString(" Reply with the transcript only. If there is no speech, reply with nothing.")
	return b.String()
}

// Segments maps each non-empty text part of the first candidate to a segment.
func Segments(resp *genai.GenerateContentResponse) []speech.Segment {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}

	var segments []speech.Segment
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text := strings.TrimSpace(part.Text)
		if text == "" {
			continue
		}
		segments = append(segments, speech.NewSegment(text))
	}
	return segments
}
