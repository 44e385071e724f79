package googlecloud

import (
	"context"

	speechapi "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/speech"
)

const Name = "google"

func init() {
	speech.Register(Name, func(ctx context.Context, settings speech.BackendSettings) (speech.Recognizer, func() error, error) {
		client, err := NewClient(ctx, settings)
		if err != nil {
			return nil, nil, err
		}
		return NewRecognizer(client), client.Close, nil
	})
}

// RecognizeClient is the part of the Cloud Speech client used here.
type RecognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

// Recognizer calls the Cloud Speech-to-Text v1 synchronous Recognize method.
type Recognizer struct {
	client RecognizeClient
}

func NewRecognizer(client RecognizeClient) *Recognizer {
	return &Recognizer{client: client}
}

// NewClient creates a long-lived Cloud Speech client. Without a credentials
// file it falls back to Application Default Credentials.
func NewClient(ctx context.Context, settings speech.BackendSettings) (*speechapi.Client, error) {
	var opts []option.ClientOption
	if settings.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(settings.CredentialsFile))
	}
	if settings.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(settings.Endpoint))
	}

	client, err := speechapi.NewClient(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create Cloud Speech client")
	}
	return client, nil
}

func (r *Recognizer) Recognize(ctx context.Context, audio []byte, cfg speech.Config) ([]speech.Segment, error) {
	resp, err := r.client.Recognize(ctx, BuildRequest(audio, cfg))
	if err != nil {
		return nil, err
	}
	return Segments(resp), nil
}

// BuildRequest maps cfg onto a RecognizeRequest with inline audio content.
func BuildRequest(audio []byte, cfg speech.Config) *speechpb.RecognizeRequest {
	encoding := speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	if v, ok := speechpb.RecognitionConfig_AudioEncoding_value[cfg.Encoding]; ok {
		encoding = speechpb.RecognitionConfig_AudioEncoding(v)
	}

	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            cfg.SampleRateHertz,
			LanguageCode:               cfg.LanguageCode,
			AlternativeLanguageCodes:   cfg.AlternativeLanguageCodes,
			EnableAutomaticPunctuation: cfg.EnableAutomaticPunctuation,
			Model:                      cfg.Model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
}

// Segments converts each SpeechRecognitionResult into a Segment. A response
// without results yields no segments.
func Segments(resp *speechpb.RecognizeResponse) []speech.Segment {
	if resp == nil {
		return nil
	}

	segments := make([]speech.Segment, 0, len(resp.GetResults()))
	for _, result := range resp.GetResults() {
		segment := speech.Segment{}
		for _, alt := range result.GetAlternatives() {
			segment.Alternatives = append(segment.Alternatives, speech.Alternative{
				Transcript: alt.GetTranscript(),
				Confidence: alt.GetConfidence(),
			})
		}
		segments = append(segments, segment)
	}
	return segments
}
