package testutil

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"
	"speech-kit/internal/app/speech"
)

// MockRecognizer is a testify mock of speech.Recognizer
type MockRecognizer struct {
	mock.Mock
	calls atomic.Int32
}

func NewMockRecognizer(t *testing.T) *MockRecognizer {
	m := &MockRecognizer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecognizer) Recognize(ctx context.Context, audio []byte, cfg speech.Config) ([]speech.Segment, error) {
	m.calls.Add(1)
	args := m.Called(ctx, audio, cfg)
	segments, _ := args.Get(0).([]speech.Segment)
	return segments, args.Error(1)
}

// CallCount reports how many times Recognize ran.
func (m *MockRecognizer) CallCount() int {
	return int(m.calls.Load())
}

// Segments builds one single-alternative segment per transcript.
func Segments(transcripts ...string) []speech.Segment {
	segments := make([]speech.Segment, 0, len(transcripts))
	for _, t := range transcripts {
		segments = append(segments, speech.NewSegment(t))
	}
	return segments
}
