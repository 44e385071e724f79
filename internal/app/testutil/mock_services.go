package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"speech-kit/internal/api/v1/dto"
)

// MockSpeechService is a mock implementation of services.SpeechService
type MockSpeechService struct {
	mock.Mock
}

func NewMockSpeechService(t *testing.T) *MockSpeechService {
	m := &MockSpeechService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSpeechService) Transcribe(ctx context.Context, filename string, data []byte) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, filename, data)
	resp, _ := args.Get(0).(*dto.TranscriptionResponse)
	return resp, args.Error(1)
}
