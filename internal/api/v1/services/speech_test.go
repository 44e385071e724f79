package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"speech-kit/internal/api/errors"
	"speech-kit/internal/app/speech"
	"speech-kit/internal/app/testutil"
)

func newService(t *testing.T) (SpeechService, *testutil.MockRecognizer) {
	recognizer := testutil.NewMockRecognizer(t)
	return NewSpeechService(recognizer, speech.DefaultConfig(), zap.NewNop()), recognizer
}

func requireAPIError(t *testing.T, err error, status int, detail string) {
	t.Helper()
	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr), "expected *APIError, got %T", err)
	assert.Equal(t, status, apiErr.HTTPStatus())
	assert.Equal(t, detail, apiErr.Detail)
}

func TestSpeechService_Transcribe(t *testing.T) {
	service, recognizer := newService(t)
	audio := []byte("RIFF....WAVE")
	recognizer.On("Recognize", mock.Anything, audio, speech.DefaultConfig()).
		Return(testutil.Segments("नमस्ते,", "आप कैसे हैं?"), nil).Once()

	resp, err := service.Transcribe(context.Background(), "greeting.wav", audio)

	require.NoError(t, err)
	assert.Equal(t, "नमस्ते, आप कैसे हैं?", resp.Transcript)
	assert.Equal(t, "greeting.wav", resp.File)
}

func TestSpeechService_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		detail   string
	}{
		{"mp3 upload", "song.mp3", []byte("ID3"), MsgOnlyWAV},
		{"uppercase extension", "CLIP.WAV", []byte("RIFF"), MsgOnlyWAV},
		{"no extension", "clip", []byte("RIFF"), MsgOnlyWAV},
		{"empty wav", "clip.wav", nil, MsgEmptyFile},
		{"wrong extension wins over empty", "clip.ogg", nil, MsgOnlyWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, recognizer := newService(t)

			resp, err := service.Transcribe(context.Background(), tt.filename, tt.data)

			assert.Nil(t, resp)
			requireAPIError(t, err, http.StatusBadRequest, tt.detail)
			assert.Zero(t, recognizer.CallCount())
		})
	}
}

func TestSpeechService_NoSegments(t *testing.T) {
	service, recognizer := newService(t)
	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()

	resp, err := service.Transcribe(context.Background(), "silence.wav", []byte{0, 0})

	require.NoError(t, err)
	assert.Equal(t, "", resp.Transcript)
	assert.Equal(t, "silence.wav", resp.File)
}

func TestSpeechService_RecognizerError(t *testing.T) {
	service, recognizer := newService(t)
	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, stderrors.New("rpc error: code = PermissionDenied")).Once()

	_, err := service.Transcribe(context.Background(), "clip.wav", []byte("RIFF"))

	requireAPIError(t, err, http.StatusInternalServerError, "Speech recognition error: rpc error: code = PermissionDenied")
}

func TestSpeechService_ContextCanceled(t *testing.T) {
	service, recognizer := newService(t)
	started := make(chan struct{})
	release := make(chan struct{})
	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, nil).Once()
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := service.Transcribe(ctx, "clip.wav", []byte("RIFF"))

	requireAPIError(t, err, http.StatusInternalServerError, "Speech recognition error: context deadline exceeded")
	<-started
}

func TestIsWAVFilename(t *testing.T) {
	assert.True(t, IsWAVFilename("a.wav"))
	assert.True(t, IsWAVFilename("dir/a_16k.wav"))
	assert.False(t, IsWAVFilename("a.wav.mp3"))
	assert.False(t, IsWAVFilename(""))
}
