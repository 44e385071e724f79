package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"speech-kit/internal/api/v1/services"
	"speech-kit/internal/app/testutil"
	"speech-kit/internal/config"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockRecognizer) {
	t.Helper()
	cfg := config.DefaultServerConfig()
	recognizer := testutil.NewMockRecognizer(t)
	service := services.NewSpeechService(recognizer, cfg.Speech, zap.NewNop())
	return NewServer(cfg, service, prometheus.NewRegistry(), zap.NewNop()), recognizer
}

func upload(t *testing.T, s *Server, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestServer_Transcribe(t *testing.T) {
	s, recognizer := newTestServer(t)
	recognizer.On("Recognize", mock.Anything, []byte("RIFF"), mock.Anything).
		Return(testutil.Segments(" hello ", "world"), nil).Once()

	rec := upload(t, s, "hello_16k.wav", []byte("RIFF"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transcript":"hello  world","file":"hello_16k.wav"}`, rec.Body.String())
}

func TestServer_TranscribeErrors(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		content        []byte
		recognizerErr  error
		expectedStatus int
		expectedDetail string
		expectCall     bool
	}{
		{"non wav", "song.mp3", []byte("ID3"), nil, http.StatusBadRequest, "Only WAV files are supported.", false},
		{"empty wav", "clip.wav", []byte{}, nil, http.StatusBadRequest, "Uploaded file is empty.", false},
		{"recognizer error", "clip.wav", []byte("RIFF"), stderrors.New("boom"), http.StatusInternalServerError, "Speech recognition error: boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, recognizer := newTestServer(t)
			if tt.expectCall {
				recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.recognizerErr).Once()
			}

			rec := upload(t, s, tt.filename, tt.content)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.expectedDetail, body["detail"])
			assert.Equal(t, rec.Header().Get("X-Request-ID"), body["request_id"])
			if !tt.expectCall {
				assert.Zero(t, recognizer.CallCount())
			}
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	s, _ := newTestServer(t)
	s.Router().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestServer_Swagger(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/speech-to-text")
}

func TestServer_StartShutdown(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.Addr = "127.0.0.1:0"
	s := NewServer(cfg, testutil.NewMockSpeechService(t), prometheus.NewRegistry(), zap.NewNop())

	s.Start()
	require.NoError(t, s.Shutdown(context.Background()))

	for err := range s.Errors() {
		assert.NoError(t, err)
	}
}
