package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"speech-kit/internal/api/errors"
	"speech-kit/internal/api/middleware"
	"speech-kit/internal/api/v1/dto"
	"speech-kit/internal/api/v1/services"
)

// SpeechHandler handles the speech-to-text endpoint
type SpeechHandler struct {
	service        services.SpeechService
	maxUploadBytes int64
}

// NewSpeechHandler creates a new speech handler. A non-positive limit
// disables the upload size check.
func NewSpeechHandler(service services.SpeechService, maxUploadBytes int64) *SpeechHandler {
	return &SpeechHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe handles POST /speech-to-text
//
// @Summary Transcribe a WAV file
// @Description Sends an uploaded 16 kHz mono 16-bit WAV file to the configured speech recognizer and returns the joined transcript
// @Tags speech
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "WAV audio file"
// @Success 200 {object} dto.TranscriptionResponse "Transcript"
// @Failure 400 {object} errors.APIError "Not a WAV file, empty upload or malformed form"
// @Failure 500 {object} errors.APIError "Speech recognition error"
// @Router /speech-to-text [post]
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.TranscriptionRequest
	if err := middleware.BindForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	data, err := readUpload(req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), req.File.Filename, data)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func readUpload(req dto.TranscriptionRequest) ([]byte, error) {
	file, err := req.File.Open()
	if err != nil {
		return nil, errors.NewBadRequestError("Failed to read uploaded file.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewBadRequestError("Failed to read uploaded file.")
	}
	return data, nil
}
