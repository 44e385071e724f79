package dto

import (
	"mime/multipart"
)

// TranscriptionRequest is the multipart form accepted by POST /speech-to-text
type TranscriptionRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// TranscriptionResponse is returned after a successful recognition
type TranscriptionResponse struct {
	Transcript string `json:"transcript" example:"नमस्ते, आप कैसे हैं?"`
	File       string `json:"file" example:"greeting_16k.wav"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
