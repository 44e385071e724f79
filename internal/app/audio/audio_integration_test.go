//go:build integration
// +build integration

package audio

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"speech-kit/internal/app/model"
)

// These are integration tests that can be run when FFmpeg is available
// Run with: go test -tags=integration ./internal/app/audio/

func TestConvertToWavIntegration(t *testing.T) {
	if !isFFmpegAvailable() {
		t.Skip("FFmpeg not available, skipping integration tests")
	}

	ctx := context.Background()
	dir := t.TempDir()
	input := filepath.Join(dir, "tone.mp3")

	// 2 seconds of a 440Hz stereo tone at 44.1kHz
	gen := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=2:sample_rate=44100",
		"-ac", "2", input)
	require.NoError(t, gen.Run())

	encoder := NewEncoder(ExecRunner{}, "", "")
	output, err := encoder.ConvertToWav(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tone_16k.wav"), output)

	format, err := encoder.Probe(ctx, output)
	require.NoError(t, err)
	assert.Equal(t, model.TargetFormat, format)

	duration, err := encoder.Duration(ctx, output)
	require.NoError(t, err)
	assert.Equal(t, 2, duration)

	// A second run overwrites the previous output
	_, err = encoder.ConvertToWav(ctx, input)
	assert.NoError(t, err)
}

func isFFmpegAvailable() bool {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return false
	}
	_, err := exec.LookPath("ffprobe")
	return err == nil
}
