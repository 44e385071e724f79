package audio

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
	"speech-kit/internal/app/testutil"
)

func TestCheckFFmpeg(t *testing.T) {
	tests := []struct {
		name      string
		runner    *testutil.FakeRunner
		expectErr bool
	}{
		{
			name:   "ffmpeg available",
			runner: testutil.NewFakeRunner(),
		},
		{
			name:      "ffmpeg missing from PATH",
			runner:    testutil.NewFakeRunner().WithMissing("ffmpeg"),
			expectErr: true,
		},
		{
			name:      "ffmpeg -version exits non-zero",
			runner:    testutil.NewFakeRunner().WithVersionError(stderrors.New("exit status 1")),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFFmpeg(context.Background(), tt.runner, "")
			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, apperrors.ErrFFmpegNotFound))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWavOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"song.mp3", "song_16k.wav"},
		{"/data/audio/voice note.MP3", "/data/audio/voice note_16k.wav"},
		{filepath.Join("dir", "a.b.mp3"), filepath.Join("dir", "a.b_16k.wav")},
		{"noext", "noext_16k.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, WavOutputPath(tt.input))
		})
	}
}

func TestConvertArgs(t *testing.T) {
	args := ConvertArgs("in.mp3", "in_16k.wav")

	assert.Equal(t, []string{
		"-y",
		"-i", "in.mp3",
		"-ar", "16000",
		"-ac", "1",
		"-sample_fmt", "s16",
		"in_16k.wav",
	}, args)
}

func TestEncoder_ConvertToWav(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "speech.mp3")
	upper := filepath.Join(dir, "LOUD.MP3")
	ogg := filepath.Join(dir, "speech.ogg")
	broken := filepath.Join(dir, "broken.mp3")
	for _, path := range []string{mp3, upper, ogg, broken} {
		require.NoError(t, os.WriteFile(path, []byte("ID3"), 0644))
	}

	tests := []struct {
		name        string
		input       string
		expectedOut string
		expectedErr error
		errContains string
	}{
		{
			name:        "converts mp3 next to input",
			input:       mp3,
			expectedOut: filepath.Join(dir, "speech_16k.wav"),
		},
		{
			name:        "extension match is case-insensitive",
			input:       upper,
			expectedOut: filepath.Join(dir, "LOUD_16k.wav"),
		},
		{
			name:        "missing file",
			input:       filepath.Join(dir, "nope.mp3"),
			expectedErr: apperrors.ErrFileNotFound,
			errContains: "file not found",
		},
		{
			name:        "wrong extension",
			input:       ogg,
			expectedErr: apperrors.ErrUnsupportedFormat,
			errContains: "expected an .mp3 file",
		},
		{
			name:        "ffmpeg exits non-zero",
			input:       broken,
			expectedErr: apperrors.ErrEncoderFailed,
			errContains: "Invalid data found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := testutil.NewFakeRunner().WithFailure("broken.mp3", "Invalid data found when processing input")
			encoder := NewEncoder(runner, "", "")

			out, err := encoder.ConvertToWav(context.Background(), tt.input)
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.expectedErr))
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Empty(t, out)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedOut, out)
			assert.FileExists(t, out)

			calls := runner.ConversionCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, "ffmpeg", calls[0].Name)
			assert.Equal(t, ConvertArgs(tt.input, tt.expectedOut), calls[0].Args)
		})
	}
}

func TestEncoder_ValidationRunsNoCommand(t *testing.T) {
	runner := testutil.NewFakeRunner()
	encoder := NewEncoder(runner, "", "")

	_, err := encoder.ConvertToWav(context.Background(), filepath.Join(t.TempDir(), "ghost.mp3"))
	require.Error(t, err)
	assert.Empty(t, runner.Calls)
}

func TestParseProbeOutput(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		expected  model.AudioFormat
		expectErr bool
	}{
		{
			name:     "target wav",
			output:   testutil.TargetProbeJSON,
			expected: model.TargetFormat,
		},
		{
			name:   "stereo 44.1kHz skips video stream",
			output: `{"streams":[{"codec_type":"video","codec_name":"h264"},{"codec_type":"audio","codec_name":"mp3","sample_rate":"44100","channels":2,"bits_per_sample":0}]}`,
			expected: model.AudioFormat{
				Codec:      "mp3",
				SampleRate: 44100,
				Channels:   2,
			},
		},
		{
			name:      "no audio stream",
			output:    `{"streams":[{"codec_type":"video","codec_name":"h264"}]}`,
			expectErr: true,
		},
		{
			name:      "invalid json",
			output:    `not json`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ParseProbeOutput([]byte(tt.output))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestEncoder_IsTargetWav(t *testing.T) {
	encoder := NewEncoder(testutil.NewFakeRunner(), "", "")
	ok, err := encoder.IsTargetWav(context.Background(), "out_16k.wav")
	require.NoError(t, err)
	assert.True(t, ok)

	stereo := testutil.NewFakeRunner().WithProbeOutput(`{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":2,"bits_per_sample":16}]}`)
	encoder = NewEncoder(stereo, "", "")
	ok, err = encoder.IsTargetWav(context.Background(), "out_16k.wav")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		output    string
		expected  int
		expectErr bool
	}{
		{"30\n", 30, false},
		{"45.678\n", 46, false},
		{"29.4\n", 29, false},
		{"  \t120.5  \n", 121, false},
		{"not-a-number\n", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			duration, err := ParseDuration([]byte(tt.output))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, duration)
		})
	}
}
