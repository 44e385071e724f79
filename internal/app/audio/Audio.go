package audio

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
)

const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"

	// SourceExt is the only input format the converter accepts.
	SourceExt = ".mp3"
	// OutputSuffix is appended to the input stem to name the output file.
	OutputSuffix = "_16k.wav"
)

// CheckFFmpeg verifies that the ffmpeg binary is on PATH and runs.
func CheckFFmpeg(ctx context.Context, runner Runner, binary string) error {
	if binary == "" {
		binary = DefaultFFmpeg
	}
	if _, err := runner.LookPath(binary); err != nil {
		return apperrors.WrapKind(apperrors.ErrFFmpegNotFound, err, "%s is not installed or not in PATH", binary)
	}
	if _, _, err := runner.Run(ctx, binary, "-version"); err != nil {
		return apperrors.WrapKind(apperrors.ErrFFmpegNotFound, err, "%s -version failed", binary)
	}
	return nil
}

// WavOutputPath derives the output path for input: same directory, same stem,
// with the _16k.wav suffix.
func WavOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + OutputSuffix
}

// Encoder converts audio files to the target WAV format by shelling out to
// ffmpeg, and inspects results with ffprobe.
type Encoder struct {
	runner  Runner
	ffmpeg  string
	ffprobe string
}

func NewEncoder(runner Runner, ffmpegPath string, ffprobePath string) *Encoder {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpeg
	}
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobe
	}
	return &Encoder{
		runner:  runner,
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
	}
}

// ConvertArgs builds the ffmpeg argument list for converting input to output.
// -y overwrites any previous output.
func ConvertArgs(input, output string) []string {
	return []string{
		"-y",
		"-i", input,
		"-ar", strconv.Itoa(model.TargetFormat.SampleRate),
		"-ac", strconv.Itoa(model.TargetFormat.Channels),
		"-sample_fmt", "s16",
		output,
	}
}

// ConvertToWav converts a single mp3 file and returns the output path.
func (e *Encoder) ConvertToWav(ctx context.Context, input string) (string, error) {
	if _, err := os.Stat(input); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NotFound(input)
		}
		return "", apperrors.Wrapf(err, "stat %s", input)
	}

	if !strings.EqualFold(filepath.Ext(input), SourceExt) {
		return "", apperrors.Unsupported(SourceExt, input)
	}

	output := WavOutputPath(input)
	_, stderr, err := e.runner.Run(ctx, e.ffmpeg, ConvertArgs(input, output)...)
	if err != nil {
		return "", apperrors.WrapKind(apperrors.ErrEncoderFailed, err, "ffmpeg error:\n%s", strings.TrimSpace(string(stderr)))
	}

	return output, nil
}

// Probe reads the first audio stream's format with ffprobe.
func (e *Encoder) Probe(ctx context.Context, path string) (model.AudioFormat, error) {
	stdout, _, err := e.runner.Run(ctx, e.ffprobe, "-v", "quiet", "-print_format", "json", "-show_streams", path)
	if err != nil {
		return model.AudioFormat{}, apperrors.Wrapf(err, "ffprobe %s", path)
	}
	return ParseProbeOutput(stdout)
}

// ParseProbeOutput decodes ffprobe -print_format json output.
func ParseProbeOutput(output []byte) (model.AudioFormat, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return model.AudioFormat{}, apperrors.Wrap(err, "decode ffprobe output")
	}

	format, ok := probeOutput.AudioFormat()
	if !ok {
		return model.AudioFormat{}, apperrors.New("no audio stream found")
	}
	return format, nil
}

// IsTargetWav reports whether path is 16kHz mono 16-bit PCM.
func (e *Encoder) IsTargetWav(ctx context.Context, path string) (bool, error) {
	format, err := e.Probe(ctx, path)
	if err != nil {
		return false, err
	}
	return format.Matches(model.TargetFormat), nil
}

// Duration returns the rounded duration of path in seconds.
func (e *Encoder) Duration(ctx context.Context, path string) (int, error) {
	stdout, _, err := e.runner.Run(ctx, e.ffprobe, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	if err != nil {
		return 0, apperrors.Wrapf(err, "ffprobe %s", path)
	}
	return ParseDuration(stdout)
}

func ParseDuration(output []byte) (int, error) {
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}
