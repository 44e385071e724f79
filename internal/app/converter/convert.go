package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"speech-kit/internal/app/audio"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
	"speech-kit/internal/app/util/files"
)

// Encoder is the subset of audio.Encoder the converter drives.
type Encoder interface {
	ConvertToWav(ctx context.Context, input string) (string, error)
	IsTargetWav(ctx context.Context, path string) (bool, error)
	Duration(ctx context.Context, path string) (int, error)
}

type Converter struct {
	encoder   Encoder
	logger    *zap.Logger
	out       io.Writer
	verify    bool
	durations bool
	progress  *ProgressManager
}

type Option func(*Converter)

// WithOutput sets where the human-readable run log is printed.
func WithOutput(w io.Writer) Option {
	return func(c *Converter) { c.out = w }
}

// WithVerify probes every produced file and fails it unless it is 16kHz mono
// 16-bit PCM.
func WithVerify(verify bool) Option {
	return func(c *Converter) { c.verify = verify }
}

// WithDurations records the duration of each produced file in the report.
func WithDurations(durations bool) Option {
	return func(c *Converter) { c.durations = durations }
}

// WithProgress renders a progress bar over directory runs.
func WithProgress(pm *ProgressManager) Option {
	return func(c *Converter) { c.progress = pm }
}

func NewConverter(encoder Encoder, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		encoder: encoder,
		logger:  logger,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func (c *Converter) Close() error {
	if c.progress != nil {
		c.progress.Shutdown()
	}
	return c.logger.Sync()
}

// Convert dispatches on target: empty means the working directory, a
// directory converts every mp3 inside it, a file converts just that file.
// The returned error is non-nil only for an invalid target or a failed
// single-file conversion; per-file failures in a directory run live in the
// report.
func (c *Converter) Convert(ctx context.Context, target string) (*model.ConversionReport, error) {
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to get working directory")
		}
		target = wd
	}

	switch files.Classify(target) {
	case files.PathDir:
		return c.ConvertDir(ctx, target)
	case files.PathFile:
		report := &model.ConversionReport{}
		result, err := c.ConvertFile(ctx, target)
		report.Add(result)
		return report, err
	default:
		return nil, apperrors.WithDetail(apperrors.ErrInvalidTarget, "'%s' is not a valid file or folder", target)
	}
}

// ConvertFile converts one file and returns its result. result.Err equals
// the returned error.
func (c *Converter) ConvertFile(ctx context.Context, input string) (model.ConversionResult, error) {
	result := model.ConversionResult{Input: input}

	fmt.Fprintf(c.out, "Converting: %s\n", input)
	output, err := c.encoder.ConvertToWav(ctx, input)
	if err != nil {
		result.Err = err
		return result, err
	}
	result.Output = output
	fmt.Fprintf(c.out, "Output:     %s\n", output)

	if c.verify {
		ok, err := c.encoder.IsTargetWav(ctx, output)
		if err == nil && !ok {
			err = apperrors.WithDetail(apperrors.ErrFormatMismatch, "%s is not 16kHz mono 16-bit PCM", output)
		}
		if err != nil {
			result.Err = err
			return result, err
		}
	}

	if c.durations {
		if duration, err := c.encoder.Duration(ctx, output); err != nil {
			c.logger.Warn("failed to read output duration", zap.String("output", output), zap.Error(err))
		} else {
			result.DurationSec = duration
		}
	}

	result.SizeBytes = files.FileSize(output)
	fmt.Fprintf(c.out, "Done! File size: %.1f KB\n\n", float64(result.SizeBytes)/1024)

	return result, nil
}

// ConvertDir converts every mp3 directly inside dir. A directory with no
// matching files yields an empty report and no error.
func (c *Converter) ConvertDir(ctx context.Context, dir string) (*model.ConversionReport, error) {
	report := &model.ConversionReport{}

	audioFiles, err := files.FindAudioFiles(dir, audio.SourceExt)
	if err != nil {
		return nil, err
	}

	if len(audioFiles) == 0 {
		fmt.Fprintf(c.out, "No MP3 files found in: %s\n", dir)
		return report, nil
	}

	fmt.Fprintf(c.out, "Found %d MP3 file(s)\n\n", len(audioFiles))

	bar := c.createProgressBar(len(audioFiles), "Converting")
	for _, file := range audioFiles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := c.ConvertFile(ctx, file.FullPath)
		if err != nil {
			fmt.Fprintf(c.out, "FAILED: %s → %v\n\n", file.FullPath, err)
			c.logger.Error("conversion failed",
				zap.String("input", file.FullPath),
				zap.Error(err),
			)
		}
		report.Add(result)
		bar.Increment()
	}
	bar.Complete()
	c.waitForProgress()

	return report, nil
}

// PrintSummary writes the success/failure counts and the produced files.
func PrintSummary(w io.Writer, report *model.ConversionReport) {
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Converted:  %d file(s)\n", report.SuccessCount())
	fmt.Fprintf(w, "Failed:     %d file(s)\n", report.FailureCount())

	if report.SuccessCount() == 0 {
		return
	}

	outputs := lo.Map(report.Succeeded, func(r model.ConversionResult, _ int) string {
		return r.Output
	})
	fmt.Fprintln(w, "\nOutput files:")
	for _, output := range outputs {
		fmt.Fprintf(w, "  ✓ %s\n", output)
	}
}

func (c *Converter) createProgressBar(total int, description string) *ProgressBar {
	if c.progress == nil {
		return &ProgressBar{enabled: false}
	}
	return c.progress.CreateBar(total, description)
}

func (c *Converter) waitForProgress() {
	if c.progress != nil {
		c.progress.Wait()
	}
}
