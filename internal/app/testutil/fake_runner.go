package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// TargetProbeJSON is ffprobe output for a 16kHz mono 16-bit PCM WAV file.
const TargetProbeJSON = `{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1,"bits_per_sample":16}]}`

// FakeWavContent is written as the output of a successful fake conversion.
var FakeWavContent = []byte("RIFF\x24\x00\x00\x00WAVEfmt ")

// RunnerCall records a single invocation of FakeRunner.Run.
type RunnerCall struct {
	Name string
	Args []string
}

// FakeRunner stands in for ffmpeg/ffprobe. Successful conversions write a
// small file at the requested output path so callers can stat it.
type FakeRunner struct {
	mu sync.Mutex

	missing        map[string]bool
	failures       map[string]string
	probeOutput    []byte
	durationOutput []byte
	versionErr     error

	Calls []RunnerCall
}

// NewFakeRunner creates a FakeRunner whose conversions all succeed
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		missing:        make(map[string]bool),
		failures:       make(map[string]string),
		probeOutput:    []byte(TargetProbeJSON),
		durationOutput: []byte("1.0\n"),
	}
}

// WithMissing makes LookPath fail for binary
func (f *FakeRunner) WithMissing(binary string) *FakeRunner {
	f.missing[binary] = true
	return f
}

// WithFailure makes the conversion of any input whose base name is fileName
// exit non-zero with stderr
func (f *FakeRunner) WithFailure(fileName string, stderr string) *FakeRunner {
	f.failures[fileName] = stderr
	return f
}

// WithProbeOutput sets the ffprobe -show_streams output
func (f *FakeRunner) WithProbeOutput(output string) *FakeRunner {
	f.probeOutput = []byte(output)
	return f
}

// WithVersionError makes "ffmpeg -version" fail
func (f *FakeRunner) WithVersionError(err error) *FakeRunner {
	f.versionErr = err
	return f
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, RunnerCall{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.missing[name] {
		return nil, nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	switch {
	case contains(args, "-version"):
		return []byte(name + " version 6.1"), nil, f.versionErr
	case contains(args, "-show_streams"):
		return f.probeOutput, nil, nil
	case contains(args, "-show_entries"):
		return f.durationOutput, nil, nil
	}

	input := argAfter(args, "-i")
	if stderr, ok := f.failures[filepath.Base(input)]; ok {
		return nil, []byte(stderr), errors.New("exit status 1")
	}

	if len(args) > 0 {
		output := args[len(args)-1]
		if err := os.WriteFile(output, FakeWavContent, 0644); err != nil {
			return nil, []byte(err.Error()), err
		}
	}
	return nil, nil, nil
}

// ConversionCalls returns the ffmpeg invocations that carried an input file
func (f *FakeRunner) ConversionCalls() []RunnerCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []RunnerCall
	for _, call := range f.Calls {
		if contains(call.Args, "-i") {
			calls = append(calls, call)
		}
	}
	return calls
}

func contains(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
