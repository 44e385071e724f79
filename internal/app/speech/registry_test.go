package speech

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "speech-kit/internal/app/errors"
)

func TestRegistry(t *testing.T) {
	var got BackendSettings
	Register("test-echo", func(ctx context.Context, settings BackendSettings) (Recognizer, func() error, error) {
		got = settings
		return RecognizerFunc(func(ctx context.Context, audio []byte, cfg Config) ([]Segment, error) {
			return []Segment{NewSegment(string(audio))}, nil
		}), nil, nil
	})
	Register("test-broken", func(ctx context.Context, settings BackendSettings) (Recognizer, func() error, error) {
		return nil, nil, stderrors.New("no credentials")
	})

	assert.Subset(t, Backends(), []string{"test-broken", "test-echo"})

	recognizer, closeFn, err := New(context.Background(), "test-echo", BackendSettings{Model: "m1"})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())
	assert.Equal(t, "m1", got.Model)

	segments, err := recognizer.Recognize(context.Background(), []byte("hi"), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hi", JoinTranscript(segments))

	_, _, err = New(context.Background(), "test-broken", BackendSettings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")

	_, _, err = New(context.Background(), "does-not-exist", BackendSettings{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrRecognizerNotFound))
}
