package speech

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "speech-kit/internal/app/errors"
)

// BackendSettings configures a recognizer backend.
type BackendSettings struct {
	APIKey          string        `yaml:"api_key"`
	CredentialsFile string        `yaml:"credentials_file"`
	Endpoint        string        `yaml:"endpoint"`
	Model           string        `yaml:"model"`
	Timeout         time.Duration `yaml:"timeout"`
}

// Creator builds a Recognizer from settings. The returned close function
// releases the underlying client and may be nil.
type Creator func(ctx context.Context, settings BackendSettings) (Recognizer, func() error, error)

var (
	backends   = make(map[string]Creator)
	backendsMu sync.RWMutex
)

// Register makes a backend available under name. Backends call it from init.
func Register(name string, creator Creator) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = creator
}

// New builds the named backend.
func New(ctx context.Context, name string, settings BackendSettings) (Recognizer, func() error, error) {
	backendsMu.RLock()
	creator, ok := backends[name]
	backendsMu.RUnlock()

	if !ok {
		return nil, nil, apperrors.WithDetail(apperrors.ErrRecognizerNotFound, "recognizer %q is not registered (available: %v)", name, Backends())
	}

	recognizer, closeFn, err := creator(ctx, settings)
	if err != nil {
		return nil, nil, apperrors.Wrapf(err, "failed to create %s recognizer", name)
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return recognizer, closeFn, nil
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
