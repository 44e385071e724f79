package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
)

// PathKind classifies a converter target.
type PathKind int

const (
	PathInvalid PathKind = iota
	PathFile
	PathDir
)

// Classify reports whether path is a regular file, a directory, or neither.
func Classify(path string) PathKind {
	info, err := os.Stat(path)
	if err != nil {
		return PathInvalid
	}
	switch {
	case info.IsDir():
		return PathDir
	case info.Mode().IsRegular():
		return PathFile
	default:
		return PathInvalid
	}
}

// HasExtension compares the extension of name against ext, ignoring case.
func HasExtension(name string, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// FindAudioFiles lists the files directly inside dir whose extension matches
// ext, oldest first. Subdirectories are not walked.
func FindAudioFiles(dir string, ext string) ([]model.AudioFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read input directory %s", dir)
	}

	matching := lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		return !entry.IsDir() && HasExtension(entry.Name(), ext)
	})

	audioFiles := make([]model.AudioFile, 0, len(matching))
	for _, entry := range matching {
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		audioFiles = append(audioFiles, model.AudioFile{
			FullPath: filepath.Join(dir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	sort.SliceStable(audioFiles, func(i, j int) bool {
		return audioFiles[i].ModTime.Before(audioFiles[j].ModTime)
	})

	return audioFiles, nil
}

// GetAbsolutePath resolves path against the working directory; an empty path
// means the working directory itself.
func GetAbsolutePath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}
	return filepath.Abs(path)
}

// FileSize returns the size of path in bytes, or 0 if it cannot be read.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
