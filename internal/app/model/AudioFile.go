package model

import "time"

// AudioFormat describes the sample layout of an audio stream.
type AudioFormat struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// TargetFormat is what the converter produces and the recognizer expects:
// 16kHz mono 16-bit signed little-endian PCM.
var TargetFormat = AudioFormat{
	Codec:      "pcm_s16le",
	SampleRate: 16000,
	Channels:   1,
	BitDepth:   16,
}

// Matches reports whether f has the same sample layout as other. An empty
// codec on either side is not compared.
func (f AudioFormat) Matches(other AudioFormat) bool {
	if f.Codec != "" && other.Codec != "" && f.Codec != other.Codec {
		return false
	}
	return f.SampleRate == other.SampleRate &&
		f.Channels == other.Channels &&
		f.BitDepth == other.BitDepth
}

type AudioFile struct {
	FullPath string
	ModTime  time.Time
	Name     string
}
