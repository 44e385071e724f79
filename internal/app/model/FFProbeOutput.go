package model

type FFProbeOutput struct {
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecName     string `json:"codec_name"`
		SampleRate    int    `json:"sample_rate,string"`
		Channels      int    `json:"channels"`
		BitsPerSample int    `json:"bits_per_sample"`
	} `json:"streams"`
}

// AudioFormat returns the format of the first audio stream, or false when the
// probe found none.
func (p FFProbeOutput) AudioFormat() (AudioFormat, bool) {
	for _, stream := range p.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		return AudioFormat{
			Codec:      stream.CodecName,
			SampleRate: stream.SampleRate,
			Channels:   stream.Channels,
			BitDepth:   stream.BitsPerSample,
		}, true
	}
	return AudioFormat{}, false
}
