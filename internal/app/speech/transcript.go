package speech

import (
	"strings"

	"github.com/samber/lo"
)

// JoinTranscript concatenates the top hypothesis of every segment that has
// one, separated by single spaces. No segments yields "".
func JoinTranscript(segments []Segment) string {
	texts := lo.FilterMap(segments, func(s Segment, _ int) (string, bool) {
		if len(s.Alternatives) == 0 {
			return "", false
		}
		return s.Alternatives[0].Transcript, true
	})
	return strings.TrimSpace(strings.Join(texts, " "))
}
