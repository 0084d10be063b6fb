package analysis

import (
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/scene-stealer/scene-eval/media"
)

// FrameScorer maps one frame to a 0-100 score.
type FrameScorer func(media.Frame) (float64, error)

// ClipScore is the reduction of a frame sequence.
type ClipScore struct {
	Mean   float64
	Frames int
	// DecodeErr is set when decoding stopped early after at least one frame.
	DecodeErr error
}

// Aggregate walks the whole frame sequence once, scoring each frame, and
// returns the arithmetic mean. An empty sequence has mean 0. A decode error
// before the first frame is an extraction failure; a scorer error aborts
// the clip as an inference failure.
func Aggregate(frames iter.Seq2[media.Frame, error], score FrameScorer) (ClipScore, error) {
	var (
		sum float64
		out ClipScore
	)
	for frame, err := range frames {
		if err != nil {
			if out.Frames == 0 {
				return ClipScore{}, &BranchError{Stream: StreamFacial, Kind: ExtractionFailure, Err: err}
			}
			out.DecodeErr = err
			log.WithField("frames", out.Frames).WithError(err).Warn("frame decoding stopped early, keeping partial clip")
			break
		}
		s, err := score(frame)
		if err != nil {
			return ClipScore{}, err
		}
		sum += s
		out.Frames++
	}
	if out.Frames > 0 {
		out.Mean = sum / float64(out.Frames)
	}
	return out, nil
}
