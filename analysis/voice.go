package analysis

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/scene-stealer/scene-eval/features"
	"github.com/scene-stealer/scene-eval/media"
)

//go:generate mockgen -source=voice.go -destination=mocks/mock_voice.go -package=mocks

var ErrNoAudio = errors.New("audio track decoded to zero samples")

type AudioExtractor interface {
	Extract(ctx context.Context, videoPath string) (*media.AudioArtifact, error)
}

// VoiceModel maps a feature vector to a class-activation distribution.
type VoiceModel interface {
	Predict(ctx context.Context, features []float64) ([]float64, error)
}

type VoiceAnalyzer struct {
	audio AudioExtractor
	model VoiceModel
}

func NewVoiceAnalyzer(audio AudioExtractor, model VoiceModel) *VoiceAnalyzer {
	return &VoiceAnalyzer{audio: audio, model: model}
}

// Analyze scores the vocal track. The extracted WAV is removed before
// Analyze returns on every path.
func (a *VoiceAnalyzer) Analyze(ctx context.Context, videoPath string) BranchResult {
	logger := log.WithFields(log.Fields{"stream": StreamVoice, "video": videoPath})

	art, err := a.audio.Extract(ctx, videoPath)
	if err != nil {
		return fail(StreamVoice, ExtractionFailure, err)
	}
	defer func() {
		if err := art.Remove(); err != nil {
			logger.WithError(err).Warn("could not remove audio artifact")
		}
	}()

	wf, err := art.Decode()
	if err != nil {
		return fail(StreamVoice, ExtractionFailure, err)
	}
	if len(wf.Samples) == 0 {
		return fail(StreamVoice, ExtractionFailure, ErrNoAudio)
	}
	logger.WithFields(log.Fields{
		"sample_rate": wf.SampleRate,
		"duration":    wf.Duration().String(),
	}).Debug("audio decoded")

	feats, err := features.MFCCMean(wf)
	if err != nil {
		return fail(StreamVoice, FeatureFailure, err)
	}

	dist, err := a.model.Predict(ctx, feats)
	if err != nil {
		return fail(StreamVoice, InferenceFailure, err)
	}
	score, err := DistributionScore(dist)
	if err != nil {
		return fail(StreamVoice, InferenceFailure, err)
	}
	return BranchResult{Stream: StreamVoice, Score: score}
}
