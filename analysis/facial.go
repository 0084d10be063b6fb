package analysis

import (
	"context"
	"iter"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/scene-stealer/scene-eval/features"
	"github.com/scene-stealer/scene-eval/media"
)

//go:generate mockgen -source=facial.go -destination=mocks/mock_facial.go -package=mocks

type FrameSource interface {
	Frames(ctx context.Context, videoPath string) iter.Seq2[media.Frame, error]
}

// FacialModel is a stateful inference session: bind an input, run it, then
// read the activations. Implementations need not be safe for concurrent use.
type FacialModel interface {
	SetInput(t features.Tensor) error
	Invoke(ctx context.Context) error
	Output() ([]float64, error)
}

// FacialAnalyzer owns one FacialModel and serializes every clip through it.
type FacialAnalyzer struct {
	frames FrameSource

	mu    sync.Mutex
	model FacialModel
}

func NewFacialAnalyzer(frames FrameSource, model FacialModel) *FacialAnalyzer {
	return &FacialAnalyzer{frames: frames, model: model}
}

func (a *FacialAnalyzer) Analyze(ctx context.Context, videoPath string) BranchResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	clip, err := Aggregate(a.frames.Frames(ctx, videoPath), a.scoreFrame(ctx))
	if err != nil {
		if be, ok := err.(*BranchError); ok {
			return BranchResult{Stream: StreamFacial, Err: be}
		}
		return fail(StreamFacial, InferenceFailure, err)
	}
	log.WithFields(log.Fields{
		"stream": StreamFacial,
		"video":  videoPath,
		"frames": clip.Frames,
		"mean":   clip.Mean,
	}).Debug("facial clip scored")
	return BranchResult{Stream: StreamFacial, Score: clip.Mean, Frames: clip.Frames}
}

// scoreFrame runs one frame through the bound model. Callers hold a.mu.
func (a *FacialAnalyzer) scoreFrame(ctx context.Context) FrameScorer {
	return func(f media.Frame) (float64, error) {
		if err := a.model.SetInput(features.NormalizeFrame(f.Image)); err != nil {
			return 0, err
		}
		if err := a.model.Invoke(ctx); err != nil {
			return 0, err
		}
		dist, err := a.model.Output()
		if err != nil {
			return 0, err
		}
		return DistributionScore(dist)
	}
}
