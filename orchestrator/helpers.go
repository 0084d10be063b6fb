package orchestrator

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/scene-stealer/scene-eval/analysis"
)

// assemble is the join step: each branch collapses to exactly one score.
func (p *Pipeline) assemble(voice, facial analysis.BranchResult) *Result {
	vs, fs := voice.Value(), facial.Value()
	return &Result{
		VoiceScore:  vs,
		FacialScore: fs,
		TotalScore:  p.calc.Total(vs, fs),
		Feedback: Feedback{
			Voice: p.calc.VoiceFeedback(vs),
			Face:  p.calc.FacialFeedback(fs),
		},
		Voice:  voice,
		Facial: facial,
	}
}

func logBranch(logger *log.Entry, r analysis.BranchResult) {
	entry := logger.WithField("stream", r.Stream)
	if r.Failed() {
		entry.WithField("kind", r.Kind()).WithError(r.Err).Warn("stream failed, scoring it as 0")
		return
	}
	entry.WithFields(log.Fields{"score": r.Score, "frames": r.Frames}).Debug("stream scored")
}

// runBranch turns a panic inside a branch into an inference failure for that
// stream so the other branch and the join still complete.
func runBranch(ctx context.Context, stream analysis.Stream, b Branch, videoPath string) (res analysis.BranchResult) {
	defer func() {
		if r := recover(); r != nil {
			res = analysis.BranchResult{
				Stream: stream,
				Err:    &analysis.BranchError{Stream: stream, Kind: analysis.InferenceFailure, Err: fmt.Errorf("panic: %v", r)},
			}
		}
	}()
	res = b.Analyze(ctx, videoPath)
	if res.Stream == "" {
		res.Stream = stream
	}
	return res
}
