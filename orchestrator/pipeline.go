package orchestrator

import (
	"context"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/scene-stealer/scene-eval/analysis"
	"github.com/scene-stealer/scene-eval/scoring"
)

var ErrArtifactUnreadable = errors.New("video artifact cannot be opened")

// Branch scores one stream of a video and reports failure inside the result.
type Branch interface {
	Analyze(ctx context.Context, videoPath string) analysis.BranchResult
}

type Pipeline struct {
	voice  Branch
	facial Branch
	calc   scoring.Calculator
}

func NewPipeline(voice, facial Branch, calc scoring.Calculator) *Pipeline {
	return &Pipeline{voice: voice, facial: facial, calc: calc}
}

// Evaluate scores a recorded performance. The scene id is carried through to
// the result and logs but does not influence scoring. The only error returned
// is ErrArtifactUnreadable; stream failures degrade that stream to 0.
func (p *Pipeline) Evaluate(ctx context.Context, videoPath, sceneID string) (*Result, error) {
	if err := checkReadable(videoPath); err != nil {
		return nil, err
	}
	logger := log.WithFields(log.Fields{"video": videoPath, "scene_id": sceneID})

	var voice, facial analysis.BranchResult
	var g errgroup.Group
	g.Go(func() error {
		voice = runBranch(ctx, analysis.StreamVoice, p.voice, videoPath)
		return nil
	})
	g.Go(func() error {
		facial = runBranch(ctx, analysis.StreamFacial, p.facial, videoPath)
		return nil
	})
	_ = g.Wait()

	logBranch(logger, voice)
	logBranch(logger, facial)

	res := p.assemble(voice, facial)
	res.SceneID = sceneID
	logger.WithFields(log.Fields{
		"voice_score":  res.VoiceScore,
		"facial_score": res.FacialScore,
		"total_score":  res.TotalScore,
	}).Info("scene evaluated")
	return res, nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(ErrArtifactUnreadable, err.Error())
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return errors.Wrap(ErrArtifactUnreadable, err.Error())
	}
	if st.IsDir() {
		return errors.Wrapf(ErrArtifactUnreadable, "%s is a directory", path)
	}
	return nil
}
