package orchestrator

import "github.com/scene-stealer/scene-eval/analysis"

type Feedback struct {
	Voice string `json:"voice"`
	Face  string `json:"face"`
}

// Result is the evaluation record handed back to the caller. Only the score
// and feedback fields are serialized.
type Result struct {
	VoiceScore  float64  `json:"voice_emotion_score"`
	FacialScore float64  `json:"facial_emotion_score"`
	TotalScore  float64  `json:"total_score"`
	Feedback    Feedback `json:"feedback"`

	SceneID string                `json:"-"`
	Voice   analysis.BranchResult `json:"-"`
	Facial  analysis.BranchResult `json:"-"`
}

// BranchReport is the serializable view of one branch outcome.
type BranchReport struct {
	Stream string  `json:"stream"`
	Score  float64 `json:"score"`
	Frames int     `json:"frames,omitempty"`
	Kind   string  `json:"failure_kind,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func reportOf(r analysis.BranchResult) BranchReport {
	out := BranchReport{Stream: string(r.Stream), Score: r.Value(), Frames: r.Frames}
	if r.Failed() {
		out.Kind = r.Kind().String()
		out.Error = r.Err.Error()
	}
	return out
}
