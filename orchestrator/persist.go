package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type PersistBundle struct {
	SessionID   string         `json:"session_id"`
	SceneID     string         `json:"scene_id"`
	VideoPath   string         `json:"video_path"`
	GeneratedAt time.Time      `json:"generated_at"`
	Result      *Result        `json:"result"`
	Branches    []BranchReport `json:"branches"`
}

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405.000")
	sid := "eval_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Persist writes the result and branch diagnostics to
// <outputsRoot>/eval_<timestamp>/result.json and returns that path.
func Persist(outputsRoot, videoPath string, res *Result) (string, error) {
	sid, outDir, err := mkSessionDir(outputsRoot)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "result.json")
	bundle := PersistBundle{
		SessionID:   sid,
		SceneID:     res.SceneID,
		VideoPath:   videoPath,
		GeneratedAt: time.Now(),
		Result:      res,
		Branches:    []BranchReport{reportOf(res.Voice), reportOf(res.Facial)},
	}
	if err := writeJSON(path, bundle); err != nil {
		return "", err
	}
	return path, nil
}
