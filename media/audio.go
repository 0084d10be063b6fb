package media

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AudioExtractor demuxes the first audio track of a video into a PCM WAV
// file. It never resamples.
type AudioExtractor struct {
	ffmpeg  string
	tempDir string
}

func NewAudioExtractor(ffmpegBin, tempDir string) *AudioExtractor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	return &AudioExtractor{ffmpeg: ffmpegBin, tempDir: tempDir}
}

// AudioArtifact is a transient WAV file owned by whoever called Extract.
// Remove must be called once the samples are no longer needed.
type AudioArtifact struct {
	Path string

	once sync.Once
	err  error
}

// NewAudioArtifact wraps an existing WAV file; Remove will delete it.
func NewAudioArtifact(path string) *AudioArtifact {
	return &AudioArtifact{Path: path}
}

func (a *AudioArtifact) Decode() (*Waveform, error) {
	return DecodeWAVFile(a.Path)
}

// Remove deletes the file. Safe to call more than once.
func (a *AudioArtifact) Remove() error {
	a.once.Do(func() {
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			a.err = errors.Wrap(err, "remove audio artifact")
		}
	})
	return a.err
}

func (x *AudioExtractor) Extract(ctx context.Context, videoPath string) (*AudioArtifact, error) {
	dir := x.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	out := filepath.Join(dir, "audio_"+uuid.NewString()+".wav")

	cmd := exec.CommandContext(ctx, x.ffmpeg,
		"-v", "error",
		"-y",
		"-i", videoPath,
		"-vn",
		"-map", "0:a:0",
		"-c:a", "pcm_s16le",
		"-f", "wav",
		out,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(out)
		log.WithFields(log.Fields{
			"video":         videoPath,
			"ffmpeg_output": string(output),
		}).WithError(err).Debug("audio extraction failed")
		return nil, errors.Wrapf(err, "extract audio: %s", string(output))
	}
	return NewAudioArtifact(out), nil
}
