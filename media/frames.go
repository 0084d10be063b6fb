package media

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"iter"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrSequenceConsumed = errors.New("frame sequence already consumed")

// Frame is one decoded picture of the video track, in arrival order.
type Frame struct {
	Index int
	Image *image.RGBA
}

// FrameExtractor decodes the first video track of a container into RGB
// frames by piping raw video out of ffmpeg.
type FrameExtractor struct {
	ffmpeg  string
	ffprobe string
}

func NewFrameExtractor(ffmpegBin, ffprobeBin string) *FrameExtractor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &FrameExtractor{ffmpeg: ffmpegBin, ffprobe: ffprobeBin}
}

// Probe returns the display dimensions of stream v:0: the coded size with
// width and height swapped when the stream is rotated by a quarter turn,
// matching what ffmpeg emits with autorotation on.
func (x *FrameExtractor) Probe(ctx context.Context, videoPath string) (int, int, error) {
	cmd := exec.CommandContext(ctx, x.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:stream_tags=rotate:stream_side_data=rotation",
		"-of", "json",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(ee.Stderr))
		}
		return 0, 0, errors.Wrapf(err, "probe video: %s", stderr)
	}
	return parseDimensions(output)
}

type probeOutput struct {
	Streams []struct {
		Width    int `json:"width"`
		Height   int `json:"height"`
		SideData []struct {
			Rotation float64 `json:"rotation"`
		} `json:"side_data_list"`
		Tags struct {
			Rotate string `json:"rotate"`
		} `json:"tags"`
	} `json:"streams"`
}

func parseDimensions(raw []byte) (int, int, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, 0, errors.Wrap(err, "decode probe output")
	}
	if len(out.Streams) == 0 {
		return 0, 0, errors.New("no video stream")
	}
	st := out.Streams[0]
	if st.Width <= 0 || st.Height <= 0 {
		return 0, 0, errors.Errorf("bad dimensions %dx%d", st.Width, st.Height)
	}

	// display matrix side data wins over the legacy rotate tag
	rotation := 0
	if r, err := strconv.Atoi(strings.TrimSpace(st.Tags.Rotate)); err == nil {
		rotation = r
	}
	for _, sd := range st.SideData {
		if sd.Rotation != 0 {
			rotation = int(math.Round(sd.Rotation))
			break
		}
	}
	if quarterTurn(rotation) {
		return st.Height, st.Width, nil
	}
	return st.Width, st.Height, nil
}

func quarterTurn(deg int) bool {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg == 90 || deg == 270
}

// Frames returns a lazy single-use sequence of decoded frames. The decoder
// starts on the first pull and is torn down when the sequence ends, when the
// consumer stops early, or on error. A decode failure is yielded once as the
// final element.
func (x *FrameExtractor) Frames(ctx context.Context, videoPath string) iter.Seq2[Frame, error] {
	var used atomic.Bool
	return func(yield func(Frame, error) bool) {
		if used.Swap(true) {
			yield(Frame{}, ErrSequenceConsumed)
			return
		}

		width, height, err := x.Probe(ctx, videoPath)
		if err != nil {
			yield(Frame{}, err)
			return
		}

		cmd := exec.CommandContext(ctx, x.ffmpeg,
			"-v", "error",
			"-i", videoPath,
			"-map", "0:v:0",
			"-f", "rawvideo",
			"-pix_fmt", "rgb24",
			"pipe:1",
		)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield(Frame{}, errors.Wrap(err, "ffmpeg stdout"))
			return
		}
		if err := cmd.Start(); err != nil {
			yield(Frame{}, errors.Wrap(err, "start ffmpeg"))
			return
		}
		waited := false
		defer func() {
			if waited {
				return
			}
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}()

		reader := bufio.NewReaderSize(stdout, 1<<20)
		buf := make([]byte, width*height*3)
		for i := 0; ; i++ {
			if _, err := io.ReadFull(reader, buf); err != nil {
				if errors.Is(err, io.ErrUnexpectedEOF) {
					log.WithFields(log.Fields{"video": videoPath, "frame": i}).Debug("dropping truncated trailing frame")
				} else if !errors.Is(err, io.EOF) {
					yield(Frame{}, errors.Wrap(err, "read frame"))
					return
				}
				break
			}
			if !yield(Frame{Index: i, Image: rgbToImage(buf, width, height)}, nil) {
				return
			}
		}

		waited = true
		if err := cmd.Wait(); err != nil {
			yield(Frame{}, errors.Wrapf(err, "decode video: %s", strings.TrimSpace(stderr.String())))
		}
	}
}

func rgbToImage(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for src, dst := 0, 0; src < len(buf); src, dst = src+3, dst+4 {
		img.Pix[dst] = buf[src]
		img.Pix[dst+1] = buf[src+1]
		img.Pix[dst+2] = buf[src+2]
		img.Pix[dst+3] = 0xFF
	}
	return img
}
