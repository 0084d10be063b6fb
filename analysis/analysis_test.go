package analysis

import (
	"context"
	"errors"
	"image"
	"iter"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/scene-stealer/scene-eval/analysis/mocks"
	"github.com/scene-stealer/scene-eval/features"
	"github.com/scene-stealer/scene-eval/media"
)

func TestDistributionScore(t *testing.T) {
	s, err := DistributionScore([]float64{0.1, 0.85, 0.05})
	require.NoError(t, err)
	assert.InDelta(t, 85.0, s, 1e-9)

	s, err = DistributionScore([]float64{3.2})
	require.NoError(t, err)
	assert.Equal(t, 100.0, s)

	s, err = DistributionScore([]float64{-0.5, -0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	_, err = DistributionScore(nil)
	require.ErrorIs(t, err, ErrEmptyDistribution)
	_, err = DistributionScore([]float64{math.NaN()})
	require.Error(t, err)
}

func TestAggregateMean(t *testing.T) {
	scores := []float64{70, 80, 90}
	clip, err := Aggregate(frameSeq(len(scores), nil), func(f media.Frame) (float64, error) {
		return scores[f.Index], nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, clip.Frames)
	assert.InDelta(t, 80.0, clip.Mean, 1e-9)
	assert.NoError(t, clip.DecodeErr)
}

func TestAggregateEmptyIsZero(t *testing.T) {
	clip, err := Aggregate(frameSeq(0, nil), func(media.Frame) (float64, error) {
		t.Fatal("scorer called on empty sequence")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, clip.Frames)
	assert.Equal(t, 0.0, clip.Mean)
	assert.False(t, math.IsNaN(clip.Mean))
}

func TestAggregateDecodeErrors(t *testing.T) {
	decodeErr := errors.New("corrupt packet")

	t.Run("before first frame", func(t *testing.T) {
		_, err := Aggregate(frameSeq(0, decodeErr), constScore(50))
		require.ErrorIs(t, err, &BranchError{Stream: StreamFacial, Kind: ExtractionFailure})
		require.ErrorIs(t, err, decodeErr)
	})

	t.Run("after frames", func(t *testing.T) {
		clip, err := Aggregate(frameSeq(4, decodeErr), constScore(60))
		require.NoError(t, err)
		assert.Equal(t, 4, clip.Frames)
		assert.Equal(t, 60.0, clip.Mean)
		assert.ErrorIs(t, clip.DecodeErr, decodeErr)
	})
}

func TestAggregateScorerErrorStopsSequence(t *testing.T) {
	pulled := 0
	seq := func(yield func(media.Frame, error) bool) {
		for i := 0; i < 10; i++ {
			pulled++
			if !yield(media.Frame{Index: i}, nil) {
				return
			}
		}
	}
	boom := errors.New("invoke failed")
	_, err := Aggregate(seq, func(f media.Frame) (float64, error) {
		if f.Index == 2 {
			return 0, boom
		}
		return 10, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, pulled)
}

func TestVoiceAnalyzer(t *testing.T) {
	ctx := context.Background()

	t.Run("scores and removes artifact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audio := mocks.NewMockAudioExtractor(ctrl)
		model := mocks.NewMockVoiceModel(ctrl)

		path := writeSine(t, 4410, 22050)
		audio.EXPECT().Extract(ctx, "clip.mp4").Return(media.NewAudioArtifact(path), nil)
		model.EXPECT().Predict(ctx, gomock.Len(features.NumCoefficients)).Return([]float64{0.2, 0.8}, nil)

		res := NewVoiceAnalyzer(audio, model).Analyze(ctx, "clip.mp4")
		require.NoError(t, res.Err)
		assert.Equal(t, StreamVoice, res.Stream)
		assert.InDelta(t, 80.0, res.Score, 1e-9)
		assert.NoFileExists(t, path)
	})

	t.Run("extraction failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audio := mocks.NewMockAudioExtractor(ctrl)
		model := mocks.NewMockVoiceModel(ctrl)

		audio.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(nil, errors.New("no audio stream"))

		res := NewVoiceAnalyzer(audio, model).Analyze(ctx, "clip.mp4")
		assert.True(t, res.Failed())
		assert.Equal(t, ExtractionFailure, res.Kind())
		assert.Equal(t, 0.0, res.Value())
	})

	t.Run("empty waveform short-circuits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audio := mocks.NewMockAudioExtractor(ctrl)
		model := mocks.NewMockVoiceModel(ctrl)

		path := filepath.Join(t.TempDir(), "empty.wav")
		require.NoError(t, media.WriteWAVFile(path, nil, 22050))
		audio.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(media.NewAudioArtifact(path), nil)

		res := NewVoiceAnalyzer(audio, model).Analyze(ctx, "clip.mp4")
		assert.Equal(t, ExtractionFailure, res.Kind())
		assert.ErrorIs(t, res.Err, ErrNoAudio)
		assert.NoFileExists(t, path)
	})

	t.Run("inference failure still removes artifact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audio := mocks.NewMockAudioExtractor(ctrl)
		model := mocks.NewMockVoiceModel(ctrl)

		path := writeSine(t, 2048, 16000)
		audio.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(media.NewAudioArtifact(path), nil)
		model.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(nil, errors.New("model offline"))

		res := NewVoiceAnalyzer(audio, model).Analyze(ctx, "clip.mp4")
		assert.Equal(t, InferenceFailure, res.Kind())
		assert.Equal(t, 0.0, res.Value())
		assert.NoFileExists(t, path)
	})

	t.Run("undecodable artifact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		audio := mocks.NewMockAudioExtractor(ctrl)
		model := mocks.NewMockVoiceModel(ctrl)

		path := filepath.Join(t.TempDir(), "junk.wav")
		require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))
		audio.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(media.NewAudioArtifact(path), nil)

		res := NewVoiceAnalyzer(audio, model).Analyze(ctx, "clip.mp4")
		assert.Equal(t, ExtractionFailure, res.Kind())
		assert.NoFileExists(t, path)
	})
}

func TestFacialAnalyzer(t *testing.T) {
	ctx := context.Background()

	t.Run("mean of frame scores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		frames := mocks.NewMockFrameSource(ctrl)
		model := mocks.NewMockFacialModel(ctrl)

		frames.EXPECT().Frames(ctx, "clip.mp4").Return(frameSeq(10, nil))
		model.EXPECT().SetInput(gomock.Any()).DoAndReturn(func(in features.Tensor) error {
			assert.Equal(t, []int{1, features.FaceSize, features.FaceSize, 1}, in.Shape)
			assert.Len(t, in.Data, features.FaceSize*features.FaceSize)
			return nil
		}).Times(10)
		model.EXPECT().Invoke(ctx).Return(nil).Times(10)
		model.EXPECT().Output().Return([]float64{0.7, 0.3}, nil).Times(10)

		res := NewFacialAnalyzer(frames, model).Analyze(ctx, "clip.mp4")
		require.NoError(t, res.Err)
		assert.Equal(t, 10, res.Frames)
		assert.InDelta(t, 70.0, res.Score, 1e-9)
	})

	t.Run("no frames", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		frames := mocks.NewMockFrameSource(ctrl)
		model := mocks.NewMockFacialModel(ctrl)

		frames.EXPECT().Frames(gomock.Any(), gomock.Any()).Return(frameSeq(0, nil))

		res := NewFacialAnalyzer(frames, model).Analyze(ctx, "clip.mp4")
		require.NoError(t, res.Err)
		assert.Equal(t, 0.0, res.Score)
	})

	t.Run("invoke failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		frames := mocks.NewMockFrameSource(ctrl)
		model := mocks.NewMockFacialModel(ctrl)

		frames.EXPECT().Frames(gomock.Any(), gomock.Any()).Return(frameSeq(5, nil))
		model.EXPECT().SetInput(gomock.Any()).Return(nil)
		model.EXPECT().Invoke(gomock.Any()).Return(errors.New("interpreter crashed"))

		res := NewFacialAnalyzer(frames, model).Analyze(ctx, "clip.mp4")
		assert.Equal(t, InferenceFailure, res.Kind())
		assert.Equal(t, 0.0, res.Value())
	})

	t.Run("unreadable video track", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		frames := mocks.NewMockFrameSource(ctrl)
		model := mocks.NewMockFacialModel(ctrl)

		frames.EXPECT().Frames(gomock.Any(), gomock.Any()).Return(frameSeq(0, errors.New("moov atom not found")))

		res := NewFacialAnalyzer(frames, model).Analyze(ctx, "clip.mp4")
		assert.Equal(t, ExtractionFailure, res.Kind())
	})
}

func TestBranchResult(t *testing.T) {
	ok := BranchResult{Stream: StreamVoice, Score: 42}
	assert.False(t, ok.Failed())
	assert.Equal(t, NoFailure, ok.Kind())
	assert.Equal(t, 42.0, ok.Value())

	bad := fail(StreamFacial, FeatureFailure, errors.New("x"))
	assert.Equal(t, FeatureFailure, bad.Kind())
	assert.Equal(t, "facial feature failure: x", bad.Err.Error())
	assert.Equal(t, "inference", InferenceFailure.String())
}

// frameSeq yields n blank frames, then tail if non-nil.
func frameSeq(n int, tail error) iter.Seq2[media.Frame, error] {
	return func(yield func(media.Frame, error) bool) {
		for i := 0; i < n; i++ {
			if !yield(media.Frame{Index: i, Image: image.NewRGBA(image.Rect(0, 0, 8, 8))}, nil) {
				return
			}
		}
		if tail != nil {
			yield(media.Frame{}, tail)
		}
	}
}

func constScore(v float64) FrameScorer {
	return func(media.Frame) (float64, error) { return v, nil }
}

func writeSine(t *testing.T, n, rate int) string {
	t.Helper()
	s := make([]float64, n)
	for i := range s {
		s[i] = 0.3 * math.Sin(2*math.Pi*220*float64(i)/float64(rate))
	}
	path := filepath.Join(t.TempDir(), "voice.wav")
	require.NoError(t, media.WriteWAVFile(path, s, rate))
	return path
}
