package clients

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/scene-stealer/scene-eval/features"
)

var ErrNoOutput = errors.New("facial model: output read before invoke")

// FacialModel follows a set-input / invoke / read-output protocol. The
// input instance and output buffer are allocated once and rebound for every
// frame, so one FacialModel must not be driven from two goroutines at once.
type FacialModel struct {
	http  *HTTP
	url   string
	model string

	input  [][][]float32 // 48 x 48 x 1, batch dimension added on send
	output []float64
	ready  bool
}

func NewFacialModel(h *HTTP, url, model string) *FacialModel {
	input := make([][][]float32, features.FaceSize)
	for y := range input {
		input[y] = make([][]float32, features.FaceSize)
		for x := range input[y] {
			input[y][x] = make([]float32, 1)
		}
	}
	return &FacialModel{http: h, url: url, model: model, input: input}
}

func (f *FacialModel) SetInput(t features.Tensor) error {
	want := []int{1, features.FaceSize, features.FaceSize, 1}
	if !slices.Equal(t.Shape, want) || len(t.Data) != t.Len() {
		return fmt.Errorf("facial model wants tensor %v, got %v with %d values", want, t.Shape, len(t.Data))
	}
	for y := range f.input {
		row := t.Data[y*features.FaceSize : (y+1)*features.FaceSize]
		for x, v := range row {
			f.input[y][x][0] = v
		}
	}
	f.ready = false
	return nil
}

func (f *FacialModel) Invoke(ctx context.Context) error {
	out, err := f.http.Predict(ctx, f.url, f.model, f.input)
	if err != nil {
		f.ready = false
		return err
	}
	f.output = append(f.output[:0], out...)
	f.ready = true
	return nil
}

func (f *FacialModel) Output() ([]float64, error) {
	if !f.ready {
		return nil, ErrNoOutput
	}
	return slices.Clone(f.output), nil
}
