package features

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// FaceSize is the side length of the facial model input.
const FaceSize = 48

// Tensor is a dense float32 array in row-major order.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NormalizeFrame resizes a frame to 48x48, converts it to 8-bit luma, and
// scales to [0,1]. The result has shape [1, 48, 48, 1].
//
// The resize samples only the 2x2 source neighbourhood around each pixel
// centre; the kernel is not widened on downscale.
func NormalizeFrame(src image.Image) Tensor {
	small := image.NewRGBA(image.Rect(0, 0, FaceSize, FaceSize))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)

	data := make([]float32, FaceSize*FaceSize)
	for i := range data {
		px := small.Pix[i*4 : i*4+3]
		luma := math.Round(0.299*float64(px[0]) + 0.587*float64(px[1]) + 0.114*float64(px[2]))
		data[i] = float32(math.Min(luma, 255) / 255)
	}
	return Tensor{Shape: []int{1, FaceSize, FaceSize, 1}, Data: data}
}

// Len is the number of elements implied by Shape.
func (t Tensor) Len() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}
