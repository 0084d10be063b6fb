package features

import (
	"math"
	"sync"

	"github.com/scene-stealer/scene-eval/media"
)

// SampleRate is the rate voice features are computed at. Waveforms at any
// other rate are resampled first.
const SampleRate = 22050

// Band-limited sinc interpolation with a Kaiser-windowed kernel, tabulated
// at 2^tablePrecision points per zero crossing.
const (
	kernelZeros    = 64
	tablePrecision = 9
	kernelRolloff  = 0.9475937167399596
	kaiserBeta     = 14.769656459379492
)

var (
	kernelOnce  sync.Once
	kernelTable []float64
)

func sincKernel() []float64 {
	kernelOnce.Do(func() {
		n := (1 << tablePrecision) * kernelZeros
		norm := besselI0(kaiserBeta)
		kernelTable = make([]float64, n+1)
		for j := range kernelTable {
			x := kernelZeros * float64(j) / float64(n)
			s := kernelRolloff
			if x != 0 {
				s = math.Sin(math.Pi*kernelRolloff*x) / (math.Pi * x)
			}
			u := float64(j) / float64(n)
			w := besselI0(kaiserBeta*math.Sqrt(math.Max(0, 1-u*u))) / norm
			kernelTable[j] = s * w
		}
	})
	return kernelTable
}

// besselI0 is the zeroth-order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	for k := 1; ; k++ {
		h := x / float64(2*k)
		term *= h * h
		sum += term
		if term < 1e-17*sum {
			return sum
		}
	}
}

// Resample converts wf to rate. The output has ceil(len*rate/wf.SampleRate)
// samples. A waveform already at rate is returned as is.
func Resample(wf *media.Waveform, rate int) *media.Waveform {
	if wf.SampleRate == rate || len(wf.Samples) == 0 {
		return wf
	}
	x := wf.Samples
	ratio := float64(rate) / float64(wf.SampleRate)
	scale := math.Min(1, ratio)

	table := sincKernel()
	win := make([]float64, len(table))
	for i, v := range table {
		win[i] = scale * v
	}
	delta := make([]float64, len(win))
	for i := 0; i < len(win)-1; i++ {
		delta[i] = win[i+1] - win[i]
	}

	bits := float64(int(1) << tablePrecision)
	step := int(scale * bits)
	nwin := len(win)
	out := make([]float64, (len(x)*rate+wf.SampleRate-1)/wf.SampleRate)
	for t := range out {
		pos := float64(t) * float64(wf.SampleRate) / float64(rate)
		n := int(pos)
		var acc float64

		// left wing, including x[n]
		idx := scale * (pos - float64(n)) * bits
		off := int(idx)
		eta := idx - float64(off)
		for i := 0; i < min(n+1, (nwin-off)/step); i++ {
			j := off + i*step
			acc += (win[j] + eta*delta[j]) * x[n-i]
		}

		// right wing
		idx = (scale - scale*(pos-float64(n))) * bits
		off = int(idx)
		eta = idx - float64(off)
		for k := 0; k < min(len(x)-n-1, (nwin-off)/step); k++ {
			j := off + k*step
			acc += (win[j] + eta*delta[j]) * x[n+k+1]
		}
		out[t] = acc
	}
	return &media.Waveform{Samples: out, SampleRate: rate}
}
