package features

import (
	"errors"
	"math"
	"sync"

	"github.com/scene-stealer/scene-eval/media"
)

const (
	NumCoefficients = 13

	fftSize  = 2048
	hopSize  = 512
	numMels  = 128
	minPower = 1e-10
	topDB    = 80.0
)

var (
	ErrEmptyWaveform = errors.New("waveform has no samples")
	ErrBadSampleRate = errors.New("waveform sample rate must be positive")
)

var (
	planOnce sync.Once
	plan     *fftPlan
	window   []float64
)

func sharedPlan() (*fftPlan, []float64) {
	planOnce.Do(func() {
		plan = newFFTPlan(fftSize)
		window = make([]float64, fftSize)
		for i := range window {
			window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/fftSize)
		}
	})
	return plan, window
}

// MFCCMean summarizes a waveform as the time-average of its 13 mel-frequency
// cepstral coefficients, computed at SampleRate.
func MFCCMean(wf *media.Waveform) ([]float64, error) {
	if wf == nil || len(wf.Samples) == 0 {
		return nil, ErrEmptyWaveform
	}
	if wf.SampleRate <= 0 {
		return nil, ErrBadSampleRate
	}

	wf = Resample(wf, SampleRate)
	mel := melSpectrogram(wf.Samples, wf.SampleRate)
	powerToDB(mel)

	dct := dctMatrix(NumCoefficients, numMels)
	mean := make([]float64, NumCoefficients)
	for _, frame := range mel {
		for k, basis := range dct {
			var c float64
			for m, v := range frame {
				c += basis[m] * v
			}
			mean[k] += c
		}
	}
	for k := range mean {
		mean[k] /= float64(len(mel))
	}
	return mean, nil
}

// melSpectrogram returns one row of numMels band energies per STFT frame.
// Frames are centered: the signal is zero padded by fftSize/2 on both ends.
func melSpectrogram(samples []float64, sampleRate int) [][]float64 {
	p, win := sharedPlan()
	bank := melFilterBank(sampleRate)

	pad := fftSize / 2
	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)
	frames := 1 + (len(padded)-fftSize)/hopSize

	buf := make([]complex128, fftSize)
	power := make([]float64, fftSize/2+1)
	out := make([][]float64, frames)
	for f := 0; f < frames; f++ {
		seg := padded[f*hopSize : f*hopSize+fftSize]
		for i, v := range seg {
			buf[i] = complex(v*win[i], 0)
		}
		p.transform(buf)
		for k := range power {
			re, im := real(buf[k]), imag(buf[k])
			power[k] = re*re + im*im
		}

		row := make([]float64, numMels)
		for m, filter := range bank {
			var e float64
			for k := filter.lo; k < filter.lo+len(filter.weights); k++ {
				e += filter.weights[k-filter.lo] * power[k]
			}
			row[m] = e
		}
		out[f] = row
	}
	return out
}

// powerToDB converts in place to decibels (ref 1.0) and floors every value
// at topDB below the global peak.
func powerToDB(s [][]float64) {
	peak := math.Inf(-1)
	for _, row := range s {
		for i, v := range row {
			db := 10 * math.Log10(math.Max(minPower, v))
			row[i] = db
			peak = math.Max(peak, db)
		}
	}
	floor := peak - topDB
	for _, row := range s {
		for i, v := range row {
			if v < floor {
				row[i] = floor
			}
		}
	}
}

// dctMatrix is the orthonormal DCT-II basis truncated to n rows.
func dctMatrix(n, size int) [][]float64 {
	out := make([][]float64, n)
	for k := range out {
		scale := math.Sqrt(2 / float64(size))
		if k == 0 {
			scale = math.Sqrt(1 / float64(size))
		}
		row := make([]float64, size)
		for i := range row {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(size)))
		}
		out[k] = row
	}
	return out
}
