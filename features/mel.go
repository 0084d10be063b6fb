package features

import (
	"math"
	"sync"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melBreakHz    = 1000.0
	melBreak      = melBreakHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz >= melBreakHz {
		return melBreak + math.Log(hz/melBreakHz)/melLogStep
	}
	return hz / melLinearStep
}

func melToHz(mel float64) float64 {
	if mel >= melBreak {
		return melBreakHz * math.Exp(melLogStep*(mel-melBreak))
	}
	return mel * melLinearStep
}

// melFilter holds the non-zero span of one triangular filter starting at
// FFT bin lo.
type melFilter struct {
	lo      int
	weights []float64
}

var (
	bankMu    sync.Mutex
	bankCache = map[int][]melFilter{}
)

// melFilterBank returns numMels area-normalized triangular filters spanning
// 0 Hz to Nyquist, cached per sample rate.
func melFilterBank(sampleRate int) []melFilter {
	bankMu.Lock()
	defer bankMu.Unlock()
	if bank, ok := bankCache[sampleRate]; ok {
		return bank
	}

	bins := fftSize/2 + 1
	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / fftSize
	}

	maxMel := hzToMel(float64(sampleRate) / 2)
	edges := make([]float64, numMels+2)
	for i := range edges {
		edges[i] = melToHz(maxMel * float64(i) / float64(numMels+1))
	}

	bank := make([]melFilter, numMels)
	for m := range bank {
		left, centre, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)
		var f melFilter
		for k, hz := range freqs {
			lower := (hz - left) / (centre - left)
			upper := (right - hz) / (right - centre)
			w := math.Max(0, math.Min(lower, upper))
			if w == 0 {
				continue
			}
			if f.weights == nil {
				f.lo = k
			}
			// fill any zero gap so weights stay contiguous from lo
			for len(f.weights) < k-f.lo {
				f.weights = append(f.weights, 0)
			}
			f.weights = append(f.weights, w*norm)
		}
		bank[m] = f
	}
	bankCache[sampleRate] = bank
	return bank
}
