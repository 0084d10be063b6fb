package features

import (
	"math"
	"math/bits"
)

// fftPlan is an in-place radix-2 Cooley-Tukey transform with precomputed
// twiddle factors and bit-reversal table. n must be a power of two.
type fftPlan struct {
	n       int
	twiddle []complex128
	rev     []int
}

func newFFTPlan(n int) *fftPlan {
	if n <= 0 || n&(n-1) != 0 {
		panic("fft size must be a power of two")
	}
	p := &fftPlan{n: n, twiddle: make([]complex128, n/2), rev: make([]int, n)}
	for k := range p.twiddle {
		angle := -2 * math.Pi * float64(k) / float64(n)
		p.twiddle[k] = complex(math.Cos(angle), math.Sin(angle))
	}
	shift := bits.UintSize - bits.Len(uint(n-1))
	for i := range p.rev {
		p.rev[i] = int(bits.Reverse(uint(i)) >> shift)
	}
	return p
}

// transform overwrites buf with its DFT.
func (p *fftPlan) transform(buf []complex128) {
	for i, j := range p.rev {
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	for size := 2; size <= p.n; size <<= 1 {
		half := size / 2
		step := p.n / size
		for start := 0; start < p.n; start += size {
			for k := 0; k < half; k++ {
				t := p.twiddle[k*step] * buf[start+k+half]
				buf[start+k+half] = buf[start+k] - t
				buf[start+k] += t
			}
		}
	}
}
