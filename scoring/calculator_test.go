package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	var c Calculator
	cases := []struct {
		voice, facial, want float64
	}{
		{95, 85, 89},
		{50, 50, 50},
		{0, 70, 42},
		{80, 0, 32},
		{0, 0, 0},
		{100, 100, 100},
		{72.3, 64.9, 67.9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Total(tc.voice, tc.facial), "voice=%v facial=%v", tc.voice, tc.facial)
	}
}

func TestTotalMatchesWeightedRound(t *testing.T) {
	var c Calculator
	for v := 0.0; v <= 100; v += 7.3 {
		for f := 0.0; f <= 100; f += 5.9 {
			raw := v*0.4 + f*0.6
			got := c.Total(v, f)
			assert.InDelta(t, raw, got, 0.05+1e-9)
			assert.InDelta(t, math.Round(got*10), got*10, 1e-9)
		}
	}
	assert.InDelta(t, 1.0, VoiceWeight+FacialWeight, 1e-12)
}

func TestRound1Ties(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.25, 0.2},
		{0.75, 0.8},
		{0.35, 0.3}, // stored just below the tie
		{0.45, 0.5}, // stored just above the tie
		{25.05, 25.1},
		{67.86, 67.9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round1(tc.in), "Round1(%v)", tc.in)
	}

	var c Calculator
	assert.Equal(t, 0.2, c.Total(0.625, 0))
	assert.Equal(t, 0.8, c.Total(1.875, 0))
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{0, TierLow},
		{59.99, TierLow},
		{60, TierDecent},
		{69.9, TierDecent},
		{70, TierGood},
		{79.99, TierGood},
		{80, TierGreat},
		{89.9, TierGreat},
		{90, TierExcellent},
		{100, TierExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierOf(tc.score), "score %v", tc.score)
	}
}

func TestFeedback(t *testing.T) {
	var c Calculator

	assert.Equal(t, "Outstanding vocal performance! Perfect emotional delivery", c.VoiceFeedback(95))
	assert.Equal(t, "Great vocal emotion match with the scene", c.VoiceFeedback(80))
	assert.Equal(t, "Good pitch and tone, keep practicing the emotional delivery", c.VoiceFeedback(75))
	assert.Equal(t, "Decent effort, try to express more emotion in your voice", c.VoiceFeedback(60))
	assert.Equal(t, "Focus on matching the emotional tone of the scene with your voice", c.VoiceFeedback(50))

	assert.Equal(t, "Perfect facial expressions! You nailed the scene's emotions", c.FacialFeedback(90))
	assert.Equal(t, "Excellent facial acting, very expressive", c.FacialFeedback(89.9))
	assert.Equal(t, "Good facial expressions, keep working on emotional range", c.FacialFeedback(70))
	assert.Equal(t, "Need more dramatic expressions to match the scene", c.FacialFeedback(65))
	assert.Equal(t, "Try to convey more emotion through your facial expressions", c.FacialFeedback(0))
}

func TestFeedbackDependsOnlyOnTier(t *testing.T) {
	var c Calculator
	for s := 0.0; s <= 100; s += 0.5 {
		for o := 0.0; o <= 100; o += 0.5 {
			if TierOf(s) != TierOf(o) {
				continue
			}
			assert.Equal(t, c.VoiceFeedback(s), c.VoiceFeedback(o))
			assert.Equal(t, c.FacialFeedback(s), c.FacialFeedback(o))
		}
	}
}
