package scoring

import "strconv"

// Clip-level weights for the total score. They sum to 1.
const (
	VoiceWeight  = 0.4
	FacialWeight = 0.6
)

type Tier int

const (
	TierLow       Tier = iota // below 60
	TierDecent                // 60-69
	TierGood                  // 70-79
	TierGreat                 // 80-89
	TierExcellent             // 90 and up
)

var tierFloors = []struct {
	min  float64
	tier Tier
}{
	{90, TierExcellent},
	{80, TierGreat},
	{70, TierGood},
	{60, TierDecent},
}

var voiceFeedback = [...]string{
	TierLow:       "Focus on matching the emotional tone of the scene with your voice",
	TierDecent:    "Decent effort, try to express more emotion in your voice",
	TierGood:      "Good pitch and tone, keep practicing the emotional delivery",
	TierGreat:     "Great vocal emotion match with the scene",
	TierExcellent: "Outstanding vocal performance! Perfect emotional delivery",
}

var facialFeedback = [...]string{
	TierLow:       "Try to convey more emotion through your facial expressions",
	TierDecent:    "Need more dramatic expressions to match the scene",
	TierGood:      "Good facial expressions, keep working on emotional range",
	TierGreat:     "Excellent facial acting, very expressive",
	TierExcellent: "Perfect facial expressions! You nailed the scene's emotions",
}

// Calculator is stateless; the zero value is ready to use.
type Calculator struct{}

// Total is the weighted sum rounded to one decimal place.
func (Calculator) Total(voice, facial float64) float64 {
	return Round1(voice*VoiceWeight + facial*FacialWeight)
}

func (Calculator) VoiceFeedback(score float64) string { return voiceFeedback[TierOf(score)] }

func (Calculator) FacialFeedback(score float64) string { return facialFeedback[TierOf(score)] }

// TierOf picks the highest band whose inclusive floor score reaches.
func TierOf(score float64) Tier {
	for _, f := range tierFloors {
		if score >= f.min {
			return f.tier
		}
	}
	return TierLow
}

// Round1 rounds to one decimal using the exact binary value of v, so only
// true ties are settled, and those go to the even digit.
func Round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
