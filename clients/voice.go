package clients

import (
	"context"
	"fmt"
)

// VoiceModel scores a 13-coefficient MFCC summary. It holds no per-call
// state and may be shared across goroutines.
type VoiceModel struct {
	http  *HTTP
	url   string
	model string
	dim   int
}

func NewVoiceModel(h *HTTP, url, model string, dim int) *VoiceModel {
	return &VoiceModel{http: h, url: url, model: model, dim: dim}
}

func (v *VoiceModel) Predict(ctx context.Context, features []float64) ([]float64, error) {
	if v.dim > 0 && len(features) != v.dim {
		return nil, fmt.Errorf("voice model wants %d features, got %d", v.dim, len(features))
	}
	return v.http.Predict(ctx, v.url, v.model, features)
}
