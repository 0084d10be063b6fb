package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// --- Model serving (/v1/models/<name>:predict) ---
type PredictReq struct {
	Instances []any `json:"instances"`
}
type PredictResp struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error,omitempty"`
}

func predictURL(base, model string) string {
	return strings.TrimRight(base, "/") + "/v1/models/" + model + ":predict"
}

// Predict posts a batch of one instance and returns the first prediction row.
func (h *HTTP) Predict(ctx context.Context, url, model string, instance any) ([]float64, error) {
	b, err := json.Marshal(PredictReq{Instances: []any{instance}})
	if err != nil {
		return nil, fmt.Errorf("predict %s encode: %w", model, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, predictURL(url, model), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("predict %s %s: %s", model, resp.Status, string(body))
	}

	var out PredictResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("predict %s decode: %w", model, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("predict %s: %s", model, out.Error)
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0]) == 0 {
		return nil, fmt.Errorf("predict %s: empty prediction", model)
	}
	return out.Predictions[0], nil
}
