package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Classifier reduces free-form text to a sentiment label
type Classifier interface {
	Classify(ctx context.Context, text string) Label
}

// tagLabels maps the binary classifier tags onto labels
var tagLabels = map[string]Label{
	"POSITIVE": Positive,
	"NEGATIVE": Negative,
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFClassifier calls a Hugging Face text-classification inference endpoint
type HFClassifier struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewHFClassifier creates a classifier for the given endpoint. A nil httpClient
// uses a client with no timeout.
func NewHFClassifier(apiURL, token string, httpClient *http.Client, logger *zap.SugaredLogger) *HFClassifier {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HFClassifier{
		apiURL:     apiURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Classify never fails: any transport, status or payload problem yields Neutral,
// the same value a genuinely neutral text gets.
func (c *HFClassifier) Classify(ctx context.Context, text string) Label {
	scores, err := c.infer(ctx, text)
	if err != nil {
		c.logger.Warnw("sentiment analysis failed, falling back to neutral", "error", err)
		return Neutral
	}
	return reduce(scores)
}

func (c *HFClassifier) infer(ctx context.Context, text string) ([]labelScore, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var result [][]labelScore
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// reduce picks the highest score above zero; ties keep the first pair seen
func reduce(scores []labelScore) Label {
	var best *labelScore
	for i := range scores {
		if scores[i].Score > 0 && (best == nil || scores[i].Score > best.Score) {
			best = &scores[i]
		}
	}
	if best == nil {
		return Neutral
	}
	if label, ok := tagLabels[strings.ToUpper(best.Label)]; ok {
		return label
	}
	return Neutral
}
