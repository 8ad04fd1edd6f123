package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type classifyRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// Client is the HTTP client for the inference service. One Client serves
// every model; ForModel binds it to a single checkpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify asks the inference service to classify text with model. The
// response is validated before it is returned; any transport, decode, or
// score contract violation is an inference failure.
func (c *Client) Classify(ctx context.Context, model string, text string) (Prediction, error) {
	body, err := json.Marshal(classifyRequest{Model: model, Text: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil || len(respBody) == 0 {
			return Prediction{}, fmt.Errorf("inference service returned status %d", resp.StatusCode)
		}
		return Prediction{}, fmt.Errorf("inference service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := pred.Validate(); err != nil {
		return Prediction{}, fmt.Errorf("invalid prediction: %w", err)
	}

	return pred, nil
}

// Health checks the inference service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service not healthy: status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// ForModel binds the client to one model id, satisfying Classifier.
func (c *Client) ForModel(model string) Classifier {
	return &modelClassifier{client: c, model: model}
}

type modelClassifier struct {
	client *Client
	model  string
}

func (m *modelClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	return m.client.Classify(ctx, m.model, text)
}
