package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the sibling AI generation service that produces images
// and audio for video templates.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type ImageRequest struct {
	Prompt       string `json:"prompt"`
	Theme        string `json:"theme,omitempty"`
	ArtStyle     string `json:"art_style,omitempty"`
	AspectRatio  string `json:"aspect_ratio,omitempty"`
	Template     string `json:"template,omitempty"`
	ChildName    string `json:"child_name,omitempty"`
	TargetLetter string `json:"target_letter,omitempty"`
	ImageType    string `json:"image_type,omitempty"`
}

type AudioRequest struct {
	Script       string  `json:"script"`
	Voice        string  `json:"voice,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	Template     string  `json:"template,omitempty"`
	ChildName    string  `json:"child_name,omitempty"`
	TargetLetter string  `json:"target_letter,omitempty"`
	AssetPurpose string  `json:"asset_purpose,omitempty"`
}

type GenerateResponse struct {
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generated_at"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateImage requests one image and returns its URL. The generation
// service is synchronous for single assets.
func (c *Client) GenerateImage(req ImageRequest) (string, error) {
	result, err := c.post("/images/generate", req)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// GenerateAudio requests one audio clip and returns its URL.
func (c *Client) GenerateAudio(req AudioRequest) (string, error) {
	result, err := c.post("/audio/generate", req)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

func (c *Client) post(path string, payload interface{}) (*GenerateResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + path
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if result.URL == "" {
		return nil, fmt.Errorf("url is empty in response, body: %s", string(body))
	}

	return &result, nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
