package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Config configures the Gemini client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateJSON implements Generator. There is no retry: a failed call is reported once.
func (c *Client) GenerateJSON(ctx context.Context, req Request, out interface{}) (err error) {
	started := time.Now()
	defer func() { observe(req.Flow, started, err) }()

	if c.apiKey == "" {
		return ErrNotConfigured
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		},
		SafetySettings: req.Safety,
	}

	var result generateResponse
	var failure apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/models/{model}:generateContent")
	if err != nil {
		logrus.WithError(err).WithField("flow", req.Flow).Error("Generative service request failed")
		return fmt.Errorf("generative service request failed: %w", err)
	}
	if resp.IsError() {
		logrus.WithFields(logrus.Fields{
			"flow":   req.Flow,
			"status": resp.StatusCode(),
			"reason": failure.Error.Message,
		}).Error("Generative service returned an error")
		return fmt.Errorf("generative service returned status %d: %s", resp.StatusCode(), failure.Error.Message)
	}

	text, err := firstText(&result)
	if err != nil {
		logrus.WithError(err).WithField("flow", req.Flow).Warn("Generative service returned no usable candidate")
		return err
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		logrus.WithError(err).WithField("flow", req.Flow).Warn("Generative service returned invalid JSON")
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			logrus.WithError(err).WithField("flow", req.Flow).Warn("Generative reply failed validation")
			if !errors.Is(err, ErrMalformedResponse) {
				err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
			}
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"flow":        req.Flow,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Generative response decoded")
	return nil
}

func firstText(result *generateResponse) (string, error) {
	if reason := result.PromptFeedback.BlockReason; reason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	candidate := result.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, candidate.FinishReason)
	}

	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrMalformedResponse)
	}
	return sb.String(), nil
}
