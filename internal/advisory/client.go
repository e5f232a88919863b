package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds one advisory call. The fail-open contract turns an
// expired deadline into a negative verdict.
const DefaultTimeout = 6 * time.Second

// ClientConfig configures the HTTP advisory client.
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Client calls a Gemini-style generateContent endpoint and asks for a JSON
// verdict.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates an HTTP advisory client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg.Timeout = timeout
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type verdictPayload struct {
	IsSuspicious bool   `json:"isSuspicious"`
	Reason       string `json:"reason"`
}

// CheckAnomaly asks whether the quantity is plausible for a weekly count.
// Every failure path logs a diagnostic and returns a negative verdict.
func (c *Client) CheckAnomaly(ctx context.Context, itemName, unit string, quantity float64) Verdict {
	prompt := fmt.Sprintf(`I am a supervisor at a medium-sized catering site doing weekly inventory.
Item: %q
Unit: %q
Entered Quantity: %g

Is this quantity highly suspicious, physically impossible, or clearly a typo (e.g. entering 5000 kg of salt for one week)?
Answer strictly in JSON format:
{
  "isSuspicious": boolean,
  "reason": "short explanation in Arabic if suspicious, else null"
}`, itemName, unit, quantity)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config:   genConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return c.failOpen("encoding advisory request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return c.failOpen("building advisory request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.failOpen("calling advisory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.failOpen("calling advisory", fmt.Errorf("status %d", resp.StatusCode))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.failOpen("decoding advisory response", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return Verdict{}
	}

	var payload verdictPayload
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &payload); err != nil {
		return c.failOpen("parsing advisory verdict", err)
	}

	return Verdict{Suspicious: payload.IsSuspicious, Message: payload.Reason}
}

func (c *Client) failOpen(msg string, err error) Verdict {
	if c.logger != nil {
		c.logger.Warn("advisory unavailable, failing open", "stage", msg, "error", err)
	}
	return Verdict{}
}
