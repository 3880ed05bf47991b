// Package gpt provides an OpenAI-compatible chat client used by the
// ingredient recognizer, the recipe suggester, and the conversational
// responder. The core state machine never calls it; everything here is a
// swappable external collaborator.
package gpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hammamikhairi/souschef/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

// Role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat-completion message.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// TextMessage is a convenience constructor for a plain-text message.
func TextMessage(role, text string) Message {
	return Message{
		Role:    role,
		Content: []Content{{Type: "text", Text: text}},
	}
}

// ImageMessage builds a user message carrying a prompt plus raw image
// bytes as a base64 data URI, the multimodal content shape OpenAI-style
// endpoints accept.
func ImageMessage(prompt string, image []byte) Message {
	uri := "data:image/jpeg;base64," + encodeBase64(image)
	return Message{
		Role: RoleUser,
		Content: []Content{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: uri}},
		},
	}
}

// Content is a polymorphic content block (text or image_url).
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference.
type ImageURL struct {
	URL string `json:"url"`
}

// payload is the request body sent to the chat-completions endpoint.
type payload struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	MaxTokens   int       `json:"max_tokens"`
	Model       string    `json:"model,omitempty"`
}

// apiResponse is the top-level response envelope.
type apiResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithBearerAuth switches authentication from the Azure-style "api-key"
// header to "Authorization: Bearer", which plain OpenAI endpoints expect.
func WithBearerAuth() ClientOption {
	return func(c *Client) { c.bearer = true }
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	topP        float64
	maxTokens   int
	bearer      bool
	http        *http.Client
	log         *logger.Logger
}

// NewClient creates a chat client.
//   - endpoint: full URL to the chat/completions resource
//   - apiKey:   the subscription / API key
func NewClient(endpoint, apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       "", // omitted for Azure deployments; set via WithModel otherwise
		temperature: 0.7,
		topP:        0.95,
		maxTokens:   800,
		http:        &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends a chat-completion request and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body := payload{
		Messages:    messages,
		Temperature: c.temperature,
		TopP:        c.topP,
		MaxTokens:   c.maxTokens,
		Model:       c.model,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gpt: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("gpt: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	} else {
		req.Header.Set("api-key", c.apiKey)
	}

	c.log.Debug("gpt: POST %s (%d bytes)", c.endpoint, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gpt: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gpt: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gpt: API %s\n%s", resp.Status, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gpt: unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("gpt: empty response (no choices)")
	}

	reply := result.Choices[0].Message.Content
	c.log.Debug("gpt: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// ── Reply helpers ────────────────────────────────────────────────

var jsonBlock = regexp.MustCompile(`(?s)(\[.*\]|\{.*\})`)

// ExtractJSON pulls the first JSON array or object out of a model reply,
// tolerating markdown code fences and surrounding prose. Returns the
// empty string when the reply holds no JSON at all.
func ExtractJSON(reply string) string {
	reply = StripCodeFence(reply)
	return jsonBlock.FindString(reply)
}

// StripCodeFence removes a wrapping markdown code fence if present
// (models wrap JSON this way constantly).
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
