// Package inference talks to the Hugging Face inference endpoints: the
// OpenAI-compatible chat router for LLM prompts and the serverless model
// endpoint for image captioning.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slidelens/slidelens/internal/metrics"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var ErrNoToken = errors.New("inference token is not configured")

// responses are capped, a caption or a chat answer never gets close
const maxResponseBytes = 4 << 20

var tracer = otel.Tracer("github.com/slidelens/slidelens/internal/core/inference")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p,omitempty"`
}

type Options struct {
	Token          string
	ChatURL        string
	ModelsURL      string
	RequestsPerSec float64
	Burst          int
	Timeout        time.Duration
	HTTPClient     *http.Client
}

type Client struct {
	token     string
	chatURL   string
	modelsURL string
	http      *http.Client
	limiter   *rate.Limiter
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference request failed with status %d: %s", e.StatusCode, e.Body)
}

func NewClient(options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if options.RequestsPerSec > 0 {
		limit = rate.Limit(options.RequestsPerSec)
	}
	burst := options.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		token:     options.Token,
		chatURL:   options.ChatURL,
		modelsURL: strings.TrimRight(options.ModelsURL, "/"),
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// Ready reports whether requests can be authenticated.
func (c *Client) Ready() bool {
	return c != nil && c.token != ""
}

// ChatCompletion sends a chat prompt and returns the text of the first choice.
func (c *Client) ChatCompletion(ctx context.Context, request ChatRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "inference.chat_completion")
	defer span.End()
	span.SetAttributes(attribute.String("inference.model", request.Model))

	raw, err := c.do(ctx, "chat", c.chatURL, "application/json", body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return ExtractText(raw), nil
}

// ImageToText captions an image with a vision model.
func (c *Client) ImageToText(ctx context.Context, model string, image []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "inference.image_to_text")
	defer span.End()
	span.SetAttributes(attribute.String("inference.model", model))

	// model ids are "owner/name", the slash stays a path separator
	endpoint := c.modelsURL + "/" + model

	raw, err := c.do(ctx, "caption", endpoint, "image/png", image)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return strings.TrimSpace(ExtractText(raw)), nil
}

func (c *Client) do(ctx context.Context, kind string, endpoint string, content_type string, body []byte) (raw []byte, err error) {
	if !c.Ready() {
		return nil, ErrNoToken
	}

	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "error"
		}
		metrics.InferenceCallsTotal.WithLabelValues(kind, result).Inc()
		metrics.InferenceDurationSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Content-Type", content_type)
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	raw, err = io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: response.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// paths tried in order, the endpoints disagree on the response shape
var textPaths = []string{
	"choices.0.message.content",
	"choices.0.text",
	"outputs.0.message.content",
	"outputs.0.text",
	"generated_text",
	"0.generated_text",
	"text",
}

// ExtractText pulls the generated text out of any known response shape.
func ExtractText(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}
	for _, path := range textPaths {
		result := gjson.GetBytes(raw, path)
		if result.Exists() && result.Type == gjson.String {
			return result.String()
		}
	}
	return ""
}
