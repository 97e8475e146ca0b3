package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/oauth2"

	"github.com/spacesedan/commentsense/internal/models"
	"github.com/spacesedan/commentsense/internal/sentiment"
)

var ErrMissingToken = errors.New("hugging face api token is required")

// HuggingFaceClient calls the hosted sentiment endpoint. It sends one request
// per Classify call and never retries.
type HuggingFaceClient struct {
	Client    *http.Client
	endpoint  string
	healthURL string
}

type ClientOption func(*HuggingFaceClient)

// WithHealthURL overrides the URL probed by HealthCheck.
func WithHealthURL(u string) ClientOption {
	return func(h *HuggingFaceClient) {
		if u != "" {
			h.healthURL = u
		}
	}
}

// WithBaseTransport sets the transport under the bearer token transport.
func WithBaseTransport(rt http.RoundTripper) ClientOption {
	return func(h *HuggingFaceClient) {
		if t, ok := h.Client.Transport.(*oauth2.Transport); ok {
			t.Base = rt
		}
	}
}

func NewHuggingFaceClient(endpoint, token string, timeout time.Duration, opts ...ClientOption) (*HuggingFaceClient, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid sentiment endpoint %q", endpoint)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	h := &HuggingFaceClient{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: source, Base: http.DefaultTransport},
		},
		endpoint:  endpoint,
		healthURL: u.Scheme + "://" + u.Host + "/",
	}
	for _, opt := range opts {
		opt(h)
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))
	return h, nil
}

// Classify implements sentiment.Classifier.
func (h *HuggingFaceClient) Classify(ctx context.Context, comments []string) ([]string, error) {
	slog.Info("[HuggingFaceClient] Requesting sentiment analysis from sentiment service",
		slog.Int("comments", len(comments)))
	start := time.Now()

	resp, err := h.postJSON(ctx, models.SentimentRequest{Comments: comments})
	if err != nil {
		slog.Error("[HuggingFaceClient] Sentiment request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[HuggingFaceClient] Sentiment request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("labels", len(resp.Sentiments)))
	return resp.Sentiments, nil
}

// HealthCheck reports whether the service answers with a 2xx status.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.healthURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("url", h.healthURL),
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, input models.SentimentRequest) (models.SentimentResponse, error) {
	var output models.SentimentResponse

	body, err := json.Marshal(input)
	if err != nil {
		return output, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return output, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		return output, &sentiment.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MAX_RESPONSE_BYTES))
	if err != nil {
		return output, &sentiment.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response: %w", err),
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return output, &sentiment.ValidationError{StatusCode: resp.StatusCode, Detail: respBody}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return output, &sentiment.TransportError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if err := validateShape(respBody); err != nil {
		slog.Error("[HuggingFaceClient] Unexpected response shape",
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return output, err
	}

	if err := json.Unmarshal(respBody, &output); err != nil {
		return output, &sentiment.ShapeError{Reason: err.Error(), Preview: preview(respBody)}
	}
	return output, nil
}

// validateShape accepts only an object whose "sentiments" field is a list of
// strings.
func validateShape(body []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &sentiment.ShapeError{Reason: "body is not a JSON object", Preview: preview(body)}
	}

	raw, ok := envelope["sentiments"]
	if !ok {
		return &sentiment.ShapeError{Reason: "missing sentiments field", Preview: preview(body)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return &sentiment.ShapeError{Reason: "sentiments is not a list", Preview: preview(body)}
	}

	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			return &sentiment.ShapeError{
				Reason:  fmt.Sprintf("sentiments[%d] is not a string", i),
				Preview: preview(body),
			}
		}
	}
	return nil
}

func preview(respBody []byte) string {
	raw := string(respBody)
	if len(raw) > PREVIEW_LENGTH {
		// cut on a rune boundary so Telugu text is not split mid-character
		n := PREVIEW_LENGTH
		for n > 0 && !utf8.RuneStart(raw[n]) {
			n--
		}
		raw = raw[:n]
	}
	return raw
}

func getPreview(respBody []byte) slog.Attr {
	return slog.String("raw_response", preview(respBody))
}
