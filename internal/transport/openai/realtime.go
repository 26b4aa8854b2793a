package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domsession "github.com/kailas-cloud/voicecart/internal/domain/session"
)

const (
	realtimeSessionsPath   = "/realtime/sessions"
	defaultRealtimeTimeout = 10 * time.Second
	maxErrorBody           = 4 << 10
	maxSessionBody         = 1 << 20
)

// RealtimeConfig holds the realtime session endpoint settings.
type RealtimeConfig struct {
	APIKey  string
	BaseURL string // defaults to the public OpenAI API
	Timeout time.Duration
	Logger  *zap.Logger
}

// RealtimeClient mints ephemeral realtime sessions via POST <base>/realtime/sessions.
type RealtimeClient struct {
	http   *http.Client
	url    string
	apiKey string
	logger *zap.Logger
}

// NewRealtimeClient creates a realtime session client.
func NewRealtimeClient(cfg *RealtimeConfig) *RealtimeClient {
	base := cfg.BaseURL
	if base == "" {
		base = openai.DefaultConfig("").BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRealtimeTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &RealtimeClient{
		http:   &http.Client{Timeout: timeout},
		url:    strings.TrimSuffix(base, "/") + realtimeSessionsPath,
		apiKey: cfg.APIKey,
		logger: log,
	}
}

// CreateSession posts the session config and returns the upstream JSON body unchanged.
// Every failure wraps domain.ErrRealtimeUnavailable.
func (c *RealtimeClient) CreateSession(ctx context.Context, cfg *domsession.Config) ([]byte, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal session config: %w", domain.ErrRealtimeUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrRealtimeUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Creating realtime session",
		zap.String("model", cfg.Model),
		zap.Int("tools", len(cfg.Tools)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRealtimeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s",
			domain.ErrRealtimeUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSessionBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrRealtimeUnavailable, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: upstream returned invalid JSON", domain.ErrRealtimeUnavailable)
	}

	// The browser connects with the ephemeral key; a session without one is unusable.
	fields := gjson.GetManyBytes(body, "id", "client_secret.value", "client_secret.expires_at")
	if fields[1].String() == "" {
		return nil, fmt.Errorf("%w: upstream session has no client secret", domain.ErrRealtimeUnavailable)
	}
	c.logger.Info("Realtime session created",
		zap.String("session_id", fields[0].String()),
		zap.Int64("expires_at", fields[2].Int()),
	)
	return body, nil
}
