package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domsession "github.com/kailas-cloud/voicecart/internal/domain/session"
	"github.com/kailas-cloud/voicecart/internal/logger"
)

// Service mints realtime voice sessions for browser clients.
type Service struct {
	client RealtimeClient
}

// New creates a session service.
func New(client RealtimeClient) *Service {
	return &Service{client: client}
}

// Create overlays the client's partial config onto the defaults and requests a session.
// The upstream JSON is returned verbatim.
func (s *Service) Create(ctx context.Context, body []byte) (json.RawMessage, error) {
	cfg, err := Merge(body)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.CreateSession(ctx, &cfg)
	if err != nil {
		logger.FromContext(ctx).Error("Realtime session request failed",
			zap.String("model", cfg.Model),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create session: %w", err)
	}
	return raw, nil
}

// Merge decodes a partial session config over DefaultConfig and validates the result.
// An empty body yields the defaults.
func Merge(body []byte) (domsession.Config, error) {
	cfg := domsession.DefaultConfig()
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &cfg); err != nil {
			return domsession.Config{}, fmt.Errorf("%w: decode session config: %w", domain.ErrInvalidRequest, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return domsession.Config{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return cfg, nil
}
