package session

import (
	"context"

	domsession "github.com/kailas-cloud/voicecart/internal/domain/session"
)

// RealtimeClient mints ephemeral realtime sessions upstream and returns the raw response.
type RealtimeClient interface {
	CreateSession(ctx context.Context, cfg *domsession.Config) ([]byte, error)
}
