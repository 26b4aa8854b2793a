package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
	"github.com/kailas-cloud/voicecart/internal/domain/search/request"
	"github.com/kailas-cloud/voicecart/internal/logger"
	cataloguc "github.com/kailas-cloud/voicecart/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/voicecart/internal/usecase/health"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Client-facing error messages.
const (
	msgProductNotFound = "Product not found"
	msgSessionFailed   = "Failed to fetch session data"
	msgInternal        = "Internal Server Error"
)

// ProductLookup resolves product queries.
type ProductLookup interface {
	Lookup(ctx context.Context, req *request.Request) (cataloguc.Result, error)
}

// OrderPlacer stores new orders.
type OrderPlacer interface {
	Place(ctx context.Context, items []domorder.Item, address string) (domorder.Order, error)
}

// SessionCreator mints realtime voice sessions.
type SessionCreator interface {
	Create(ctx context.Context, body []byte) (json.RawMessage, error)
}

// HealthReporter aggregates component health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the grocery assistant API.
type Server struct {
	catalog       ProductLookup
	orders        OrderPlacer
	sessions      SessionCreator
	health        HealthReporter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog ProductLookup,
	orders OrderPlacer,
	sessions SessionCreator,
	health HealthReporter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:  catalog,
		orders:   orders,
		sessions: sessions,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ""),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, msgProductNotFound),
		sentinelHandler(domain.ErrRealtimeUnavailable, http.StatusInternalServerError, msgSessionFailed),
	}
	return s
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler matches a single sentinel. An empty message echoes the error
// text starting at the sentinel, dropping internal wrapping context.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := message
		if msg == "" {
			msg = clientMessage(err, sentinel)
		}
		writeError(w, status, msg)
		return true
	}
}

func clientMessage(err, sentinel error) string {
	s := err.Error()
	if i := strings.Index(s, sentinel.Error()); i >= 0 {
		return s[i:]
	}
	return sentinel.Error()
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}
