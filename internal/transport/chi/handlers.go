package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/voicecart/internal/domain"
	"github.com/kailas-cloud/voicecart/internal/domain/search/mode"
	"github.com/kailas-cloud/voicecart/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/voicecart/internal/usecase/health"
)

// productsParams are the GET /api/products query parameters. Nil means absent.
type productsParams struct {
	ProductID *string
	Query     *string
	Category  *string
	Random    *bool
}

func bindProductsParams(r *http.Request) (productsParams, error) {
	var p productsParams
	q := r.URL.Query()
	binds := []struct {
		name string
		dest any
	}{
		{"productId", &p.ProductID},
		{"query", &p.Query},
		{"category", &p.Category},
		{"random", &p.Random},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return productsParams{}, fmt.Errorf("%w: invalid %s parameter: %w", domain.ErrInvalidRequest, b.name, err)
		}
	}
	return p, nil
}

// GetProducts handles GET /api/products. A productId lookup renders a single
// object, every other mode renders an array.
func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindProductsParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	random := params.Random != nil && *params.Random
	req, err := request.New(params.ProductID, params.Query, params.Category, random)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.catalog.Lookup(ctx, &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	setEmbeddingHeaders(w, usage)

	if res.Mode == mode.ByID && len(res.Products) == 1 {
		writeJSON(w, http.StatusOK, productToJSON(&res.Products[0]))
		return
	}
	writeJSON(w, http.StatusOK, productsToJSON(res.Products))
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body orderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := body.toItems()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	o, err := s.orders.Place(r.Context(), items, body.Address)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderToResponse(&o, body.Items))
}

// CreateSession handles POST /api/session. The upstream session JSON is relayed verbatim.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: read body: %w", domain.ErrInvalidRequest, err))
		return
	}

	raw, err := s.sessions.Create(r.Context(), body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// HealthCheck handles GET /health. Only an unreachable store answers 503:
// a degraded service still serves lexical results.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", domain.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: invalid request body: %w", domain.ErrInvalidRequest, err)
	}
	return nil
}
