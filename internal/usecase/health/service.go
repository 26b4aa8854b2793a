package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means search still answers, possibly lexically only or from an unindexed catalog.
	Degraded Status = "degraded"
	// Unhealthy means the catalog store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates the catalog index has not been created yet.
	CheckMissing CheckResult = "missing"
)

// Component names in Report.Checks.
const (
	ComponentDatabase  = "database"
	ComponentIndex     = "catalog_index"
	ComponentEmbedding = "embedding"
)

// DefaultTimeout bounds each component probe.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	index     IndexChecker
	embedding EmbeddingChecker
	timeout   time.Duration
}

// New creates a Service. index and embedding can be nil.
func New(db DBPinger, index IndexChecker, embedding EmbeddingChecker) *Service {
	return &Service{db: db, index: index, embedding: embedding, timeout: DefaultTimeout}
}

// Check probes all components concurrently.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, 3)
	)
	probe := func(name string, fn func(context.Context) CheckResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := fn(ctx)
			mu.Lock()
			checks[name] = r
			mu.Unlock()
		}()
	}

	probe(ComponentDatabase, func(ctx context.Context) CheckResult {
		return result(s.db.Ping(ctx))
	})
	if s.index != nil {
		probe(ComponentIndex, func(ctx context.Context) CheckResult {
			ok, err := s.index.IndexExists(ctx)
			switch {
			case err != nil:
				return CheckError
			case !ok:
				return CheckMissing
			default:
				return CheckOK
			}
		})
	}
	if s.embedding != nil {
		probe(ComponentEmbedding, func(ctx context.Context) CheckResult {
			return result(s.embedding.HealthCheck(ctx))
		})
	}
	wg.Wait()

	return Report{Status: aggregate(checks), Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}

func aggregate(checks map[string]CheckResult) Status {
	if checks[ComponentDatabase] != CheckOK {
		return Unhealthy
	}
	for _, v := range checks {
		if v != CheckOK {
			return Degraded
		}
	}
	return Healthy
}
