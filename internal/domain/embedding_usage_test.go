package domain

import (
	"context"
	"testing"
)

func TestEmbeddingUsage(t *testing.T) {
	if UsageFromContext(context.Background()) != nil {
		t.Fatal("expected nil collector on a bare context")
	}
	// A nil collector swallows writes.
	UsageFromContext(context.Background()).AddTokens(5)

	ctx, u := NewContextWithUsage(context.Background())
	UsageFromContext(ctx).AddTokens(0)
	if !u.Used || u.TotalTokens != 0 {
		t.Errorf("cache hit: %+v", u)
	}
	UsageFromContext(ctx).AddTokens(7)
	if u.TotalTokens != 7 {
		t.Errorf("tokens = %d", u.TotalTokens)
	}
}
