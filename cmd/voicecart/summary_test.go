package main

import (
	"errors"
	"testing"
	"time"

	dombatch "github.com/kailas-cloud/voicecart/internal/domain/batch"
	"github.com/kailas-cloud/voicecart/internal/usecase/maintenance"
)

func TestSeedSummary(t *testing.T) {
	report := maintenance.SeedReport{
		Results: []dombatch.Result{
			dombatch.NewOK("a"),
			dombatch.NewOK("b"),
			dombatch.NewLexicalOnly("c", errors.New("timeout")),
		},
		IndexCreated: true,
	}

	got := seedSummary(&report, 12_300, 1234*time.Millisecond)
	want := "Seeded 3 products from 12 kB in 1.234s: 2 embedded, 1 lexical only, 0 failed; index created"
	if got != want {
		t.Errorf("seedSummary =\n  %q\nwant\n  %q", got, want)
	}
}

func TestCleanupSummary(t *testing.T) {
	tests := []struct {
		report maintenance.CleanupReport
		want   string
	}{
		{
			maintenance.CleanupReport{ProductKeys: 1200, OrderKeys: 3},
			"Would remove the catalog index, 1,200 product keys and 3 order keys",
		},
		{
			maintenance.CleanupReport{ProductKeys: 39, OrderKeys: 0, Removed: true},
			"Removed the catalog index, 39 product keys and 0 order keys",
		},
	}
	for _, tc := range tests {
		if got := cleanupSummary(&tc.report); got != tc.want {
			t.Errorf("cleanupSummary = %q, want %q", got, tc.want)
		}
	}
}
