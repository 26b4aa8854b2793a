package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	dombatch "github.com/kailas-cloud/voicecart/internal/domain/batch"
	"github.com/kailas-cloud/voicecart/internal/usecase/maintenance"
)

// seedSummary is the one-line operator summary printed after a seed run.
func seedSummary(report *maintenance.SeedReport, fileBytes int64, took time.Duration) string {
	sum := dombatch.Summarize(report.Results)
	index := "index kept"
	if report.IndexCreated {
		index = "index created"
	}
	return fmt.Sprintf("Seeded %s products from %s in %s: %s embedded, %s lexical only, %s failed; %s",
		humanize.Comma(int64(len(report.Results))),
		humanize.Bytes(uint64(max(fileBytes, 0))),
		took.Round(time.Millisecond),
		humanize.Comma(int64(sum.OK)),
		humanize.Comma(int64(sum.LexicalOnly)),
		humanize.Comma(int64(sum.Failed)),
		index,
	)
}

func cleanupSummary(report *maintenance.CleanupReport) string {
	verb := "Would remove"
	if report.Removed {
		verb = "Removed"
	}
	return fmt.Sprintf("%s the catalog index, %s product keys and %s order keys",
		verb, humanize.Comma(int64(report.ProductKeys)), humanize.Comma(int64(report.OrderKeys)))
}
