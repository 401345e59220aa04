// Package maintenance aggregates persisted error records into frequency
// statistics and optionally turns them into AI-assisted upkeep suggestions.
package maintenance

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/taxonomy"
)

// topErrorsLimit caps how many records of the dominant category the report
// carries.
const topErrorsLimit = 10

// Source is the record store slice the aggregator consumes.
type Source interface {
	Statistics() (map[taxonomy.Category]int, int, error)
	ByCategory(cat taxonomy.Category) ([]errorreport.Record, error)
}

var _ Source = (*errorreport.Reporter)(nil)

// Report is the aggregate handed to operators and the AI suggester.
type Report struct {
	Statistics           map[taxonomy.Category]int `json:"statistics"`
	MostFrequentCategory taxonomy.Category         `json:"most_frequent_category"`
	TopErrors            []errorreport.Record      `json:"top_errors"`
	TotalErrors          int                       `json:"total_errors"`
	SkippedFiles         int                       `json:"skipped_files"`
	GeneratedAt          time.Time                 `json:"generated_at"`
}

// Aggregator builds maintenance reports from the persisted record store.
type Aggregator struct {
	source Source
	logger *zap.Logger

	now func() time.Time
}

// NewAggregator wraps a record source.
func NewAggregator(source Source, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		logger: logger.Named("maintenance"),
		now:    time.Now,
	}
}

// BuildReport computes per-category statistics, picks the dominant category
// (ties broken by lexical category name so the result is deterministic) and
// collects up to ten of its records.
func (a *Aggregator) BuildReport() (*Report, error) {
	stats, skipped, err := a.source.Statistics()
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	report := &Report{
		Statistics:   stats,
		SkippedFiles: skipped,
		GeneratedAt:  a.now().UTC(),
	}

	names := make([]string, 0, len(stats))
	for cat := range stats {
		names = append(names, string(cat))
	}
	sort.Strings(names)

	best := taxonomy.Category("")
	bestCount := 0
	for _, name := range names {
		cat := taxonomy.Category(name)
		count := stats[cat]
		report.TotalErrors += count
		if count > bestCount {
			best, bestCount = cat, count
		}
	}

	if report.TotalErrors == 0 {
		a.logger.Info("No persisted errors to aggregate")
		return report, nil
	}

	report.MostFrequentCategory = best

	records, err := a.source.ByCategory(best)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for category %s: %w", best, err)
	}
	if len(records) > topErrorsLimit {
		records = records[:topErrorsLimit]
	}
	report.TopErrors = records

	a.logger.Info("Maintenance report built",
		zap.Int("total_errors", report.TotalErrors),
		zap.Int("skipped_files", report.SkippedFiles),
		zap.String("most_frequent_category", string(best)))

	return report, nil
}
