// Package errorreport turns classified test failures into persisted,
// analyzable records: one JSON file per failure plus a best-effort screenshot.
package errorreport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/config"
	"github.com/suma737/webharness/internal/taxonomy"
)

// locationUnavailable substitutes for page info that could not be read,
// e.g. when the page was closed before the report ran.
const locationUnavailable = "[unavailable]"

// PageInfo is the slice of the browser page the reporter needs. A nil
// PageInfo is valid; location and screenshot are then simply absent.
type PageInfo interface {
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, fullPage bool) ([]byte, error)
}

// Reporter owns the error-logs/ and error-screenshots/ directories for the
// lifetime of the process. Every persisted filename mixes the error code, a
// timestamp token and a random fragment, so parallel worker processes never
// need write coordination.
type Reporter struct {
	logDir        string
	screenshotDir string
	page          PageInfo
	log           *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a reporter rooted at the configured results directories.
// Directory creation is best-effort: an unwritable location degrades every
// report to console-only, it never makes reporting fail.
func New(cfg config.ReportingConfig, page PageInfo, logger *zap.Logger) *Reporter {
	r := &Reporter{
		logDir:        cfg.LogDir(),
		screenshotDir: cfg.ScreenshotDir(),
		page:          page,
		log:           logger.Named("errorreport"),
		now:           time.Now,
	}
	for _, dir := range []string{r.logDir, r.screenshotDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			r.log.Warn("Failed to create reporting directory; reports will not be persisted",
				zap.String("dir", dir), zap.Error(err))
		}
	}
	return r
}

// Report captures a failure as a Record: timestamp, page location, a
// best-effort full-page screenshot, and a persisted JSON document. It never
// fails; every step degrades gracefully so the calling test is not disturbed
// by reporting problems.
func (r *Reporter) Report(ctx context.Context, entry taxonomy.Entry, details map[string]any, screenshotName string) Record {
	ts := r.now().UTC()
	suffix := uuid.NewString()[:8]

	rec := Record{
		Code:      entry.Code,
		Category:  entry.Category,
		Message:   entry.Message,
		Title:     entry.Title,
		Details:   sanitizeDetails(details),
		Location:  r.captureLocation(ctx),
		Timestamp: ts.Format(time.RFC3339Nano),
	}

	rec.Screenshot = r.captureScreenshot(ctx, entry, ts, suffix, screenshotName)

	r.persist(rec, entry, ts, suffix)

	r.log.Warn("Test failure reported",
		zap.Int("code", rec.Code),
		zap.String("category", string(rec.Category)),
		zap.String("title", rec.Title),
		zap.String("message", rec.Message),
		zap.Any("details", rec.Details),
	)

	return rec
}

// captureLocation snapshots the current page URL and title. A page that is
// closed mid-report yields placeholders, never an error.
func (r *Reporter) captureLocation(ctx context.Context) string {
	if r.page == nil {
		return ""
	}
	url, err := r.page.URL(ctx)
	if err != nil {
		url = locationUnavailable
	}
	title, err := r.page.Title(ctx)
	if err != nil {
		title = locationUnavailable
	}
	return fmt.Sprintf("%s | %s", url, title)
}

func (r *Reporter) captureScreenshot(ctx context.Context, entry taxonomy.Entry, ts time.Time, suffix, override string) string {
	if r.page == nil {
		return ""
	}

	name := override
	if name == "" {
		name = fmt.Sprintf("%s-%d-%s-%s",
			strings.ToLower(string(entry.Category)), entry.Code, timestampToken(ts), suffix)
	}
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}

	img, err := r.page.Screenshot(ctx, true)
	if err != nil {
		r.log.Warn("Screenshot capture failed", zap.Int("code", entry.Code), zap.Error(err))
		return ""
	}
	if err := os.WriteFile(filepath.Join(r.screenshotDir, name), img, 0o644); err != nil {
		r.log.Warn("Screenshot write failed", zap.String("file", name), zap.Error(err))
		return ""
	}
	return filepath.Join("error-screenshots", name)
}

func (r *Reporter) persist(rec Record, entry taxonomy.Entry, ts time.Time, suffix string) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		r.log.Warn("Record serialization failed", zap.Int("code", entry.Code), zap.Error(err))
		return
	}
	name := fmt.Sprintf("error-%d-%s-%s.json", entry.Code, timestampToken(ts), suffix)
	if err := os.WriteFile(filepath.Join(r.logDir, name), data, 0o644); err != nil {
		r.log.Warn("Record write failed", zap.String("file", name), zap.Error(err))
	}
}

// timestampToken renders an ISO timestamp as a filename-safe token.
func timestampToken(ts time.Time) string {
	token := ts.Format("2006-01-02T15:04:05.000Z07:00")
	return strings.NewReplacer(":", "-", ".", "-").Replace(token)
}

// Statistics re-scans the persisted records and counts them per category.
// Every known category is present in the result, zero or not. Malformed
// files are skipped; the skip count makes data-quality regressions visible.
func (r *Reporter) Statistics() (map[taxonomy.Category]int, int, error) {
	counts := make(map[taxonomy.Category]int, len(taxonomy.Categories()))
	for _, cat := range taxonomy.Categories() {
		counts[cat] = 0
	}

	skipped := 0
	err := r.scanRecords(func(rec Record) {
		counts[rec.Category]++
	}, &skipped)
	if err != nil {
		return counts, skipped, err
	}
	return counts, skipped, nil
}

// ByCategory returns every valid persisted record in the given category.
// The store is re-read on each call; results always reflect current disk
// state.
func (r *Reporter) ByCategory(cat taxonomy.Category) ([]Record, error) {
	var out []Record
	skipped := 0
	err := r.scanRecords(func(rec Record) {
		if rec.Category == cat {
			out = append(out, rec)
		}
	}, &skipped)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scanRecords walks the log directory and invokes fn for each record that
// decodes. Unreadable or malformed files increment skipped and are logged.
func (r *Reporter) scanRecords(fn func(Record), skipped *int) error {
	entries, err := os.ReadDir(r.logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read log directory %s: %w", r.logDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		rec, err := readRecord(filepath.Join(r.logDir, entry.Name()))
		if err != nil {
			r.log.Debug("Skipping malformed record file", zap.String("file", entry.Name()), zap.Error(err))
			*skipped++
			continue
		}
		// A category outside the enumeration is bad data; consumers only
		// ever see the fixed category set.
		if !rec.Category.Known() {
			r.log.Debug("Skipping record with unknown category",
				zap.String("file", entry.Name()), zap.String("category", string(rec.Category)))
			*skipped++
			continue
		}
		fn(rec)
	}
	return nil
}

// PruneOlderThan deletes record files whose modification time is strictly
// older than now minus the given number of days. Individual delete failures
// are logged and skipped; the batch always runs to completion.
func (r *Reporter) PruneOlderThan(days int) (int, error) {
	cutoff := r.now().AddDate(0, 0, -days)

	entries, err := os.ReadDir(r.logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read log directory %s: %w", r.logDir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			r.log.Warn("Failed to stat record file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.logDir, entry.Name())); err != nil {
			r.log.Warn("Failed to prune record file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
