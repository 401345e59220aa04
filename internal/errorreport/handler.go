package errorreport

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/taxonomy"
)

// ClassifiedError is the synthetic error surfaced after a failure has been
// reported. It carries the catalog classification as inspectable fields so
// callers can branch on code or category without parsing the message. It
// never wraps the original low-level browser error.
type ClassifiedError struct {
	Code     int
	Category taxonomy.Category
	Title    string
	Message  string
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("[%d %s] %s: %s", e.Code, e.Category, e.Title, e.Message)
}

// Classified extracts a *ClassifiedError from an error chain.
func Classified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Handler bridges reporting and control flow: it always reports, then either
// surfaces a classified error or hands the record back so the caller can
// apply its own degraded default.
type Handler struct {
	reporter *Reporter
	log      *zap.Logger
}

// NewHandler wraps a reporter.
func NewHandler(reporter *Reporter, logger *zap.Logger) *Handler {
	return &Handler{
		reporter: reporter,
		log:      logger.Named("errorhandler"),
	}
}

// Reporter exposes the underlying reporter for aggregation consumers.
func (h *Handler) Reporter() *Reporter {
	return h.reporter
}

// Handle reports the failure and, when failAfterReport is set, returns a
// *ClassifiedError carrying the entry's code, category and title. A
// details["message"] string overrides the entry's default message in the
// returned error. With failAfterReport unset the error is always nil and the
// caller is expected to substitute its own fallback value.
func (h *Handler) Handle(ctx context.Context, entry taxonomy.Entry, details map[string]any, failAfterReport bool) (Record, error) {
	rec := h.reporter.Report(ctx, entry, details, "")

	if !failAfterReport {
		h.log.Debug("Failure handled without propagation", zap.Int("code", entry.Code))
		return rec, nil
	}

	msg := entry.Message
	if override, ok := details["message"].(string); ok && override != "" {
		msg = override
	}
	return rec, &ClassifiedError{
		Code:     entry.Code,
		Category: entry.Category,
		Title:    entry.Title,
		Message:  msg,
	}
}
