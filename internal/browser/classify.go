package browser

import (
	"context"
	"errors"

	"github.com/suma737/webharness/internal/taxonomy"
)

// classify maps a raw page-primitive failure to a catalog entry using the
// structured timeout signal only. Anything that is not a deadline falls back
// to the action-specific entry; there is no message-text matching.
func classify(err error, onTimeout, fallback taxonomy.Entry) taxonomy.Entry {
	if err == nil {
		return taxonomy.Unknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return onTimeout
	}
	return fallback
}
