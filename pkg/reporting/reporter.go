// Package reporting wraps error monitoring so services never touch the
// Sentry SDK directly and tests can swap in a no-op or recording reporter.
package reporting

import (
	"github.com/getsentry/sentry-go"
)

// Reporter captures errors with structured tags and contextual extras.
// By convention every report carries at least {component, method} tags.
type Reporter interface {
	CaptureError(err error, tags map[string]string, extras map[string]any)
}

// SentryReporter reports errors to Sentry using the globally initialized hub.
type SentryReporter struct{}

// NewSentryReporter creates a reporter backed by the global Sentry hub.
// sentry.Init must have been called by the process entry point.
func NewSentryReporter() *SentryReporter {
	return &SentryReporter{}
}

// CaptureError reports err with the given tags and extras attached to the
// event scope.
func (r *SentryReporter) CaptureError(err error, tags map[string]string, extras map[string]any) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}

// NoopReporter discards all reports. Used when no DSN is configured and in
// tests that don't assert on reporting.
type NoopReporter struct{}

// CaptureError does nothing.
func (r *NoopReporter) CaptureError(err error, tags map[string]string, extras map[string]any) {}

// Noop returns a shared no-op reporter.
func Noop() Reporter {
	return &NoopReporter{}
}

var _ Reporter = (*SentryReporter)(nil)
var _ Reporter = (*NoopReporter)(nil)
