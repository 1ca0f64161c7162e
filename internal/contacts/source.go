// Package contacts normalizes contact payloads (Google People API, vCard) into
// engine.PersonEntry values.
package contacts

import (
	"context"

	"github.com/tartampluch/go-daycalendar/internal/engine"
)

// Source delivers the contacts for one calendar build.
type Source interface {
	Fetch(ctx context.Context) ([]engine.PersonEntry, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]engine.PersonEntry, error)

// Fetch calls f(ctx).
func (f SourceFunc) Fetch(ctx context.Context) ([]engine.PersonEntry, error) {
	return f(ctx)
}
