// Package event composes event sinks.
package event

import (
	"context"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

type fanout struct {
	sinks []port.EventSink
}

// Fanout returns a sink that forwards every event to all given sinks. Each
// sink owns its own failure handling, so a broken subscriber cannot affect
// the others.
func Fanout(sinks ...port.EventSink) port.EventSink {
	return &fanout{sinks: sinks}
}

func (f *fanout) Emit(ctx context.Context, event domain.Event) {
	for _, s := range f.sinks {
		s.Emit(ctx, event)
	}
}
