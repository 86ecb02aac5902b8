package dice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Event is a progress or outcome report emitted while rolling
type Event struct {
	Level slog.Level
	// Operation names the engine call that produced the event, e.g. "roll_dice"
	Operation string
	Message   string
}

// Observer receives engine events. Implementations must not block.
type Observer interface {
	Observe(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, event Event)

// Observe calls f(ctx, event)
func (f ObserverFunc) Observe(ctx context.Context, event Event) {
	f(ctx, event)
}

// SlogObserver writes events to a structured logger
func SlogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(ctx context.Context, event Event) {
		logger.Log(ctx, event.Level, event.Message, "operation", event.Operation)
	})
}

// MultiObserver fans an event out to every non-nil observer
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(ctx context.Context, event Event) {
		for _, o := range observers {
			if o != nil {
				o.Observe(ctx, event)
			}
		}
	})
}

func (o *orchestrator) emit(ctx context.Context, level slog.Level, operation, format string, args ...any) {
	if o.observer == nil {
		return
	}
	o.observer.Observe(ctx, Event{
		Level:     level,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
	})
}

// formatRolls renders rolls as "[3, 5, 1]"
func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = fmt.Sprint(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
