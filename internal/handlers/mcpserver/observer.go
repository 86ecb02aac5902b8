package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
)

// loggerName is reported on notifications/message
const loggerName = "dice"

type sessionKey struct{}

func withSession(ctx context.Context, ss *mcp.ServerSession) context.Context {
	if ss == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, ss)
}

func sessionFrom(ctx context.Context) *mcp.ServerSession {
	ss, _ := ctx.Value(sessionKey{}).(*mcp.ServerSession)
	return ss
}

// SessionObserver forwards engine events to the MCP session that made the
// tool call. The client controls what is delivered through logging/setLevel.
// Events raised outside a tool call are dropped.
func SessionObserver(logger *slog.Logger) dice.Observer {
	return dice.ObserverFunc(func(ctx context.Context, event dice.Event) {
		ss := sessionFrom(ctx)
		if ss == nil {
			return
		}

		err := ss.Log(ctx, &mcp.LoggingMessageParams{
			Level:  loggingLevel(event.Level),
			Logger: loggerName,
			Data:   event.Message,
		})
		if err != nil && logger != nil {
			logger.DebugContext(ctx, "failed to forward log to session",
				"operation", event.Operation,
				"error", err,
			)
		}
	})
}

func loggingLevel(level slog.Level) mcp.LoggingLevel {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
