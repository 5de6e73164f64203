package llmclient

import "context"

type ctxKeyPhase struct{}
type ctxKeyJSON struct{}

// WithPhase tags the call with a phase name used by logging and metrics.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase stored in ctx, or "unknown".
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

// WithJSONResponse asks backends that support it to constrain output to JSON.
func WithJSONResponse(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyJSON{}, true)
}

func WantsJSON(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyJSON{}).(bool)
	return v
}
