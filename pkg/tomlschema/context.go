package tomlschema

import (
	"context"

	"runbeam/harmony-validator/pkg/history"
)

type triggerKey struct{}

// WithTrigger records what started the run (see history.Trigger*).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFromContext returns the run trigger, defaulting to history.TriggerCLI.
func TriggerFromContext(ctx context.Context) string {
	if trigger, ok := ctx.Value(triggerKey{}).(string); ok && trigger != "" {
		return trigger
	}
	return history.TriggerCLI
}
