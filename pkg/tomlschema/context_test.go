package tomlschema

import (
	"context"
	"testing"

	"runbeam/harmony-validator/pkg/history"
)

func TestTriggerFromContext(t *testing.T) {
	if got := TriggerFromContext(context.Background()); got != history.TriggerCLI {
		t.Errorf("default trigger = %q, want %q", got, history.TriggerCLI)
	}

	ctx := WithTrigger(context.Background(), history.TriggerConfig)
	if got := TriggerFromContext(ctx); got != history.TriggerConfig {
		t.Errorf("trigger = %q, want %q", got, history.TriggerConfig)
	}

	if got := TriggerFromContext(WithTrigger(context.Background(), "")); got != history.TriggerCLI {
		t.Errorf("empty trigger = %q, want default", got)
	}
}
