package history

import (
	"context"
	"time"
)

// Outcome is the result of a validation run.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"   // configuration passed
	OutcomeInvalid Outcome = "invalid" // a validation rule failed
	OutcomeError   Outcome = "error"   // schema could not be loaded or another error
)

// Trigger names what started a run.
const (
	TriggerCLI      = "cli"      // one-shot validate or schema check
	TriggerStartup  = "startup"  // first run of watch mode
	TriggerConfig   = "config"   // watched config file changed
	TriggerSchema   = "schema"   // watched schema file changed
	TriggerSchedule = "schedule" // cron re-validation
)

// Run is one recorded validation run.
type Run struct {
	ID         string        `json:"id"`
	ConfigPath string        `json:"config_path"`
	SchemaPath string        `json:"schema_path"`
	Trigger    string        `json:"trigger"`
	Outcome    Outcome       `json:"outcome"`
	Kind       string        `json:"kind,omitempty"`
	Rule       string        `json:"rule,omitempty"`
	FieldPath  string        `json:"field_path,omitempty"`
	Message    string        `json:"message,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// Valid returns true if the run passed.
func (r *Run) Valid() bool {
	return r.Outcome == OutcomeValid
}

// Query filters runs. Zero values mean no filter.
type Query struct {
	ConfigPath string
	Outcome    Outcome
	Since      *time.Time // StartedAt >= Since
	Before     *time.Time // StartedAt < Before

	// Limit caps the result count. 0 means DefaultLimit.
	Limit int
}

// DefaultLimit is the result cap used when Query.Limit is 0.
const DefaultLimit = 100

// Store persists validation runs.
//
// List returns runs newest first. Implementations must be safe for
// concurrent use.
type Store interface {
	Record(ctx context.Context, run *Run) error
	List(ctx context.Context, query *Query) ([]*Run, error)
	Count(ctx context.Context, query *Query) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}
