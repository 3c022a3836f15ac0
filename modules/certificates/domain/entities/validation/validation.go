package validation

import (
	"context"

	"github.com/google/uuid"
)

// Requirement is a per-target-status gate configured in the validation
// catalog. RequiredField names a request field that must be non-empty after
// the update; ConfirmationText is the exact statement the actor must restate
// to confirm the transition. Either may be absent.
type Requirement struct {
	ID               uuid.UUID
	Name             string
	Description      string
	RequiredField    *string
	ConfirmationText *string
}

// Source supplies the active requirements for a transition into the named
// status.
type Source interface {
	FetchActiveValidations(ctx context.Context, statusName string) ([]Requirement, error)
}
