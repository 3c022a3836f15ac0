package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type Type string

const (
	TypeCreated       Type = "created"
	TypeUpdated       Type = "updated"
	TypeStatusChanged Type = "status_changed"
	TypeBulkUpdated   Type = "bulk_updated"
	TypeTagsChanged   Type = "tags_changed"
	TypeCommentAdded  Type = "comment_added"
)

// Change is the before/after pair of one field. Empty and absent values are
// normalized to nil before the pair is recorded.
type Change struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// ChangeSet maps field names to their observed changes.
type ChangeSet map[string]Change

// Event is one append-only audit record of an actor-attributed change.
// Meta carries free-form side-channel data (batch markers and the like)
// without loosening the typed change set.
type Event struct {
	ID            uuid.UUID
	CertificateID uuid.UUID
	ActorID       uuid.UUID
	ActorRole     composables.Role
	Type          Type
	Changes       ChangeSet
	Meta          map[string]any
	CreatedAt     time.Time
}

type Repository interface {
	Create(ctx context.Context, e *Event) error
	ListByCertificateID(ctx context.Context, certificateID uuid.UUID) ([]*Event, error)
}
