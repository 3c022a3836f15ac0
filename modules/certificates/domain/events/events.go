package events

import (
	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

// CertificateCreated is published after a request is persisted.
type CertificateCreated struct {
	CertificateID uuid.UUID
	Actor         composables.Actor
}

// CertificateUpdated is published after a single-item update commits.
type CertificateUpdated struct {
	CertificateID uuid.UUID
	Actor         composables.Actor
	EventType     event.Type
	Changes       event.ChangeSet
}

// CertificatesBulkUpdated is published once per batch call after the
// mutation phase completes.
type CertificatesBulkUpdated struct {
	Actor        composables.Actor
	TotalCount   int
	SuccessCount int
	FailedCount  int
	BlockedCount int
}
