package certificate

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// CertificateRequest is a tracked case requesting an official record lookup.
// It is owned by exactly one requester and mutated only through the
// certificate service; rows are never physically deleted.
type CertificateRequest struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Type           string
	RecordNumber   string
	PartiesName    string
	Notes          *string
	Priority       Priority
	Status         status.Status
	Cost           *int64
	AdditionalCost *int64
	OrderNumber    *string
	PaymentType    *string
	PaymentTypeID  *uuid.UUID
	PaymentDate    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
