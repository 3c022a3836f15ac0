package certificate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/pkg/serrors"
)

var ErrNotFound = serrors.NewError("CERTIFICATE_NOT_FOUND", "certificate request not found", "Certificates.Errors.NotFound")

type FindParams struct {
	OwnerID    uuid.UUID
	StatusName string
	Q          string
	Limit      int
	Offset     int
}

// CreateData carries the initial state of a new request. StatusName names
// the workflow status assigned at creation.
type CreateData struct {
	OwnerID       uuid.UUID
	Type          string
	RecordNumber  string
	PartiesName   string
	Notes         *string
	Priority      Priority
	StatusName    string
	Cost          *int64
	PaymentTypeID *uuid.UUID
	PaymentDate   *time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CertificateRequest, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*CertificateRequest, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*CertificateRequest, int64, error)
	Create(ctx context.Context, data CreateData) (*CertificateRequest, error)
	// Update applies the patch and returns the freshly read row.
	Update(ctx context.Context, id uuid.UUID, patch UpdateData) (*CertificateRequest, error)
}
