package status

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/pkg/serrors"
)

var ErrNotFound = serrors.NewError("STATUS_NOT_FOUND", "status not found", "Certificates.Errors.StatusNotFound")

// Status is an externally configured workflow state. The set of statuses is
// open data loaded from the catalog, not a closed enum; the lifecycle core
// reads only the two flags below.
type Status struct {
	ID                 uuid.UUID
	Name               string
	DisplayName        string
	Color              string
	CanEditCertificate bool
	IsFinal            bool
}

type Repository interface {
	GetByName(ctx context.Context, name string) (Status, error)
	// GetDefault returns the status assigned to newly created requests.
	GetDefault(ctx context.Context) (Status, error)
	List(ctx context.Context) ([]Status, error)
}
