package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID            uuid.UUID
	CertificateID uuid.UUID
	AuthorID      uuid.UUID
	Body          string
	CreatedAt     time.Time
}

type Repository interface {
	Create(ctx context.Context, c *Comment) error
}
