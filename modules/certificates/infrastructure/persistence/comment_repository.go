package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/comment"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type CommentRepository struct{}

func NewCommentRepository() comment.Repository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	var id pgtype.UUID
	var createdAt pgtype.Timestamptz
	err = tx.QueryRow(ctx, `
		INSERT INTO certificate_comments (certificate_id, author_id, body)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`,
		pgUUID(c.CertificateID),
		pgUUID(c.AuthorID),
		c.Body,
	).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	c.ID = asUUID(id)
	c.CreatedAt = asTime(createdAt)
	return nil
}
