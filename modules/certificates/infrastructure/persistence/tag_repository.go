package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/tag"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type TagRepository struct{}

func NewTagRepository() tag.Repository {
	return &TagRepository{}
}

// UpdateCertificateTags replaces the certificate's tag assignments and
// reports the previous set so callers can tell whether anything changed.
// Must run inside a transaction; the read and the rewrite are not atomic
// otherwise.
func (r *TagRepository) UpdateCertificateTags(ctx context.Context, certificateID uuid.UUID, tagIDs []uuid.UUID) (tag.Sync, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tag.Sync{}, err
	}

	rows, err := tx.Query(ctx, `
		SELECT tag_id
		FROM certificate_tag_assignments
		WHERE certificate_id = $1
		ORDER BY tag_id
	`, pgUUID(certificateID))
	if err != nil {
		return tag.Sync{}, err
	}
	defer rows.Close()

	var previous []uuid.UUID
	for rows.Next() {
		var tagID pgtype.UUID
		if err := rows.Scan(&tagID); err != nil {
			return tag.Sync{}, err
		}
		previous = append(previous, asUUID(tagID))
	}
	if err := rows.Err(); err != nil {
		return tag.Sync{}, err
	}
	rows.Close()

	if _, err := tx.Exec(ctx, `
		DELETE FROM certificate_tag_assignments WHERE certificate_id = $1
	`, pgUUID(certificateID)); err != nil {
		return tag.Sync{}, err
	}

	if len(tagIDs) > 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO certificate_tag_assignments (certificate_id, tag_id)
			SELECT $1, unnest($2::uuid[])
			ON CONFLICT DO NOTHING
		`, pgUUID(certificateID), pgUUIDArray(tagIDs)); err != nil {
			return tag.Sync{}, err
		}
	}

	return tag.Sync{Previous: previous, Current: tagIDs}, nil
}
