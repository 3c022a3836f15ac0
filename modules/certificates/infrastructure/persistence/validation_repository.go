package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/validation"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type ValidationRepository struct{}

func NewValidationRepository() validation.Source {
	return &ValidationRepository{}
}

func (r *ValidationRepository) FetchActiveValidations(ctx context.Context, statusName string) ([]validation.Requirement, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT v.id, v.name, v.description, v.required_field, v.confirmation_text
		FROM certificate_status_validations v
		JOIN certificate_statuses s ON s.id = v.status_id
		WHERE s.name = $1 AND v.is_active
		ORDER BY v.sort_order ASC, v.created_at ASC
	`, statusName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []validation.Requirement
	for rows.Next() {
		var (
			id                          pgtype.UUID
			name                        string
			description                 pgtype.Text
			requiredField, confirmation pgtype.Text
		)
		if err := rows.Scan(&id, &name, &description, &requiredField, &confirmation); err != nil {
			return nil, err
		}
		req := validation.Requirement{
			ID:               asUUID(id),
			Name:             name,
			RequiredField:    textPtr(requiredField),
			ConfirmationText: textPtr(confirmation),
		}
		if description.Valid {
			req.Description = description.String
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
