package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type StatusRepository struct{}

func NewStatusRepository() status.Repository {
	return &StatusRepository{}
}

const selectStatusQuery = `
	SELECT id, name, display_name, color, can_edit_certificate, is_final
	FROM certificate_statuses
`

func scanStatus(row rowScanner) (status.Status, error) {
	var (
		id               pgtype.UUID
		name, display    string
		color            string
		canEdit, isFinal bool
	)
	if err := row.Scan(&id, &name, &display, &color, &canEdit, &isFinal); err != nil {
		return status.Status{}, err
	}
	return status.Status{
		ID:                 asUUID(id),
		Name:               name,
		DisplayName:        display,
		Color:              color,
		CanEditCertificate: canEdit,
		IsFinal:            isFinal,
	}, nil
}

func (r *StatusRepository) GetByName(ctx context.Context, name string) (status.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return status.Status{}, err
	}

	st, err := scanStatus(tx.QueryRow(ctx, selectStatusQuery+` WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return status.Status{}, status.ErrNotFound
	}
	return st, err
}

func (r *StatusRepository) GetDefault(ctx context.Context) (status.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return status.Status{}, err
	}

	st, err := scanStatus(tx.QueryRow(ctx, selectStatusQuery+` ORDER BY is_default DESC, sort_order ASC LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return status.Status{}, status.ErrNotFound
	}
	return st, err
}

func (r *StatusRepository) List(ctx context.Context) ([]status.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, selectStatusQuery+` ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []status.Status
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
