package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
	"github.com/iota-uz/certificates-backend/pkg/composables"
	"github.com/iota-uz/certificates-backend/pkg/configuration"
	"github.com/iota-uz/certificates-backend/pkg/repo"
)

type CertificateRepository struct{}

func NewCertificateRepository() certificate.Repository {
	return &CertificateRepository{}
}

const selectCertificateQuery = `
	SELECT
		c.id,
		c.owner_id,
		c.type,
		c.record_number,
		c.parties_name,
		c.notes,
		c.priority,
		c.cost,
		c.additional_cost,
		c.order_number,
		c.payment_type_id,
		pt.name,
		c.payment_date,
		c.created_at,
		c.updated_at,
		s.id,
		s.name,
		s.display_name,
		s.color,
		s.can_edit_certificate,
		s.is_final
	FROM certificate_requests c
	JOIN certificate_statuses s ON s.id = c.status_id
	LEFT JOIN payment_types pt ON pt.id = c.payment_type_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertificate(row rowScanner) (*certificate.CertificateRequest, error) {
	var (
		id, ownerID                 pgtype.UUID
		typ, recordNumber, parties  string
		notes, orderNumber, payType pgtype.Text
		priority                    string
		cost, additionalCost        pgtype.Int8
		paymentTypeID               pgtype.UUID
		paymentDate                 pgtype.Date
		createdAt, updatedAt        pgtype.Timestamptz
		statusID                    pgtype.UUID
		statusName, displayName     string
		color                       string
		canEdit, isFinal            bool
	)
	if err := row.Scan(
		&id, &ownerID, &typ, &recordNumber, &parties,
		&notes, &priority, &cost, &additionalCost, &orderNumber,
		&paymentTypeID, &payType, &paymentDate, &createdAt, &updatedAt,
		&statusID, &statusName, &displayName, &color, &canEdit, &isFinal,
	); err != nil {
		return nil, err
	}
	return &certificate.CertificateRequest{
		ID:             asUUID(id),
		OwnerID:        asUUID(ownerID),
		Type:           typ,
		RecordNumber:   recordNumber,
		PartiesName:    parties,
		Notes:          textPtr(notes),
		Priority:       certificate.Priority(priority),
		Status: status.Status{
			ID:                 asUUID(statusID),
			Name:               statusName,
			DisplayName:        displayName,
			Color:              color,
			CanEditCertificate: canEdit,
			IsFinal:            isFinal,
		},
		Cost:           int64Ptr(cost),
		AdditionalCost: int64Ptr(additionalCost),
		OrderNumber:    textPtr(orderNumber),
		PaymentType:    textPtr(payType),
		PaymentTypeID:  uuidPtr(paymentTypeID),
		PaymentDate:    datePtr(paymentDate),
		CreatedAt:      asTime(createdAt),
		UpdatedAt:      asTime(updatedAt),
	}, nil
}

func (r *CertificateRepository) GetByID(ctx context.Context, id uuid.UUID) (*certificate.CertificateRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, selectCertificateQuery+` WHERE c.id = $1`, pgUUID(id))
	req, err := scanCertificate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, certificate.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *CertificateRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*certificate.CertificateRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, selectCertificateQuery+` WHERE c.id = ANY($1)`, pgUUIDArray(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*certificate.CertificateRequest, len(ids))
	for rows.Next() {
		req, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		byID[req.ID] = req
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return rows in the requested order; callers compare counts to detect
	// missing ids.
	out := make([]*certificate.CertificateRequest, 0, len(byID))
	for _, id := range ids {
		if req, ok := byID[id]; ok {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *CertificateRepository) GetPaginated(ctx context.Context, params *certificate.FindParams) ([]*certificate.CertificateRequest, int64, error) {
	if params == nil {
		params = &certificate.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	conf := configuration.Use()
	limit := params.Limit
	if limit <= 0 {
		limit = conf.PageSize
	}
	if limit > conf.MaxPageSize {
		limit = conf.MaxPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []any
	if params.OwnerID != uuid.Nil {
		args = append(args, pgUUID(params.OwnerID))
		where = append(where, fmt.Sprintf("c.owner_id = $%d", len(args)))
	}
	if params.StatusName != "" {
		args = append(args, params.StatusName)
		where = append(where, fmt.Sprintf("s.name = $%d", len(args)))
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(c.record_number ILIKE $%d OR c.parties_name ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM certificate_requests c
		JOIN certificate_statuses s ON s.id = c.status_id
	` + whereClause
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(
		"%s%s ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d",
		selectCertificateQuery, whereClause, len(args)-1, len(args),
	)
	rows, err := tx.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*certificate.CertificateRequest
	for rows.Next() {
		req, err := scanCertificate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *CertificateRepository) Create(ctx context.Context, data certificate.CreateData) (*certificate.CertificateRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	statusID, err := resolveStatusID(ctx, tx, data.StatusName)
	if err != nil {
		return nil, err
	}

	var id pgtype.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO certificate_requests (
			owner_id,
			type,
			record_number,
			parties_name,
			notes,
			priority,
			status_id,
			cost,
			payment_type_id,
			payment_date
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		pgUUID(data.OwnerID),
		data.Type,
		data.RecordNumber,
		data.PartiesName,
		data.Notes,
		string(data.Priority),
		statusID,
		data.Cost,
		data.PaymentTypeID,
		data.PaymentDate,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, asUUID(id))
}

func (r *CertificateRepository) Update(ctx context.Context, id uuid.UUID, patch certificate.UpdateData) (*certificate.CertificateRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	sets := []string{"updated_at = now()"}
	var args []any
	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	for _, name := range patch.TouchedFields() {
		value := patch[name]
		switch name {
		case certificate.FieldType, certificate.FieldRecordNumber,
			certificate.FieldPartiesName, certificate.FieldNotes,
			certificate.FieldPriority, certificate.FieldOrderNumber:
			appendSet(name, value)
		case certificate.FieldCost, certificate.FieldAdditionalCost:
			n, err := asInt64(value)
			if err != nil {
				return nil, gerrors.Wrapf(err, "field %q", name)
			}
			appendSet(name, n)
		case certificate.FieldStatus:
			statusName, ok := value.(string)
			if !ok {
				return nil, gerrors.Errorf("field %q: expected status name, got %T", name, value)
			}
			statusID, err := resolveStatusID(ctx, tx, statusName)
			if err != nil {
				return nil, err
			}
			appendSet("status_id", statusID)
		case certificate.FieldPaymentTypeID:
			paymentTypeID, err := asUUIDValue(value)
			if err != nil {
				return nil, gerrors.Wrapf(err, "field %q", name)
			}
			appendSet("payment_type_id", pgUUID(paymentTypeID))
		case certificate.FieldPaymentDate:
			date, err := asDate(value)
			if err != nil {
				return nil, gerrors.Wrapf(err, "field %q", name)
			}
			appendSet("payment_date", date)
		default:
			return nil, gerrors.Errorf("unsupported update field %q", name)
		}
	}

	args = append(args, pgUUID(id))
	query := fmt.Sprintf(
		"UPDATE certificate_requests SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, certificate.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func resolveStatusID(ctx context.Context, tx repo.Tx, name string) (pgtype.UUID, error) {
	var id pgtype.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM certificate_statuses WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return pgtype.UUID{}, status.ErrNotFound
	}
	if err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
}

func asInt64(value any) (int64, error) {
	switch n := value.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, gerrors.Errorf("expected integer, got %T", value)
	}
}

func asUUIDValue(value any) (uuid.UUID, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	default:
		return uuid.Nil, gerrors.Errorf("expected uuid, got %T", value)
	}
}

func asDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse("2006-01-02", v)
	default:
		return time.Time{}, gerrors.Errorf("expected date, got %T", value)
	}
}
