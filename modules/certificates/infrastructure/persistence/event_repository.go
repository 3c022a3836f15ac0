package persistence

import (
	"context"
	"encoding/json"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

type EventRepository struct{}

func NewEventRepository() event.Repository {
	return &EventRepository{}
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	changes := e.Changes
	if changes == nil {
		changes = event.ChangeSet{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return gerrors.Wrap(err, "marshal changes")
	}

	var metaJSON []byte
	if e.Meta != nil {
		metaJSON, err = json.Marshal(e.Meta)
		if err != nil {
			return gerrors.Wrap(err, "marshal meta")
		}
	}

	var id pgtype.UUID
	var createdAt pgtype.Timestamptz
	err = tx.QueryRow(ctx, `
		INSERT INTO certificate_events (
			certificate_id,
			actor_id,
			actor_role,
			event_type,
			changes,
			meta
		)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6::jsonb)
		RETURNING id, created_at
	`,
		pgUUID(e.CertificateID),
		pgUUID(e.ActorID),
		string(e.ActorRole),
		string(e.Type),
		changesJSON,
		metaJSON,
	).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	e.ID = asUUID(id)
	e.CreatedAt = asTime(createdAt)
	return nil
}

func (r *EventRepository) ListByCertificateID(ctx context.Context, certificateID uuid.UUID) ([]*event.Event, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, certificate_id, actor_id, actor_role, event_type, changes, meta, created_at
		FROM certificate_events
		WHERE certificate_id = $1
		ORDER BY created_at DESC, id DESC
	`, pgUUID(certificateID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*event.Event
	for rows.Next() {
		var (
			id, certID, actorID  pgtype.UUID
			actorRole, eventType string
			changesJSON          []byte
			metaJSON             []byte
			createdAt            pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &certID, &actorID, &actorRole, &eventType, &changesJSON, &metaJSON, &createdAt); err != nil {
			return nil, err
		}

		e := &event.Event{
			ID:            asUUID(id),
			CertificateID: asUUID(certID),
			ActorID:       asUUID(actorID),
			ActorRole:     composables.Role(actorRole),
			Type:          event.Type(eventType),
			Changes:       event.ChangeSet{},
			CreatedAt:     asTime(createdAt),
		}
		if len(changesJSON) > 0 {
			if err := json.Unmarshal(changesJSON, &e.Changes); err != nil {
				return nil, gerrors.Wrap(err, "unmarshal changes")
			}
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &e.Meta); err != nil {
				return nil, gerrors.Wrap(err, "unmarshal meta")
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
