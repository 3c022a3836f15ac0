package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/comment"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/tag"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/validation"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/events"
	"github.com/iota-uz/certificates-backend/pkg/composables"
	"github.com/iota-uz/certificates-backend/pkg/eventbus"
)

// CertificateService orchestrates the certificate request lifecycle: access
// gating, per-status transition validation, persistence and the audit trail.
type CertificateService struct {
	repo        certificate.Repository
	events      event.Repository
	tags        tag.Repository
	comments    comment.Repository
	validations validation.Source
	statuses    status.Repository
	publisher   eventbus.EventBus
	logger      *logrus.Logger
}

func NewCertificateService(
	repo certificate.Repository,
	eventsRepo event.Repository,
	tagsRepo tag.Repository,
	commentsRepo comment.Repository,
	validations validation.Source,
	statuses status.Repository,
	publisher eventbus.EventBus,
	logger *logrus.Logger,
) *CertificateService {
	return &CertificateService{
		repo:        repo,
		events:      eventsRepo,
		tags:        tagsRepo,
		comments:    commentsRepo,
		validations: validations,
		statuses:    statuses,
		publisher:   publisher,
		logger:      logger,
	}
}

type CreateCertificateParams struct {
	Type          string
	RecordNumber  string
	PartiesName   string
	Notes         *string
	Priority      certificate.Priority
	OwnerID       uuid.UUID
	StatusName    string
	Cost          *int64
	PaymentTypeID *uuid.UUID
	PaymentDate   *time.Time
}

// Create persists a new request and emits a created audit event carrying
// the initial snapshot. Non-admin actors always own what they create.
func (s *CertificateService) Create(ctx context.Context, actor composables.Actor, params CreateCertificateParams) (*certificate.CertificateRequest, error) {
	ownerID := params.OwnerID
	if !actor.Role.IsAdmin() || ownerID == uuid.Nil {
		ownerID = actor.ID
	}

	statusName := params.StatusName
	if statusName == "" {
		def, err := s.statuses.GetDefault(ctx)
		if err != nil {
			return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to resolve default status", err)
		}
		statusName = def.Name
	}

	priority := params.Priority
	if priority == "" {
		priority = certificate.PriorityNormal
	}

	created, err := s.repo.Create(ctx, certificate.CreateData{
		OwnerID:       ownerID,
		Type:          params.Type,
		RecordNumber:  params.RecordNumber,
		PartiesName:   params.PartiesName,
		Notes:         params.Notes,
		Priority:      priority,
		StatusName:    statusName,
		Cost:          params.Cost,
		PaymentTypeID: params.PaymentTypeID,
		PaymentDate:   params.PaymentDate,
	})
	if err != nil {
		return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to create certificate request", err)
	}

	s.recordEvent(ctx, &event.Event{
		CertificateID: created.ID,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Type:          event.TypeCreated,
		Changes:       creationChangeSet(SnapshotCertificate(created)),
	})
	s.publish(events.CertificateCreated{CertificateID: created.ID, Actor: actor})

	return created, nil
}

// GetByID returns the request if the actor may access it.
func (s *CertificateService) GetByID(ctx context.Context, actor composables.Actor, id uuid.UUID) (*certificate.CertificateRequest, error) {
	req, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !EvaluateAccess(req, actor.ID, actor.Role).CanAccess {
		return nil, newServiceError(http.StatusForbidden, CodeAccessDenied, "access to certificate request denied", nil)
	}
	return req, nil
}

// GetPaginated lists requests. Non-admin actors only ever see their own.
func (s *CertificateService) GetPaginated(ctx context.Context, actor composables.Actor, params *certificate.FindParams) ([]*certificate.CertificateRequest, int64, error) {
	if params == nil {
		params = &certificate.FindParams{}
	}
	if !actor.Role.IsAdmin() {
		params.OwnerID = actor.ID
	}
	items, total, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to list certificate requests", err)
	}
	return items, total, nil
}

// ListEvents returns the audit trail of a request the actor may access.
func (s *CertificateService) ListEvents(ctx context.Context, actor composables.Actor, id uuid.UUID) ([]*event.Event, error) {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return nil, err
	}
	items, err := s.events.ListByCertificateID(ctx, id)
	if err != nil {
		return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to list certificate events", err)
	}
	return items, nil
}

// Update applies a single-item update: access gating, role-based field
// filtering, transition validation, persistence, then the audit event. The
// audit write is best-effort; its failure never fails the update.
func (s *CertificateService) Update(
	ctx context.Context,
	id uuid.UUID,
	actor composables.Actor,
	data certificate.UpdateData,
	confirmation *StatusConfirmation,
) (*certificate.CertificateRequest, error) {
	req, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	access := EvaluateAccess(req, actor.ID, actor.Role)
	if !access.CanAccess {
		return nil, newServiceError(http.StatusForbidden, CodeAccessDenied, "access to certificate request denied", nil)
	}
	if !access.CanEdit {
		return nil, newServiceError(http.StatusConflict, CodeCannotBeEdited, "certificate request cannot be edited in its current status", nil)
	}

	patch := CleanUpdateData(FilterFieldsByRole(data, actor.Role))
	if len(patch) == 0 {
		return req, nil
	}

	if target, ok := patch[certificate.FieldStatus].(string); ok && access.IsAdmin && target != req.Status.Name {
		rules, err := s.validations.FetchActiveValidations(ctx, target)
		if err != nil {
			return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to load status validations", err)
		}
		if err := ValidateTransition(rules, confirmation, req, patch); err != nil {
			return nil, err
		}
	}

	before := SnapshotCertificate(req)

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.WithError(err).WithField("certificate_id", id).Error("certificate update failed")
		return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to update certificate request", err)
	}

	touched := patch.TouchedFields()
	changes := DiffSnapshots(before, SnapshotCertificate(updated), touched)
	eventType := ClassifyChange(touched)

	s.recordEvent(ctx, &event.Event{
		CertificateID: updated.ID,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Type:          eventType,
		Changes:       changes,
	})
	s.publish(events.CertificateUpdated{
		CertificateID: updated.ID,
		Actor:         actor,
		EventType:     eventType,
		Changes:       changes,
	})

	return updated, nil
}

func (s *CertificateService) fetch(ctx context.Context, id uuid.UUID) (*certificate.CertificateRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return nil, newServiceError(http.StatusNotFound, CodeNotFound, "certificate request not found", err)
		}
		return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to load certificate request", err)
	}
	return req, nil
}

// recordEvent appends to the audit trail. Failures are logged and swallowed:
// the audit channel is an observability concern and must never turn a
// successful mutation into a failure.
func (s *CertificateService) recordEvent(ctx context.Context, e *event.Event) {
	if err := s.events.Create(ctx, e); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"certificate_id": e.CertificateID,
			"event_type":     e.Type,
		}).Error("failed to record certificate event")
	}
}

func (s *CertificateService) publish(evt any) {
	if s.publisher != nil {
		s.publisher.Publish(evt)
	}
}

// creationChangeSet renders an initial snapshot as a change set with no
// before values.
func creationChangeSet(after Snapshot) event.ChangeSet {
	changes := make(event.ChangeSet, len(after))
	for name, value := range after {
		changes[name] = event.Change{Before: nil, After: normalizeValue(value)}
	}
	return changes
}
