package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/comment"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/events"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

// MaxBulkUpdateIDs bounds one batch call.
const MaxBulkUpdateIDs = 50

// BulkGlobalData is applied uniformly to every item in the batch. TagIDs
// replaces tag assignments when present; Comment is attached verbatim when
// non-blank.
type BulkGlobalData struct {
	Notes   *string
	TagIDs  []uuid.UUID
	Comment string
}

type BulkUpdateParams struct {
	IDs               []uuid.UUID
	GlobalData        BulkGlobalData
	IndividualUpdates map[uuid.UUID]certificate.UpdateData
	// Confirmation is accepted for forward compatibility; the batch path
	// does not enforce per-item transition confirmation.
	Confirmation *StatusConfirmation
}

// FailedCertificate identifies an item whose write failed during the
// best-effort phase.
type FailedCertificate struct {
	ID           uuid.UUID `json:"id"`
	RecordNumber string    `json:"record_number"`
	Error        string    `json:"error"`
}

type BulkUpdateResult struct {
	SuccessCount        int
	FailedCount         int
	BlockedCount        int
	UpdatedCertificates []*certificate.CertificateRequest
	FailedCertificates  []FailedCertificate
	BlockedCertificates []BlockedCertificate
}

// BulkUpdate applies updates across many requests at once. The pre-flight
// phase is fail-fast: a missing id or a lifecycle-blocked item aborts the
// whole call before any write. From the first write onward the call is
// best-effort: per-item persistence failures are collected and siblings
// continue. Tag and comment follow-ups apply only to successfully updated
// items and their failures are logged, never surfaced.
func (s *CertificateService) BulkUpdate(ctx context.Context, actor composables.Actor, params BulkUpdateParams) (*BulkUpdateResult, error) {
	if !actor.Role.IsAdmin() {
		return nil, newServiceError(http.StatusForbidden, CodeAccessDenied, "bulk updates require an administrative actor", nil)
	}
	if len(params.IDs) == 0 {
		return nil, newServiceError(http.StatusBadRequest, CodeBulkEmptyList, "no certificate ids supplied", nil)
	}
	if len(params.IDs) > MaxBulkUpdateIDs {
		return nil, newServiceError(http.StatusBadRequest, CodeBulkMaxLimitExceeded, "bulk update accepts at most 50 certificates", nil)
	}

	ids := dedupeIDs(params.IDs)
	fetched, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, newServiceError(http.StatusInternalServerError, CodeDatabaseError, "failed to load certificate requests", err)
	}
	if len(fetched) != len(ids) {
		return nil, newServiceError(http.StatusNotFound, CodeNotFound, "one or more certificate requests were not found", nil)
	}

	editable, blocked := PartitionEditable(fetched)
	if len(blocked) > 0 {
		return nil, newServiceError(
			http.StatusConflict,
			CodeBulkBlocked,
			"one or more certificate requests are blocked by their status",
			nil,
		).withDetails(map[string]any{"blocked_certificates": blocked})
	}

	result := &BulkUpdateResult{}

	for _, req := range editable {
		patch := s.mergeBulkPatch(actor, req.ID, params)

		updated := req
		if len(patch) > 0 {
			before := SnapshotCertificate(req)
			persisted, err := s.repo.Update(ctx, req.ID, patch)
			if err != nil {
				s.logger.WithError(err).WithField("certificate_id", req.ID).Error("bulk update item failed")
				result.FailedCertificates = append(result.FailedCertificates, FailedCertificate{
					ID:           req.ID,
					RecordNumber: req.RecordNumber,
					Error:        err.Error(),
				})
				continue
			}
			updated = persisted

			touched := patch.TouchedFields()
			s.recordEvent(ctx, &event.Event{
				CertificateID: updated.ID,
				ActorID:       actor.ID,
				ActorRole:     actor.Role,
				Type:          event.TypeBulkUpdated,
				Changes:       DiffSnapshots(before, SnapshotCertificate(updated), touched),
				Meta:          bulkMeta(len(params.IDs)),
			})
		} else {
			// Nothing to write; the item still counts as updated and
			// receives the batch marker in its trail.
			s.recordEvent(ctx, &event.Event{
				CertificateID: updated.ID,
				ActorID:       actor.ID,
				ActorRole:     actor.Role,
				Type:          event.TypeBulkUpdated,
				Changes:       event.ChangeSet{},
				Meta:          bulkMeta(len(params.IDs)),
			})
		}

		result.UpdatedCertificates = append(result.UpdatedCertificates, updated)

		if params.GlobalData.TagIDs != nil {
			s.syncTags(ctx, actor, updated.ID, params.GlobalData.TagIDs)
		}
		if body := strings.TrimSpace(params.GlobalData.Comment); body != "" {
			s.attachComment(ctx, actor, updated.ID, body)
		}
	}

	result.SuccessCount = len(result.UpdatedCertificates)
	result.FailedCount = len(result.FailedCertificates)
	result.BlockedCount = len(result.BlockedCertificates)

	s.publish(events.CertificatesBulkUpdated{
		Actor:        actor,
		TotalCount:   len(params.IDs),
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		BlockedCount: result.BlockedCount,
	})

	return result, nil
}

// mergeBulkPatch builds one item's payload: the uniform global fields first,
// then the per-item overrides on top, filtered and cleaned like any other
// patch.
func (s *CertificateService) mergeBulkPatch(actor composables.Actor, id uuid.UUID, params BulkUpdateParams) certificate.UpdateData {
	merged := certificate.UpdateData{}
	if params.GlobalData.Notes != nil {
		merged[certificate.FieldNotes] = *params.GlobalData.Notes
	}
	for k, v := range params.IndividualUpdates[id] {
		merged[k] = v
	}
	return CleanUpdateData(FilterFieldsByRole(merged, actor.Role))
}

func bulkMeta(total int) map[string]any {
	return map[string]any{
		"bulk_operation":     true,
		"total_certificates": total,
	}
}

// syncTags replaces an item's tag assignments and records a tags_changed
// event only when the set actually differs. Failures are logged and
// swallowed.
func (s *CertificateService) syncTags(ctx context.Context, actor composables.Actor, certificateID uuid.UUID, tagIDs []uuid.UUID) {
	sync, err := s.tags.UpdateCertificateTags(ctx, certificateID, tagIDs)
	if err != nil {
		s.logger.WithError(err).WithField("certificate_id", certificateID).Error("failed to update certificate tags")
		return
	}
	if !sync.Changed() {
		return
	}
	s.recordEvent(ctx, &event.Event{
		CertificateID: certificateID,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Type:          event.TypeTagsChanged,
		Changes: event.ChangeSet{
			"tags": {Before: uuidStrings(sync.Previous), After: uuidStrings(sync.Current)},
		},
	})
}

// attachComment adds the batch comment to one item. Failures are logged and
// swallowed.
func (s *CertificateService) attachComment(ctx context.Context, actor composables.Actor, certificateID uuid.UUID, body string) {
	c := &comment.Comment{
		CertificateID: certificateID,
		AuthorID:      actor.ID,
		Body:          body,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		s.logger.WithError(err).WithField("certificate_id", certificateID).Error("failed to attach bulk comment")
		return
	}
	s.recordEvent(ctx, &event.Event{
		CertificateID: certificateID,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Type:          event.TypeCommentAdded,
		Meta:          map[string]any{"comment": body},
	})
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
