package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
)

// Snapshot is a flat projection of a request's mutable fields, used to
// compute audit diffs.
type Snapshot map[string]any

const snapshotDateLayout = "2006-01-02"

// SnapshotCertificate projects the request's mutable fields. Pointers are
// flattened, the status is recorded by internal name and the payment date as
// an ISO date string or nil.
func SnapshotCertificate(req *certificate.CertificateRequest) Snapshot {
	return Snapshot{
		certificate.FieldType:           req.Type,
		certificate.FieldRecordNumber:   req.RecordNumber,
		certificate.FieldPartiesName:    req.PartiesName,
		certificate.FieldNotes:          stringOrNil(req.Notes),
		certificate.FieldPriority:       string(req.Priority),
		certificate.FieldStatus:         req.Status.Name,
		certificate.FieldCost:           int64OrNil(req.Cost),
		certificate.FieldAdditionalCost: int64OrNil(req.AdditionalCost),
		certificate.FieldOrderNumber:    stringOrNil(req.OrderNumber),
		"payment_type":                  stringOrNil(req.PaymentType),
		certificate.FieldPaymentTypeID:  uuidOrNil(req.PaymentTypeID),
		certificate.FieldPaymentDate:    dateOrNil(req.PaymentDate),
	}
}

// DiffSnapshots emits one Change per touched field, both sides normalized.
// Fields outside touchedFields are never emitted, even when they differ.
func DiffSnapshots(before, after Snapshot, touchedFields []string) event.ChangeSet {
	changes := make(event.ChangeSet, len(touchedFields))
	for _, name := range touchedFields {
		changes[name] = event.Change{
			Before: normalizeValue(before[name]),
			After:  normalizeValue(after[name]),
		}
	}
	return changes
}

// ClassifyChange returns status_changed only when the status is the sole
// touched field; any wider patch is a plain update.
func ClassifyChange(touchedFields []string) event.Type {
	if len(touchedFields) == 1 && touchedFields[0] == certificate.FieldStatus {
		return event.TypeStatusChanged
	}
	return event.TypeUpdated
}

// normalizeValue collapses absent and empty values to nil so that diffs
// compare cleanly across representations.
func normalizeValue(v any) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

func stringOrNil(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func int64OrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func uuidOrNil(v *uuid.UUID) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func dateOrNil(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(snapshotDateLayout)
}
