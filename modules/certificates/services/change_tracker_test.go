package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
)

func TestSnapshotCertificate_FlattensFields(t *testing.T) {
	paymentDate := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
	paymentTypeID := uuid.New()
	cost := int64(120000)

	req := newPendingRequest(uuid.New())
	req.Notes = strPtr("bring originals")
	req.Cost = &cost
	req.PaymentTypeID = &paymentTypeID
	req.PaymentDate = &paymentDate
	req.PaymentType = strPtr("card")

	snap := SnapshotCertificate(req)
	require.Equal(t, "birth", snap[certificate.FieldType])
	require.Equal(t, "pending", snap[certificate.FieldStatus])
	require.Equal(t, "bring originals", snap[certificate.FieldNotes])
	require.Equal(t, int64(120000), snap[certificate.FieldCost])
	require.Nil(t, snap[certificate.FieldAdditionalCost])
	require.Equal(t, "2026-02-03", snap[certificate.FieldPaymentDate])
	require.Equal(t, paymentTypeID.String(), snap[certificate.FieldPaymentTypeID])
	require.Equal(t, "card", snap["payment_type"])
}

func TestDiffSnapshots_OnlyTouchedFields(t *testing.T) {
	before := Snapshot{
		certificate.FieldNotes:       "old",
		certificate.FieldStatus:      "pending",
		certificate.FieldOrderNumber: "ORD-1",
	}
	after := Snapshot{
		certificate.FieldNotes:       "new",
		certificate.FieldStatus:      "processed",
		certificate.FieldOrderNumber: "ORD-2",
	}

	changes := DiffSnapshots(before, after, []string{certificate.FieldNotes})
	require.Len(t, changes, 1)
	require.Equal(t, event.Change{Before: "old", After: "new"}, changes[certificate.FieldNotes])
}

func TestDiffSnapshots_NormalizesEmptyValues(t *testing.T) {
	before := Snapshot{
		certificate.FieldNotes:       "",
		certificate.FieldOrderNumber: nil,
	}
	after := Snapshot{
		certificate.FieldNotes: "filled",
	}

	changes := DiffSnapshots(before, after, []string{
		certificate.FieldNotes,
		certificate.FieldOrderNumber,
		certificate.FieldPartiesName,
	})
	require.Equal(t, event.Change{Before: nil, After: "filled"}, changes[certificate.FieldNotes])
	require.Equal(t, event.Change{Before: nil, After: nil}, changes[certificate.FieldOrderNumber])
	require.Equal(t, event.Change{Before: nil, After: nil}, changes[certificate.FieldPartiesName])
}

func TestClassifyChange(t *testing.T) {
	require.Equal(t, event.TypeStatusChanged, ClassifyChange([]string{certificate.FieldStatus}))
	require.Equal(t, event.TypeUpdated, ClassifyChange([]string{certificate.FieldStatus, certificate.FieldNotes}))
	require.Equal(t, event.TypeUpdated, ClassifyChange([]string{certificate.FieldNotes}))
	require.Equal(t, event.TypeUpdated, ClassifyChange(nil))
}
