package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
)

func TestPartitionEditable_SplitsByLifecycleState(t *testing.T) {
	editable1 := newPendingRequest(uuid.New())
	editable2 := newPendingRequest(uuid.New())
	editable2.Status = statusProcessed

	final := newPendingRequest(uuid.New())
	final.Status = statusCompleted
	locked := newPendingRequest(uuid.New())
	locked.Status = statusLocked

	editable, blocked := PartitionEditable([]*certificate.CertificateRequest{editable1, final, editable2, locked})

	require.Len(t, editable, 2)
	require.Equal(t, editable1.ID, editable[0].ID)
	require.Equal(t, editable2.ID, editable[1].ID)

	require.Len(t, blocked, 2)
	require.Equal(t, final.ID, blocked[0].ID)
	require.Equal(t, "status is final", blocked[0].Reason)
	require.Equal(t, locked.ID, blocked[1].ID)
	require.Equal(t, "status does not allow editing", blocked[1].Reason)
}

func TestPartitionEditable_FinalWinsOverNonEditable(t *testing.T) {
	// A final status is also non-editable; the reason reported is finality.
	req := newPendingRequest(uuid.New())
	req.Status = statusCompleted

	_, blocked := PartitionEditable([]*certificate.CertificateRequest{req})
	require.Len(t, blocked, 1)
	require.Equal(t, "status is final", blocked[0].Reason)
}

func TestPartitionEditable_EmptyInput(t *testing.T) {
	editable, blocked := PartitionEditable(nil)
	require.Empty(t, editable)
	require.Empty(t, blocked)
}
