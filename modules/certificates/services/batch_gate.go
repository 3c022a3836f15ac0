package services

import (
	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
)

const (
	blockedReasonFinal       = "status is final"
	blockedReasonNonEditable = "status does not allow editing"
)

// BlockedCertificate identifies a request the batch path refuses to touch.
type BlockedCertificate struct {
	ID           uuid.UUID `json:"id"`
	RecordNumber string    `json:"record_number"`
	Reason       string    `json:"reason"`
}

// PartitionEditable splits a candidate batch into requests that may be
// mutated and requests blocked by their lifecycle state. A final status or a
// non-editable status blocks the request for every actor; the batch path has
// no administrative override. Computed once, before any write.
func PartitionEditable(reqs []*certificate.CertificateRequest) ([]*certificate.CertificateRequest, []BlockedCertificate) {
	editable := make([]*certificate.CertificateRequest, 0, len(reqs))
	var blocked []BlockedCertificate
	for _, req := range reqs {
		switch {
		case req.Status.IsFinal:
			blocked = append(blocked, BlockedCertificate{
				ID:           req.ID,
				RecordNumber: req.RecordNumber,
				Reason:       blockedReasonFinal,
			})
		case !req.Status.CanEditCertificate:
			blocked = append(blocked, BlockedCertificate{
				ID:           req.ID,
				RecordNumber: req.RecordNumber,
				Reason:       blockedReasonNonEditable,
			})
		default:
			editable = append(editable, req)
		}
	}
	return editable, blocked
}
