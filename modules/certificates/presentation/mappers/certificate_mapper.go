package mappers

import (
	"time"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
	"github.com/iota-uz/certificates-backend/modules/certificates/presentation/viewmodels"
	"github.com/iota-uz/certificates-backend/modules/certificates/services"
)

func StatusToViewModel(st status.Status) viewmodels.Status {
	return viewmodels.Status{
		ID:                 st.ID.String(),
		Name:               st.Name,
		DisplayName:        st.DisplayName,
		Color:              st.Color,
		CanEditCertificate: st.CanEditCertificate,
		IsFinal:            st.IsFinal,
	}
}

func CertificateToViewModel(req *certificate.CertificateRequest) viewmodels.Certificate {
	var paymentTypeID *string
	if req.PaymentTypeID != nil {
		s := req.PaymentTypeID.String()
		paymentTypeID = &s
	}
	var paymentDate *string
	if req.PaymentDate != nil {
		s := req.PaymentDate.Format("2006-01-02")
		paymentDate = &s
	}
	return viewmodels.Certificate{
		ID:             req.ID.String(),
		OwnerID:        req.OwnerID.String(),
		Type:           req.Type,
		RecordNumber:   req.RecordNumber,
		PartiesName:    req.PartiesName,
		Notes:          req.Notes,
		Priority:       string(req.Priority),
		Status:         StatusToViewModel(req.Status),
		Cost:           req.Cost,
		AdditionalCost: req.AdditionalCost,
		OrderNumber:    req.OrderNumber,
		PaymentType:    req.PaymentType,
		PaymentTypeID:  paymentTypeID,
		PaymentDate:    paymentDate,
		CreatedAt:      req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      req.UpdatedAt.Format(time.RFC3339),
	}
}

func CertificatesToViewModels(items []*certificate.CertificateRequest) []viewmodels.Certificate {
	out := make([]viewmodels.Certificate, 0, len(items))
	for _, item := range items {
		out = append(out, CertificateToViewModel(item))
	}
	return out
}

func EventToViewModel(e *event.Event) viewmodels.Event {
	changes := make(map[string]any, len(e.Changes))
	for field, change := range e.Changes {
		changes[field] = map[string]any{
			"before": change.Before,
			"after":  change.After,
		}
	}
	return viewmodels.Event{
		ID:            e.ID.String(),
		CertificateID: e.CertificateID.String(),
		ActorID:       e.ActorID.String(),
		ActorRole:     string(e.ActorRole),
		Type:          string(e.Type),
		Changes:       changes,
		Meta:          e.Meta,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

func EventsToViewModels(items []*event.Event) []viewmodels.Event {
	out := make([]viewmodels.Event, 0, len(items))
	for _, item := range items {
		out = append(out, EventToViewModel(item))
	}
	return out
}

func BulkResultToViewModel(result *services.BulkUpdateResult) viewmodels.BulkUpdateResult {
	failed := make([]viewmodels.FailedCertificate, 0, len(result.FailedCertificates))
	for _, f := range result.FailedCertificates {
		failed = append(failed, viewmodels.FailedCertificate{
			ID:           f.ID.String(),
			RecordNumber: f.RecordNumber,
			Error:        f.Error,
		})
	}
	return viewmodels.BulkUpdateResult{
		SuccessCount:        result.SuccessCount,
		FailedCount:         result.FailedCount,
		BlockedCount:        result.BlockedCount,
		UpdatedCertificates: CertificatesToViewModels(result.UpdatedCertificates),
		FailedCertificates:  failed,
	}
}
