package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/pkg/composables"
)

// Access is the computed rights of one actor over one request.
type Access struct {
	CanAccess bool
	CanEdit   bool
	IsAdmin   bool
	IsOwner   bool
}

// clientEditableFields is the allow-list for non-admin actors. Everything
// else in a patch is dropped silently, even when supplied explicitly.
var clientEditableFields = map[string]bool{
	certificate.FieldType:         true,
	certificate.FieldRecordNumber: true,
	certificate.FieldPartiesName:  true,
	certificate.FieldNotes:        true,
	certificate.FieldPriority:     true,
}

// EvaluateAccess computes access and edit rights for the given actor.
// Admins may edit a request whose current status forbids editing; owners
// may not.
func EvaluateAccess(req *certificate.CertificateRequest, actorID uuid.UUID, role composables.Role) Access {
	isAdmin := role.IsAdmin()
	isOwner := req.OwnerID == actorID
	canAccess := isAdmin || isOwner
	return Access{
		CanAccess: canAccess,
		CanEdit:   canAccess && (isAdmin || req.Status.CanEditCertificate),
		IsAdmin:   isAdmin,
		IsOwner:   isOwner,
	}
}

// FilterFieldsByRole returns the patch restricted to what the role may
// touch. Admin patches pass through unchanged; dropped keys raise no error.
func FilterFieldsByRole(data certificate.UpdateData, role composables.Role) certificate.UpdateData {
	if role.IsAdmin() {
		return data.Clone()
	}
	out := make(certificate.UpdateData, len(data))
	for k, v := range data {
		if clientEditableFields[k] {
			out[k] = v
		}
	}
	return out
}

// CleanUpdateData removes keys carrying no value: nils and all-whitespace
// strings. This keeps an empty submission from manufacturing a no-op diff
// entry; it also means a patch cannot blank out a text field.
func CleanUpdateData(data certificate.UpdateData) certificate.UpdateData {
	out := make(certificate.UpdateData, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
