package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/validation"
)

// fallbackConfirmationStatement is required when the target status has rules
// but none of them configures a confirmation text.
const fallbackConfirmationStatement = "I confirm the status change"

// StatusConfirmation is the actor's restatement accompanying a transition.
type StatusConfirmation struct {
	Confirmed bool
	Statement string
}

// ValidateTransition checks a proposed transition against the target
// status's configured requirements. A nil return means the transition may
// proceed.
//
// When more than one distinct confirmation statement is configured for the
// same status the catalog is inconsistent, and every attempt is rejected
// regardless of input.
func ValidateTransition(
	rules []validation.Requirement,
	confirmation *StatusConfirmation,
	req *certificate.CertificateRequest,
	proposed certificate.UpdateData,
) error {
	if len(rules) == 0 {
		return nil
	}

	statements := distinctConfirmationStatements(rules)
	if len(statements) > 1 {
		return newServiceError(
			http.StatusUnprocessableEntity,
			CodeConfirmationRequired,
			"conflicting confirmation statements configured for target status",
			nil,
		)
	}

	required := fallbackConfirmationStatement
	if len(statements) == 1 {
		required = statements[0]
	}
	if confirmation == nil || !confirmation.Confirmed || strings.TrimSpace(confirmation.Statement) != required {
		return newServiceError(
			http.StatusUnprocessableEntity,
			CodeConfirmationRequired,
			fmt.Sprintf("status change must be confirmed with the statement %q", required),
			nil,
		).withDetails(map[string]any{"statement": required})
	}

	snapshot := SnapshotCertificate(req)
	for _, rule := range rules {
		if rule.RequiredField == nil {
			continue
		}
		field := strings.TrimSpace(*rule.RequiredField)
		if field == "" {
			continue
		}
		if isEmptyFieldValue(resolveFieldValue(field, proposed, snapshot)) {
			return newServiceError(
				http.StatusUnprocessableEntity,
				CodeRequiredFieldMissing,
				fmt.Sprintf("field %q is required for this status", field),
				nil,
			).withDetails(map[string]any{"field": field})
		}
	}

	return nil
}

func distinctConfirmationStatements(rules []validation.Requirement) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rule := range rules {
		if rule.ConfirmationText == nil {
			continue
		}
		statement := strings.TrimSpace(*rule.ConfirmationText)
		if statement == "" || seen[statement] {
			continue
		}
		seen[statement] = true
		out = append(out, statement)
	}
	return out
}

// resolveFieldValue prefers the proposed value when the patch touches the
// field, otherwise falls back to the stored value.
func resolveFieldValue(field string, proposed certificate.UpdateData, snapshot Snapshot) any {
	if v, ok := proposed[field]; ok {
		return v
	}
	return snapshot[field]
}

func isEmptyFieldValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
