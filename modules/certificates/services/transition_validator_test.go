package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/validation"
)

func confirmRule(statement string) validation.Requirement {
	return validation.Requirement{ID: uuid.New(), Name: "confirm", ConfirmationText: &statement}
}

func fieldRule(field string) validation.Requirement {
	return validation.Requirement{ID: uuid.New(), Name: "require " + field, RequiredField: &field}
}

func requireServiceError(t *testing.T, err error, code string) *ServiceError {
	t.Helper()
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, code, svcErr.Code)
	return svcErr
}

func TestValidateTransition_NoRulesIsValid(t *testing.T) {
	req := newPendingRequest(uuid.New())
	err := ValidateTransition(nil, nil, req, certificate.UpdateData{certificate.FieldStatus: "processed"})
	require.NoError(t, err)
}

func TestValidateTransition_SingleStatementMatch(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("I confirm completion")}

	err := ValidateTransition(rules, &StatusConfirmation{
		Confirmed: true,
		Statement: "  I confirm completion  ",
	}, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
	require.NoError(t, err)
}

func TestValidateTransition_MissingConfirmation(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("I confirm completion")}

	err := ValidateTransition(rules, nil, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
	requireServiceError(t, err, CodeConfirmationRequired)
}

func TestValidateTransition_WrongStatement(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("I confirm completion")}

	err := ValidateTransition(rules, &StatusConfirmation{
		Confirmed: true,
		Statement: "something else",
	}, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
	requireServiceError(t, err, CodeConfirmationRequired)
}

func TestValidateTransition_NotConfirmed(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("I confirm completion")}

	err := ValidateTransition(rules, &StatusConfirmation{
		Confirmed: false,
		Statement: "I confirm completion",
	}, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
	requireServiceError(t, err, CodeConfirmationRequired)
}

func TestValidateTransition_FallbackStatementWhenNoneConfigured(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{fieldRule(certificate.FieldNotes)}
	req.Notes = strPtr("present")

	err := ValidateTransition(rules, &StatusConfirmation{
		Confirmed: true,
		Statement: "I confirm the status change",
	}, req, certificate.UpdateData{certificate.FieldStatus: "processed"})
	require.NoError(t, err)
}

func TestValidateTransition_ConflictingStatementsAlwaysRejected(t *testing.T) {
	// Two distinct non-empty statements for the same status is a catalog
	// inconsistency: no input can satisfy it.
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("statement one"), confirmRule("statement two")}

	for _, conf := range []*StatusConfirmation{
		nil,
		{Confirmed: true, Statement: "statement one"},
		{Confirmed: true, Statement: "statement two"},
	} {
		err := ValidateTransition(rules, conf, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
		requireServiceError(t, err, CodeConfirmationRequired)
	}
}

func TestValidateTransition_DuplicateStatementsCollapse(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{confirmRule("same"), confirmRule("  same  ")}

	err := ValidateTransition(rules, &StatusConfirmation{
		Confirmed: true,
		Statement: "same",
	}, req, certificate.UpdateData{certificate.FieldStatus: "completed"})
	require.NoError(t, err)
}

func TestValidateTransition_RequiredFieldFromProposedChanges(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{
		confirmRule("I confirm"),
		fieldRule(certificate.FieldOrderNumber),
	}

	err := ValidateTransition(rules, &StatusConfirmation{Confirmed: true, Statement: "I confirm"}, req, certificate.UpdateData{
		certificate.FieldStatus:      "completed",
		certificate.FieldOrderNumber: "ORD-42",
	})
	require.NoError(t, err)
}

func TestValidateTransition_RequiredFieldFromCurrentValue(t *testing.T) {
	req := newPendingRequest(uuid.New())
	req.OrderNumber = strPtr("ORD-7")
	rules := []validation.Requirement{
		confirmRule("I confirm"),
		fieldRule(certificate.FieldOrderNumber),
	}

	err := ValidateTransition(rules, &StatusConfirmation{Confirmed: true, Statement: "I confirm"}, req, certificate.UpdateData{
		certificate.FieldStatus: "completed",
	})
	require.NoError(t, err)
}

func TestValidateTransition_RequiredFieldMissing(t *testing.T) {
	req := newPendingRequest(uuid.New())
	rules := []validation.Requirement{
		confirmRule("I confirm"),
		fieldRule(certificate.FieldOrderNumber),
	}

	err := ValidateTransition(rules, &StatusConfirmation{Confirmed: true, Statement: "I confirm"}, req, certificate.UpdateData{
		certificate.FieldStatus: "completed",
	})
	svcErr := requireServiceError(t, err, CodeRequiredFieldMissing)
	require.Equal(t, certificate.FieldOrderNumber, svcErr.Details["field"])
}

func TestValidateTransition_ProposedEmptyStringDoesNotSatisfyRequiredField(t *testing.T) {
	req := newPendingRequest(uuid.New())
	req.OrderNumber = strPtr("ORD-7")
	rules := []validation.Requirement{
		confirmRule("I confirm"),
		fieldRule(certificate.FieldOrderNumber),
	}

	// The proposed value wins even when it is emptier than the stored one.
	err := ValidateTransition(rules, &StatusConfirmation{Confirmed: true, Statement: "I confirm"}, req, certificate.UpdateData{
		certificate.FieldStatus:      "completed",
		certificate.FieldOrderNumber: "   ",
	})
	requireServiceError(t, err, CodeRequiredFieldMissing)
}
