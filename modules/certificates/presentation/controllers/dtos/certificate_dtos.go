package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/certificates-backend/pkg/constants"
)

// APIError standardizes JSON error responses.
type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]any    `json:"details,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type CreateCertificateDTO struct {
	Type          string  `json:"type" validate:"required"`
	RecordNumber  string  `json:"record_number" validate:"required"`
	PartiesName   string  `json:"parties_name" validate:"required"`
	Notes         *string `json:"notes"`
	Priority      string  `json:"priority" validate:"omitempty,oneof=normal urgent"`
	OwnerID       string  `json:"owner_id" validate:"omitempty,uuid"`
	Status        string  `json:"status"`
	Cost          *int64  `json:"cost" validate:"omitempty,gte=0"`
	PaymentTypeID *string `json:"payment_type_id" validate:"omitempty,uuid"`
	PaymentDate   *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (d *CreateCertificateDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

type ConfirmationDTO struct {
	Confirmed bool   `json:"confirmed"`
	Statement string `json:"statement"`
}

// UpdateCertificateDTO carries a partial update. Data maps field names to new
// values; unknown and non-editable fields are dropped downstream, not
// rejected here.
type UpdateCertificateDTO struct {
	Data         map[string]any   `json:"data" validate:"required"`
	Confirmation *ConfirmationDTO `json:"confirmation"`
}

func (d *UpdateCertificateDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

type BulkGlobalDataDTO struct {
	Notes   *string  `json:"notes"`
	TagIDs  []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
	Comment string   `json:"comment"`
}

type BulkUpdateDTO struct {
	IDs               []string                  `json:"ids" validate:"required,dive,uuid"`
	GlobalData        BulkGlobalDataDTO         `json:"global_data"`
	IndividualUpdates map[string]map[string]any `json:"individual_updates" validate:"omitempty,dive,keys,uuid,endkeys"`
	Confirmation      *ConfirmationDTO          `json:"confirmation"`
}

func (d *BulkUpdateDTO) Ok() (map[string]string, bool) {
	return validateStruct(d)
}

func validateStruct(v any) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(v)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		errorMessages[err.Field()] = err.Tag()
	}
	return errorMessages, false
}
