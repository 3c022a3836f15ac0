package viewmodels

type Status struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	DisplayName        string `json:"display_name"`
	Color              string `json:"color,omitempty"`
	CanEditCertificate bool   `json:"can_edit_certificate"`
	IsFinal            bool   `json:"is_final"`
}

type Certificate struct {
	ID             string  `json:"id"`
	OwnerID        string  `json:"owner_id"`
	Type           string  `json:"type"`
	RecordNumber   string  `json:"record_number"`
	PartiesName    string  `json:"parties_name"`
	Notes          *string `json:"notes"`
	Priority       string  `json:"priority"`
	Status         Status  `json:"status"`
	Cost           *int64  `json:"cost"`
	AdditionalCost *int64  `json:"additional_cost"`
	OrderNumber    *string `json:"order_number"`
	PaymentType    *string `json:"payment_type"`
	PaymentTypeID  *string `json:"payment_type_id"`
	PaymentDate    *string `json:"payment_date"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type CertificateList struct {
	Items []Certificate `json:"items"`
	Total int64         `json:"total"`
}

type Event struct {
	ID            string         `json:"id"`
	CertificateID string         `json:"certificate_id"`
	ActorID       string         `json:"actor_id"`
	ActorRole     string         `json:"actor_role"`
	Type          string         `json:"type"`
	Changes       map[string]any `json:"changes"`
	Meta          map[string]any `json:"meta,omitempty"`
	CreatedAt     string         `json:"created_at"`
}

type FailedCertificate struct {
	ID           string `json:"id"`
	RecordNumber string `json:"record_number"`
	Error        string `json:"error"`
}

type BulkUpdateResult struct {
	SuccessCount        int                 `json:"success_count"`
	FailedCount         int                 `json:"failed_count"`
	BlockedCount        int                 `json:"blocked_count"`
	UpdatedCertificates []Certificate       `json:"updated_certificates"`
	FailedCertificates  []FailedCertificate `json:"failed_certificates"`
}
