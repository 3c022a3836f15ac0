package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/presentation/controllers/dtos"
	"github.com/iota-uz/certificates-backend/modules/certificates/presentation/mappers"
	"github.com/iota-uz/certificates-backend/modules/certificates/services"
	"github.com/iota-uz/certificates-backend/pkg/application"
	"github.com/iota-uz/certificates-backend/pkg/composables"
	"github.com/iota-uz/certificates-backend/pkg/middleware"
)

type CertificateAPIController struct {
	app          application.Application
	certificates *services.CertificateService
	basePath     string
}

func NewCertificateAPIController(app application.Application) application.Controller {
	return &CertificateAPIController{
		app:          app,
		certificates: app.Service(services.CertificateService{}).(*services.CertificateService),
		basePath:     "/certificates/api",
	}
}

func (c *CertificateAPIController) Key() string {
	return c.basePath
}

func (c *CertificateAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideActor(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/requests", c.instrumentAPI("list", c.List)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}", c.instrumentAPI("get", c.Get)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}/events", c.instrumentAPI("events", c.Events)).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/requests", c.instrumentAPI("create", c.Create)).Methods(http.MethodPost)
	writeRouter.HandleFunc("/requests/{id}", c.instrumentAPI("update", c.Update)).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/requests/bulk-update", c.instrumentAPI("bulk_update", c.BulkUpdate)).Methods(http.MethodPost)
}

func (c *CertificateAPIController) useActor(w http.ResponseWriter, r *http.Request) (composables.Actor, bool) {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "no authenticated actor")
		return composables.Actor{}, false
	}
	return actor, true
}

func (c *CertificateAPIController) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		writeAPIErrorDetails(w, r, svcErr.Status, svcErr.Code, svcErr.Message, svcErr.Details)
		return
	}
	writeAPIError(w, r, http.StatusInternalServerError, services.CodeUnexpectedError, "internal error")
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (c *CertificateAPIController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}

	params := &certificate.FindParams{
		StatusName: strings.TrimSpace(r.URL.Query().Get("status")),
		Q:          strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("owner_id")); v != "" && actor.Role.IsAdmin() {
		if ownerID, err := uuid.Parse(v); err == nil {
			params.OwnerID = ownerID
		}
	}

	items, total, err := c.certificates.GetPaginated(r.Context(), actor, params)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.CertificatesToViewModels(items),
		"total": total,
	})
}

func (c *CertificateAPIController) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid certificate id")
		return
	}

	req, err := c.certificates.GetByID(r.Context(), actor, id)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CertificateToViewModel(req))
}

func (c *CertificateAPIController) Events(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid certificate id")
		return
	}

	events, err := c.certificates.ListEvents(r.Context(), actor, id)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.EventsToViewModels(events),
	})
}

func (c *CertificateAPIController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}

	var dto dtos.CreateCertificateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIErrorDetails(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", fieldErrorDetails(errs))
		return
	}

	params := services.CreateCertificateParams{
		Type:         dto.Type,
		RecordNumber: dto.RecordNumber,
		PartiesName:  dto.PartiesName,
		Notes:        dto.Notes,
		Priority:     certificate.Priority(dto.Priority),
		StatusName:   dto.Status,
		Cost:         dto.Cost,
	}
	if dto.OwnerID != "" {
		ownerID, err := uuid.Parse(dto.OwnerID)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "INVALID_OWNER_ID", "invalid owner id")
			return
		}
		params.OwnerID = ownerID
	}
	if dto.PaymentTypeID != nil {
		paymentTypeID, err := uuid.Parse(*dto.PaymentTypeID)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "INVALID_PAYMENT_TYPE_ID", "invalid payment type id")
			return
		}
		params.PaymentTypeID = &paymentTypeID
	}
	if dto.PaymentDate != nil {
		paymentDate, err := time.Parse("2006-01-02", *dto.PaymentDate)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "INVALID_PAYMENT_DATE", "invalid payment date")
			return
		}
		params.PaymentDate = &paymentDate
	}

	created, err := c.certificates.Create(r.Context(), actor, params)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.CertificateToViewModel(created))
}

func (c *CertificateAPIController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid certificate id")
		return
	}

	var dto dtos.UpdateCertificateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIErrorDetails(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", fieldErrorDetails(errs))
		return
	}

	updated, err := c.certificates.Update(r.Context(), id, actor, certificate.UpdateData(dto.Data), confirmationFromDTO(dto.Confirmation))
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.CertificateToViewModel(updated))
}

func (c *CertificateAPIController) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := c.useActor(w, r)
	if !ok {
		return
	}

	var dto dtos.BulkUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIErrorDetails(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", fieldErrorDetails(errs))
		return
	}

	params := services.BulkUpdateParams{
		GlobalData: services.BulkGlobalData{
			Notes:   dto.GlobalData.Notes,
			Comment: dto.GlobalData.Comment,
		},
		Confirmation: confirmationFromDTO(dto.Confirmation),
	}
	for _, raw := range dto.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid certificate id")
			return
		}
		params.IDs = append(params.IDs, id)
	}
	if dto.GlobalData.TagIDs != nil {
		params.GlobalData.TagIDs = make([]uuid.UUID, 0, len(dto.GlobalData.TagIDs))
		for _, raw := range dto.GlobalData.TagIDs {
			tagID, err := uuid.Parse(raw)
			if err != nil {
				writeAPIError(w, r, http.StatusBadRequest, "INVALID_TAG_ID", "invalid tag id")
				return
			}
			params.GlobalData.TagIDs = append(params.GlobalData.TagIDs, tagID)
		}
	}
	if len(dto.IndividualUpdates) > 0 {
		params.IndividualUpdates = make(map[uuid.UUID]certificate.UpdateData, len(dto.IndividualUpdates))
		for raw, data := range dto.IndividualUpdates {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeAPIError(w, r, http.StatusBadRequest, "INVALID_ID", "invalid certificate id")
				return
			}
			params.IndividualUpdates[id] = certificate.UpdateData(data)
		}
	}

	result, err := c.certificates.BulkUpdate(r.Context(), actor, params)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.BulkResultToViewModel(result))
}

func confirmationFromDTO(dto *dtos.ConfirmationDTO) *services.StatusConfirmation {
	if dto == nil {
		return nil
	}
	return &services.StatusConfirmation{Confirmed: dto.Confirmed, Statement: dto.Statement}
}

func fieldErrorDetails(errs map[string]string) map[string]any {
	details := make(map[string]any, len(errs))
	for field, tag := range errs {
		details[field] = tag
	}
	return details
}
