package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/certificates-backend/modules/certificates/domain/aggregates/certificate"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/comment"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/event"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/status"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/tag"
	"github.com/iota-uz/certificates-backend/modules/certificates/domain/entities/validation"
)

var (
	statusPending = status.Status{
		ID: uuid.New(), Name: "pending", DisplayName: "Pending",
		CanEditCertificate: true,
	}
	statusProcessed = status.Status{
		ID: uuid.New(), Name: "processed", DisplayName: "Processed",
		CanEditCertificate: true,
	}
	statusLocked = status.Status{
		ID: uuid.New(), Name: "locked", DisplayName: "Locked",
		CanEditCertificate: false,
	}
	statusCompleted = status.Status{
		ID: uuid.New(), Name: "completed", DisplayName: "Completed",
		CanEditCertificate: false, IsFinal: true,
	}
)

func testStatuses() map[string]status.Status {
	return map[string]status.Status{
		statusPending.Name:   statusPending,
		statusProcessed.Name: statusProcessed,
		statusLocked.Name:    statusLocked,
		statusCompleted.Name: statusCompleted,
	}
}

type fakeCertificateRepo struct {
	items       map[uuid.UUID]*certificate.CertificateRequest
	statuses    map[string]status.Status
	updateCalls []certificate.UpdateData
	updateErrs  map[uuid.UUID]error
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{
		items:      map[uuid.UUID]*certificate.CertificateRequest{},
		statuses:   testStatuses(),
		updateErrs: map[uuid.UUID]error{},
	}
}

func (r *fakeCertificateRepo) add(req *certificate.CertificateRequest) {
	r.items[req.ID] = req
}

func (r *fakeCertificateRepo) GetByID(_ context.Context, id uuid.UUID) (*certificate.CertificateRequest, error) {
	req, ok := r.items[id]
	if !ok {
		return nil, certificate.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *fakeCertificateRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*certificate.CertificateRequest, error) {
	out := make([]*certificate.CertificateRequest, 0, len(ids))
	for _, id := range ids {
		if req, ok := r.items[id]; ok {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCertificateRepo) GetPaginated(_ context.Context, params *certificate.FindParams) ([]*certificate.CertificateRequest, int64, error) {
	var out []*certificate.CertificateRequest
	for _, req := range r.items {
		if params.OwnerID != uuid.Nil && req.OwnerID != params.OwnerID {
			continue
		}
		clone := *req
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCertificateRepo) Create(_ context.Context, data certificate.CreateData) (*certificate.CertificateRequest, error) {
	st, ok := r.statuses[data.StatusName]
	if !ok {
		return nil, status.ErrNotFound
	}
	req := &certificate.CertificateRequest{
		ID:            uuid.New(),
		OwnerID:       data.OwnerID,
		Type:          data.Type,
		RecordNumber:  data.RecordNumber,
		PartiesName:   data.PartiesName,
		Notes:         data.Notes,
		Priority:      data.Priority,
		Status:        st,
		Cost:          data.Cost,
		PaymentTypeID: data.PaymentTypeID,
		PaymentDate:   data.PaymentDate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	r.items[req.ID] = req
	return req, nil
}

func (r *fakeCertificateRepo) Update(_ context.Context, id uuid.UUID, patch certificate.UpdateData) (*certificate.CertificateRequest, error) {
	r.updateCalls = append(r.updateCalls, patch.Clone())
	if err := r.updateErrs[id]; err != nil {
		return nil, err
	}
	req, ok := r.items[id]
	if !ok {
		return nil, certificate.ErrNotFound
	}
	for name, value := range patch {
		applyPatchField(req, r.statuses, name, value)
	}
	req.UpdatedAt = time.Now()
	clone := *req
	return &clone, nil
}

func applyPatchField(req *certificate.CertificateRequest, statuses map[string]status.Status, name string, value any) {
	switch name {
	case certificate.FieldType:
		req.Type = value.(string)
	case certificate.FieldRecordNumber:
		req.RecordNumber = value.(string)
	case certificate.FieldPartiesName:
		req.PartiesName = value.(string)
	case certificate.FieldNotes:
		s := value.(string)
		req.Notes = &s
	case certificate.FieldPriority:
		req.Priority = certificate.Priority(value.(string))
	case certificate.FieldStatus:
		if st, ok := statuses[value.(string)]; ok {
			req.Status = st
		}
	case certificate.FieldCost:
		v := toInt64(value)
		req.Cost = &v
	case certificate.FieldAdditionalCost:
		v := toInt64(value)
		req.AdditionalCost = &v
	case certificate.FieldOrderNumber:
		s := value.(string)
		req.OrderNumber = &s
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		panic(fmt.Sprintf("unsupported numeric patch value %T", v))
	}
}

type fakeEventRepo struct {
	events []*event.Event
	err    error
}

func (r *fakeEventRepo) Create(_ context.Context, e *event.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) ListByCertificateID(_ context.Context, certificateID uuid.UUID) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range r.events {
		if e.CertificateID == certificateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) byType(t event.Type) []*event.Event {
	var out []*event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeTagRepo struct {
	syncs map[uuid.UUID]tag.Sync
	calls int
	err   error
}

func (r *fakeTagRepo) UpdateCertificateTags(_ context.Context, certificateID uuid.UUID, tagIDs []uuid.UUID) (tag.Sync, error) {
	r.calls++
	if r.err != nil {
		return tag.Sync{}, r.err
	}
	if sync, ok := r.syncs[certificateID]; ok {
		return sync, nil
	}
	return tag.Sync{Previous: nil, Current: tagIDs}, nil
}

type fakeCommentRepo struct {
	comments []*comment.Comment
	err      error
}

func (r *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	if r.err != nil {
		return r.err
	}
	r.comments = append(r.comments, c)
	return nil
}

type fakeValidationSource struct {
	rules map[string][]validation.Requirement
	err   error
}

func (s *fakeValidationSource) FetchActiveValidations(_ context.Context, statusName string) ([]validation.Requirement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rules[statusName], nil
}

type fakeStatusRepo struct {
	statuses map[string]status.Status
}

func (r *fakeStatusRepo) GetByName(_ context.Context, name string) (status.Status, error) {
	st, ok := r.statuses[name]
	if !ok {
		return status.Status{}, status.ErrNotFound
	}
	return st, nil
}

func (r *fakeStatusRepo) GetDefault(_ context.Context) (status.Status, error) {
	return r.statuses["pending"], nil
}

func (r *fakeStatusRepo) List(_ context.Context) ([]status.Status, error) {
	out := make([]status.Status, 0, len(r.statuses))
	for _, st := range r.statuses {
		out = append(out, st)
	}
	return out, nil
}

type testEnv struct {
	svc      *CertificateService
	repo     *fakeCertificateRepo
	events   *fakeEventRepo
	tags     *fakeTagRepo
	comments *fakeCommentRepo
	rules    *fakeValidationSource
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := newFakeCertificateRepo()
	eventsRepo := &fakeEventRepo{}
	tagsRepo := &fakeTagRepo{syncs: map[uuid.UUID]tag.Sync{}}
	commentsRepo := &fakeCommentRepo{}
	rules := &fakeValidationSource{rules: map[string][]validation.Requirement{}}
	statuses := &fakeStatusRepo{statuses: testStatuses()}

	return &testEnv{
		svc:      NewCertificateService(repo, eventsRepo, tagsRepo, commentsRepo, rules, statuses, nil, logger),
		repo:     repo,
		events:   eventsRepo,
		tags:     tagsRepo,
		comments: commentsRepo,
		rules:    rules,
	}
}

func newPendingRequest(ownerID uuid.UUID) *certificate.CertificateRequest {
	return &certificate.CertificateRequest{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Type:         "birth",
		RecordNumber: "A-100",
		PartiesName:  "Doe, John",
		Priority:     certificate.PriorityNormal,
		Status:       statusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func strPtr(s string) *string { return &s }
