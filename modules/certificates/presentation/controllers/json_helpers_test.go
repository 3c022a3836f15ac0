package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/certificates-backend/modules/certificates/presentation/controllers/dtos"
)

func TestEnsureRequestID_UsesIncomingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/certificates/api/requests", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()

	require.Equal(t, "req-123", ensureRequestID(rr, req))
}

func TestEnsureRequestID_GeneratesAndEchoesWhenAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/certificates/api/requests", nil)
	rr := httptest.NewRecorder()

	id := ensureRequestID(rr, req)
	require.NotEmpty(t, id)
	require.Equal(t, id, rr.Header().Get("X-Request-ID"))
}

func TestWriteAPIError_IncludesCodeAndRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/certificates/api/requests", nil)
	req.Header.Set("X-Request-ID", "req-456")
	rr := httptest.NewRecorder()

	writeAPIErrorDetails(rr, req, http.StatusConflict, "BULK_UPDATE_CERTIFICATES_BLOCKED", "blocked", map[string]any{
		"blocked_certificates": []string{"a"},
	})

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload dtos.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.Equal(t, "BULK_UPDATE_CERTIFICATES_BLOCKED", payload.Code)
	require.Equal(t, "blocked", payload.Message)
	require.Equal(t, "req-456", payload.Meta["request_id"])
	require.Contains(t, payload.Details, "blocked_certificates")
}
