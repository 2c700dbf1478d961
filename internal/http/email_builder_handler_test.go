package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftmail/draftmail/internal/domain"
	"github.com/draftmail/draftmail/pkg/emailblocks"
	"github.com/draftmail/draftmail/pkg/logger"
)

type mockEmailBuilderService struct {
	renderHTML  string
	renderErr   error
	parseResult *emailblocks.ParseResult
	parseErr    error
	validation  *emailblocks.ValidationResult
	validateErr error
	sendErr     error

	lastTestSend *domain.TestSendEmailRequest
}

func (m *mockEmailBuilderService) RenderDocument(ctx context.Context, req *domain.RenderEmailRequest) (string, error) {
	return m.renderHTML, m.renderErr
}

func (m *mockEmailBuilderService) ParseHTML(ctx context.Context, req *domain.ParseEmailRequest) (*emailblocks.ParseResult, error) {
	return m.parseResult, m.parseErr
}

func (m *mockEmailBuilderService) ValidateDocument(ctx context.Context, req *domain.ValidateEmailRequest) (*emailblocks.ValidationResult, error) {
	return m.validation, m.validateErr
}

func (m *mockEmailBuilderService) StarterDocument(ctx context.Context) *emailblocks.EmailDocument {
	return emailblocks.StarterDocument()
}

func (m *mockEmailBuilderService) SendTestEmail(ctx context.Context, req *domain.TestSendEmailRequest) error {
	m.lastTestSend = req
	return m.sendErr
}

func newTestHandler(svc *mockEmailBuilderService) *EmailBuilderHandler {
	return NewEmailBuilderHandler(svc, logger.NewMockLogger())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleRender(t *testing.T) {
	svc := &mockEmailBuilderService{renderHTML: "<!DOCTYPE html><html></html>"}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleRender, "/api/email.render", map[string]interface{}{
		"document": map[string]interface{}{"blocks": []interface{}{}},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp domain.RenderEmailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, svc.renderHTML, resp.HTML)
}

func TestHandleRender_ServiceError(t *testing.T) {
	svc := &mockEmailBuilderService{renderErr: errors.New("document is required")}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleRender, "/api/email.render", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "document is required")
}

func TestHandleRender_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&mockEmailBuilderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/email.render", nil)
	rec := httptest.NewRecorder()
	h.HandleRender(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleRender_InvalidBody(t *testing.T) {
	h := newTestHandler(&mockEmailBuilderService{})

	req := httptest.NewRequest(http.MethodPost, "/api/email.render", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	h.HandleRender(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleParse(t *testing.T) {
	svc := &mockEmailBuilderService{
		parseResult: &emailblocks.ParseResult{
			Document: emailblocks.StarterDocument(),
		},
	}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleParse, "/api/email.parse", map[string]string{"html": "<html></html>"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ParseEmailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.NoBlocksFound)
	assert.NotEmpty(t, resp.Document.Blocks)
}

func TestHandleParse_NoBlocks(t *testing.T) {
	svc := &mockEmailBuilderService{
		parseResult: &emailblocks.ParseResult{
			Document:      &emailblocks.EmailDocument{},
			NoBlocksFound: true,
		},
	}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleParse, "/api/email.parse", map[string]string{"html": "<p>x</p>"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"noBlocksFound":true`)
}

func TestHandleValidate(t *testing.T) {
	svc := &mockEmailBuilderService{
		validation: &emailblocks.ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}},
	}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleValidate, "/api/email.validate", map[string]interface{}{
		"document": map[string]interface{}{"blocks": []interface{}{}},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)
}

func TestHandleStarter(t *testing.T) {
	h := newTestHandler(&mockEmailBuilderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/email.starter", nil)
	rec := httptest.NewRecorder()
	h.HandleStarter(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"document"`)
	assert.Contains(t, rec.Body.String(), `"blockType":"hero"`)
}

func TestHandleStarter_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&mockEmailBuilderService{})

	req := httptest.NewRequest(http.MethodPost, "/api/email.starter", nil)
	rec := httptest.NewRecorder()
	h.HandleStarter(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleTestSend(t *testing.T) {
	svc := &mockEmailBuilderService{}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleTestSend, "/api/email.testSend", map[string]interface{}{
		"document": map[string]interface{}{"blocks": []interface{}{}},
		"to":       "designer@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	require.NotNil(t, svc.lastTestSend)
	assert.Equal(t, "designer@example.com", svc.lastTestSend.To)
}

func TestHandleTestSend_ServiceError(t *testing.T) {
	svc := &mockEmailBuilderService{sendErr: errors.New("failed to deliver test email")}
	h := newTestHandler(svc)

	rec := postJSON(t, h.HandleTestSend, "/api/email.testSend", map[string]interface{}{
		"document": map[string]interface{}{"blocks": []interface{}{}},
		"to":       "designer@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to deliver test email")
}

func TestRegisterRoutes(t *testing.T) {
	svc := &mockEmailBuilderService{renderHTML: "<!DOCTYPE html>"}
	h := newTestHandler(svc)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/email.starter", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
