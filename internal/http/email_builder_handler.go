package http

import (
	"encoding/json"
	"net/http"

	"github.com/draftmail/draftmail/internal/domain"
	"github.com/draftmail/draftmail/pkg/logger"
)

type EmailBuilderHandler struct {
	service domain.EmailBuilderService
	logger  logger.Logger
}

func NewEmailBuilderHandler(service domain.EmailBuilderService, logger logger.Logger) *EmailBuilderHandler {
	return &EmailBuilderHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EmailBuilderHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with camelCase notation
	mux.Handle("/api/email.render", http.HandlerFunc(h.HandleRender))
	mux.Handle("/api/email.parse", http.HandlerFunc(h.HandleParse))
	mux.Handle("/api/email.validate", http.HandlerFunc(h.HandleValidate))
	mux.Handle("/api/email.starter", http.HandlerFunc(h.HandleStarter))
	mux.Handle("/api/email.testSend", http.HandlerFunc(h.HandleTestSend))
}

// HandleRender handles the render request (POST)
func (h *EmailBuilderHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RenderEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	html, err := h.service.RenderDocument(r.Context(), &req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to render document")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, domain.RenderEmailResponse{HTML: html})
}

// HandleParse handles the parse request (POST)
func (h *EmailBuilderHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ParseEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ParseHTML(r.Context(), &req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to parse HTML")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, domain.ParseEmailResponse{
		Document:      result.Document,
		NoBlocksFound: result.NoBlocksFound,
	})
}

// HandleValidate handles the validate request (POST)
func (h *EmailBuilderHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ValidateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ValidateDocument(r.Context(), &req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to validate document")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleStarter handles the starter template request (GET)
func (h *EmailBuilderHandler) HandleStarter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document": h.service.StarterDocument(r.Context()),
	})
}

// HandleTestSend handles the test send request (POST)
func (h *EmailBuilderHandler) HandleTestSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.TestSendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SendTestEmail(r.Context(), &req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to send test email")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
