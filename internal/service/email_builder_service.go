package service

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/draftmail/draftmail/internal/domain"
	"github.com/draftmail/draftmail/pkg/emailblocks"
	"github.com/draftmail/draftmail/pkg/logger"
	"github.com/draftmail/draftmail/pkg/mailer"
)

// EmailBuilderService converts Block Documents to email-safe HTML and back,
// validates documents and delivers test sends.
type EmailBuilderService struct {
	logger logger.Logger
	mailer mailer.Mailer
}

// NewEmailBuilderService creates a new email builder service
func NewEmailBuilderService(logger logger.Logger, mailer mailer.Mailer) *EmailBuilderService {
	return &EmailBuilderService{
		logger: logger,
		mailer: mailer,
	}
}

// RenderDocument renders a Block Document into a full HTML email page,
// running Liquid personalization when template data is provided.
func (s *EmailBuilderService) RenderDocument(ctx context.Context, request *domain.RenderEmailRequest) (string, error) {
	// Validate the request
	if err := request.Validate(); err != nil {
		s.logger.Error("Failed to validate render request")
		return "", err
	}

	doc, err := s.loadDocument(request.Document)
	if err != nil {
		return "", err
	}

	html, err := emailblocks.RenderDocumentWithData(doc, request.TemplateData)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to render document")
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"blocks": len(doc.Blocks),
		"bytes":  len(html),
	}).Debug("Rendered document")

	return html, nil
}

// ParseHTML recovers a Block Document from previously rendered HTML.
func (s *EmailBuilderService) ParseHTML(ctx context.Context, request *domain.ParseEmailRequest) (*emailblocks.ParseResult, error) {
	// Validate the request
	if err := request.Validate(); err != nil {
		s.logger.Error("Failed to validate parse request")
		return nil, err
	}

	result, err := emailblocks.ParseHTML(request.HTML)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to parse HTML")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if result.NoBlocksFound {
		s.logger.Warn("No editable blocks found in HTML")
	}

	return result, nil
}

// ValidateDocument checks a Block Document against the structural invariants.
func (s *EmailBuilderService) ValidateDocument(ctx context.Context, request *domain.ValidateEmailRequest) (*emailblocks.ValidationResult, error) {
	// Validate the request
	if err := request.Validate(); err != nil {
		s.logger.Error("Failed to validate validation request")
		return nil, err
	}

	doc, err := s.loadDocument(request.Document)
	if err != nil {
		return nil, err
	}

	return emailblocks.ValidateDocument(doc), nil
}

// StarterDocument returns the canonical starting template.
func (s *EmailBuilderService) StarterDocument(ctx context.Context) *emailblocks.EmailDocument {
	return emailblocks.StarterDocument()
}

// SendTestEmail renders the document and delivers it to a single recipient.
func (s *EmailBuilderService) SendTestEmail(ctx context.Context, request *domain.TestSendEmailRequest) error {
	// Validate the request
	if err := request.Validate(); err != nil {
		s.logger.Error("Failed to validate test send request")
		return err
	}

	doc, err := s.loadDocument(request.Document)
	if err != nil {
		return err
	}

	html, err := emailblocks.RenderDocumentWithData(doc, request.TemplateData)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to render document for test send")
		return err
	}

	if err := s.mailer.SendTestEmail(request.To, doc.Subject, html); err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to deliver test email")
		return fmt.Errorf("failed to deliver test email: %w", err)
	}

	s.logger.WithField("to", request.To).Info("Test email delivered")
	return nil
}

// loadDocument accepts either a Block Document object or a payload that wraps
// one under a "document" key, which older editor builds used to send.
func (s *EmailBuilderService) loadDocument(raw []byte) (*emailblocks.EmailDocument, error) {
	payload := string(raw)
	if !gjson.Valid(payload) {
		return nil, domain.NewValidationError("document is not valid JSON")
	}

	if wrapped := gjson.Get(payload, "document"); wrapped.IsObject() && !gjson.Get(payload, "blocks").Exists() {
		payload = wrapped.Raw
	}

	doc, err := emailblocks.UnmarshalEmailDocument([]byte(payload))
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to decode document")
		return nil, domain.NewValidationError(err.Error())
	}
	return doc, nil
}
