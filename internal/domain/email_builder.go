package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"

	"github.com/draftmail/draftmail/pkg/emailblocks"
)

func gjsonValidObject(s string) bool {
	return gjson.Valid(s) && gjson.Parse(s).IsObject()
}

// EmailBuilderService converts between Block Documents and email-safe HTML
// and supports the surrounding designer workflow.
type EmailBuilderService interface {
	// RenderDocument converts a Block Document into a full email-safe HTML page.
	RenderDocument(ctx context.Context, req *RenderEmailRequest) (string, error)
	// ParseHTML recovers a Block Document from previously rendered HTML.
	ParseHTML(ctx context.Context, req *ParseEmailRequest) (*emailblocks.ParseResult, error)
	// ValidateDocument checks a Block Document against the structural invariants.
	ValidateDocument(ctx context.Context, req *ValidateEmailRequest) (*emailblocks.ValidationResult, error)
	// StarterDocument returns the canonical starting template.
	StarterDocument(ctx context.Context) *emailblocks.EmailDocument
	// SendTestEmail renders a document and delivers it to a single recipient.
	SendTestEmail(ctx context.Context, req *TestSendEmailRequest) error
}

// RenderEmailRequest defines the request to render a Block Document to HTML
type RenderEmailRequest struct {
	Document     json.RawMessage `json:"document"`
	TemplateData string          `json:"templateData,omitempty"`
}

// Validate validates the render request
func (r *RenderEmailRequest) Validate() error {

	if len(r.Document) == 0 {
		return fmt.Errorf("document is required")
	}

	if r.TemplateData != "" && !gjsonValidObject(r.TemplateData) {
		return fmt.Errorf("templateData must be a JSON object")
	}

	return nil
}

// ParseEmailRequest defines the request to parse rendered HTML back into a
// Block Document
type ParseEmailRequest struct {
	HTML string `json:"html"`
}

// Validate validates the parse request
func (r *ParseEmailRequest) Validate() error {

	if r.HTML == "" {
		return fmt.Errorf("html is required")
	}

	return nil
}

// ValidateEmailRequest defines the request to validate a Block Document
type ValidateEmailRequest struct {
	Document json.RawMessage `json:"document"`
}

// Validate validates the validation request
func (r *ValidateEmailRequest) Validate() error {

	if len(r.Document) == 0 {
		return fmt.Errorf("document is required")
	}

	return nil
}

// TestSendEmailRequest defines the request to deliver a rendered document to
// a single inbox
type TestSendEmailRequest struct {
	Document     json.RawMessage `json:"document"`
	To           string          `json:"to"`
	TemplateData string          `json:"templateData,omitempty"`
}

// Validate validates the test send request
func (r *TestSendEmailRequest) Validate() error {

	if len(r.Document) == 0 {
		return fmt.Errorf("document is required")
	}

	if r.To == "" {
		return fmt.Errorf("to is required")
	}

	if !govalidator.IsEmail(r.To) {
		return fmt.Errorf("to must be a valid email address")
	}

	if r.TemplateData != "" && !gjsonValidObject(r.TemplateData) {
		return fmt.Errorf("templateData must be a JSON object")
	}

	return nil
}

// RenderEmailResponse carries the rendered HTML back to the caller
type RenderEmailResponse struct {
	HTML string `json:"html"`
}

// ParseEmailResponse carries the recovered document and degradation signal
type ParseEmailResponse struct {
	Document      *emailblocks.EmailDocument `json:"document"`
	NoBlocksFound bool                       `json:"noBlocksFound"`
}
