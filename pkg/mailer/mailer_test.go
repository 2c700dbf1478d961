package mailer

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
)

// captureOutput captures stdout for testing
func captureOutput(f func()) string {
	oldStdout := os.Stdout

	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)

	return buf.String()
}

// captureLog captures log output for testing
func captureLog(f func()) string {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	f()
	log.SetOutput(os.Stderr)
	return buf.String()
}

// MockMailer is a mock implementation of the Mailer interface for testing
type MockMailer struct {
	shouldFail bool
	LastTo     string
	LastHTML   string
}

func NewMockMailer(shouldFail bool) *MockMailer {
	return &MockMailer{
		shouldFail: shouldFail,
	}
}

func (m *MockMailer) SendTestEmail(to, subject, html string) error {
	if m.shouldFail {
		return errors.New("mock mailer error")
	}
	m.LastTo = to
	m.LastHTML = html
	return nil
}

func TestSMTPMailer_SendTestEmail_TestMode(t *testing.T) {
	m := NewTestSMTPMailer(&Config{
		FromEmail: "noreply@example.com",
		FromName:  "Draftmail",
	})

	output := captureLog(func() {
		if err := m.SendTestEmail("designer@example.com", "Preview", "<p>Hi</p>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(output, "designer@example.com") {
		t.Errorf("test mode must log the recipient, got %q", output)
	}
	if !strings.Contains(output, "Preview") {
		t.Errorf("test mode must log the subject, got %q", output)
	}
}

func TestSMTPMailer_SendTestEmail_InvalidRecipient(t *testing.T) {
	m := NewTestSMTPMailer(&Config{
		FromEmail: "noreply@example.com",
		FromName:  "Draftmail",
	})

	if err := m.SendTestEmail("not-an-address", "Preview", "<p>Hi</p>"); err == nil {
		t.Errorf("expected error for malformed recipient")
	}
}

func TestSMTPMailer_SendTestEmail_DefaultSubject(t *testing.T) {
	m := NewTestSMTPMailer(&Config{
		FromEmail: "noreply@example.com",
		FromName:  "Draftmail",
	})

	output := captureLog(func() {
		if err := m.SendTestEmail("designer@example.com", "", "<p>Hi</p>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(output, "Test email") {
		t.Errorf("empty subject must fall back to a default, got %q", output)
	}
}

func TestEnsureEmailEnvelope_WrapsFragments(t *testing.T) {
	wrapped := EnsureEmailEnvelope("<p>Hello</p>", "Preview")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8" />`,
		"<title>Preview</title>",
		"border-collapse: collapse",
		"<p>Hello</p>",
	} {
		if !strings.Contains(wrapped, want) {
			t.Errorf("wrapped output missing %q", want)
		}
	}
}

func TestEnsureEmailEnvelope_EscapesSubject(t *testing.T) {
	wrapped := EnsureEmailEnvelope("<p>Hello</p>", `Sale <50% off> & more`)

	if !strings.Contains(wrapped, "<title>Sale &lt;50% off&gt; &amp; more</title>") {
		t.Errorf("subject must be HTML-escaped in the title, got %q", wrapped)
	}
}

func TestEnsureEmailEnvelope_FullDocumentUntouched(t *testing.T) {
	full := "<!DOCTYPE html>\n<html><head></head><body>x</body></html>"
	if got := EnsureEmailEnvelope(full, "ignored"); got != full {
		t.Errorf("full documents must pass through unchanged")
	}
}

func TestConsoleMailer_SendTestEmail(t *testing.T) {
	output := captureOutput(func() {
		if err := NewConsoleMailer().SendTestEmail("designer@example.com", "Preview", "<p>Hi</p>"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(output, "designer@example.com") || !strings.Contains(output, "Preview") {
		t.Errorf("console mailer must print recipient and subject, got %q", output)
	}
}

func TestMockMailer(t *testing.T) {
	m := NewMockMailer(false)
	if err := m.SendTestEmail("a@b.com", "s", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.LastTo != "a@b.com" {
		t.Errorf("mock must record the recipient")
	}

	failing := NewMockMailer(true)
	if err := failing.SendTestEmail("a@b.com", "s", "<p>x</p>"); err == nil {
		t.Errorf("expected mock error")
	}
}
