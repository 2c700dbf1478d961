package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/draftmail/draftmail/config"
	httpHandler "github.com/draftmail/draftmail/internal/http"
	"github.com/draftmail/draftmail/internal/service"
	"github.com/draftmail/draftmail/pkg/logger"
	"github.com/draftmail/draftmail/pkg/mailer"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetMailer() mailer.Mailer

	// Methods for initialization steps
	InitMailer() error
	InitServices() error
	InitHandlers() error
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	mailer mailer.Mailer

	// Services
	emailBuilderService *service.EmailBuilderService

	mux    *http.ServeMux
	server *http.Server
}

// AppOption defines a function that configures an App
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMailer sets a custom mailer
func WithMailer(mailer mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = mailer
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	a := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logger.NewLoggerWithLevel(cfg.LogLevel)
	}

	return a
}

// InitMailer initializes the mailer. In development, or when no SMTP host is
// configured, emails go to the console instead of a real SMTP server.
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() || a.config.SMTP.Host == "" {
		a.mailer = mailer.NewConsoleMailer()
		a.logger.Info("Using console mailer")
		return nil
	}

	a.mailer = mailer.NewSMTPMailer(&mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
	})
	a.logger.WithField("host", a.config.SMTP.Host).Info("Using SMTP mailer")
	return nil
}

// InitServices initializes all services
func (a *App) InitServices() error {
	a.emailBuilderService = service.NewEmailBuilderService(a.logger, a.mailer)
	return nil
}

// InitHandlers initializes the HTTP handlers and registers routes
func (a *App) InitHandlers() error {
	emailBuilderHandler := httpHandler.NewEmailBuilderHandler(a.emailBuilderService, a.logger)
	emailBuilderHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, a.config.Version)
	})

	return nil
}

// Initialize sets up all application components in order
func (a *App) Initialize() error {
	if err := a.InitMailer(); err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	if err := a.InitServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	if err := a.InitHandlers(); err != nil {
		return fmt.Errorf("failed to initialize handlers: %w", err)
	}
	return nil
}

// Start starts the HTTP server and blocks until it stops
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)

	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.WithField("addr", addr).Info("HTTP server listening")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (a *App) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	a.logger.Info("Shutting down HTTP server")
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// GetConfig returns the application configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the application logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the HTTP request multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetMailer returns the mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}
