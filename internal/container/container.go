// Package container provides dependency injection for the casha application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"casha/finance-advisor/internal/api"
	"casha/finance-advisor/internal/categorizer"
	"casha/finance-advisor/internal/config"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/insight"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/session"
	"casha/finance-advisor/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	parser      *ingest.Parser
	sessions    *session.Store
	gemini      *insight.GeminiGenerator
	insights    *insight.Service
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger).WithFallback(cfg.Upload.DefaultCategory)

	opts, err := parserOptions(cfg)
	if err != nil {
		return nil, err
	}
	parser := ingest.NewParser(logger, opts)

	var gemini *insight.GeminiGenerator
	var generator insight.Generator
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err = insight.NewGeminiGenerator(context.Background(), insight.GeminiOptions{
			APIKey:          cfg.AI.APIKey,
			Model:           cfg.AI.Model,
			Temperature:     cfg.AI.Temperature,
			MaxOutputTokens: cfg.AI.MaxOutputTokens,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create insight generator: %w", err)
		}
		generator = gemini
		logger.Info("AI insights enabled", logging.F(logging.FieldModel, cfg.AI.Model))
	} else {
		logger.Info("AI insights disabled")
	}
	insights := insight.NewService(generator, cat, logger).WithTimeout(cfg.AITimeout())

	logger.Info("Container initialized successfully",
		logging.F("max_upload_bytes", opts.MaxBytes),
		logging.F("ai_enabled", generator != nil))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		parser:      parser,
		sessions:    session.NewStore(),
		gemini:      gemini,
		insights:    insights,
	}, nil
}

func parserOptions(cfg *config.Config) (ingest.Options, error) {
	opts := ingest.Options{
		MaxBytes:           cfg.MaxUploadBytes(),
		DefaultDescription: cfg.Upload.DefaultDescription,
		DefaultCategory:    cfg.Upload.DefaultCategory,
	}
	if d := []rune(cfg.CSV.Delimiter); len(d) == 1 {
		opts.Delimiter = d[0]
	}
	if cfg.Upload.DefaultCurrency != "" {
		code, ok := currency.ParseCode(cfg.Upload.DefaultCurrency)
		if !ok {
			return opts, fmt.Errorf("unsupported default currency: %s", cfg.Upload.DefaultCurrency)
		}
		opts.Currency = code
	}
	return opts, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the file parser configured from the upload settings.
func (c *Container) GetParser() *ingest.Parser {
	return c.parser
}

// GetSessions returns the in-memory session store.
func (c *Container) GetSessions() *session.Store {
	return c.sessions
}

// GetInsightService returns the insight service. Its generator is nil when
// AI is disabled.
func (c *Container) GetInsightService() *insight.Service {
	return c.insights
}

// NewAPIServer builds the HTTP server from the wired components.
func (c *Container) NewAPIServer(addr string) *api.Server {
	if addr == "" {
		addr = c.config.Server.Addr
	}
	h := api.NewHandlers(c.parser, c.sessions, c.insights, c.logger)
	return api.NewServer(h, api.ServerOptions{
		Addr:         addr,
		ReadTimeout:  time.Duration(c.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(c.config.Server.WriteTimeoutSeconds) * time.Second,
	}, c.logger)
}

// Close releases the insight client, if any.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			return fmt.Errorf("failed to close insight generator: %w", err)
		}
	}
	c.logger.Info("Container closed")
	return nil
}
