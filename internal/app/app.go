// Package app is the application layer between the CLI/server and the
// ingestion service. It constructs all dependencies from config and
// manages their lifecycle on Close.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"remotefs-go/internal/config"
	"remotefs-go/internal/encryption"
	"remotefs-go/internal/remotefs"
	"remotefs-go/internal/store"
	"remotefs-go/internal/transport"
)

// App wires together the transport, store, and ingestion service.
// The caller must call Close when done.
type App struct {
	cfg     *config.Config
	store   remotefs.Store
	service *remotefs.IngestService
	logger  remotefs.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the command being run (e.g. "Fetch", "Serve");
// it tags every log line the app writes.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	s, err := store.NewStoreFromConfig(context.Background(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if cfg.Store.Encrypt {
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			closeStore(s)
			return nil, fmt.Errorf("creating encryptor: %w", err)
		}
		wrapped, err := store.NewEncryptedStore(s, enc)
		if err != nil {
			closeStore(s)
			return nil, fmt.Errorf("enabling store encryption: %w", err)
		}
		s = wrapped
	}

	tr := transport.NewHTTPTransport(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		cfg.Fetch.MaxBodyBytes,
	)

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, operation+"-"+opID)
	if err != nil {
		closeStore(s)
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	svc := remotefs.NewIngestService(
		remotefs.NewFetcher(tr),
		s,
		adapter,
		remotefs.RealClock{},
		remotefs.UUIDGenerator{},
	)

	return &App{
		cfg:     cfg,
		store:   s,
		service: svc,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// Ingest fetches the requested remote content and persists it.
func (a *App) Ingest(ctx context.Context, req remotefs.Request) error {
	return a.service.Ingest(ctx, req)
}

// Service returns the underlying ingestion service.
func (a *App) Service() *remotefs.IngestService {
	return a.service
}

// Logger returns the structured logger the app writes through. It stays
// valid until Close.
func (a *App) Logger() remotefs.Logger {
	return a.logger
}

// Config returns the config the app was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := closeStore(a.store); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}

// closeStore closes the store if the backend holds resources.
func closeStore(s remotefs.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
