package remotefs

import (
	"context"
	"fmt"
	"strings"
)

// UnzipMode controls whether a fetched resource is treated as a zip archive.
type UnzipMode string

const (
	// UnzipNone persists the fetched resource as a single file.
	UnzipNone UnzipMode = "none"
	// UnzipZip extracts the fetched resource as a zip archive.
	UnzipZip UnzipMode = "zip"
	// UnzipAuto resolves to UnzipZip iff the URL ends with ".zip".
	UnzipAuto UnzipMode = "auto"
)

// Request describes one ingestion: fetch RemoteURL and materialize the
// result at LocalPath in the store. An empty Unzip means UnzipNone.
type Request struct {
	RemoteURL string
	LocalPath string
	Headers   map[string]string
	Unzip     UnzipMode
}

// IngestService coordinates fetch, archive extraction, ancestor wrapping,
// and depth-first persistence for one request at a time. It holds no
// per-request state, so a single service may serve concurrent requests.
type IngestService struct {
	fetcher *Fetcher
	store   Store
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewIngestService creates an IngestService with the provided dependencies.
func NewIngestService(fetcher *Fetcher, store Store, logger Logger, clock Clock, idgen IDGenerator) *IngestService {
	return &IngestService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// Ingest runs the full pipeline for one request. Mode resolution and request
// validation happen before any fetch; nothing is written before the persist
// phase begins, and a save failure stops the traversal immediately without
// rolling back siblings already persisted.
func (s *IngestService) Ingest(ctx context.Context, req Request) error {
	if req.RemoteURL == "" || req.LocalPath == "" {
		return fmt.Errorf("%w: remote_url and local_path are required", ErrMalformedRequest)
	}

	mode := req.Unzip
	if mode == "" {
		mode = UnzipNone
	}
	if mode == UnzipAuto {
		if strings.HasSuffix(req.RemoteURL, ".zip") {
			mode = UnzipZip
		} else {
			mode = UnzipNone
		}
	}
	if mode != UnzipNone && mode != UnzipZip {
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(req.Unzip))
	}

	id := s.idgen.New()
	start := s.clock.Now()
	s.logger.Info("ingest started",
		"id", id, "url", req.RemoteURL, "path", req.LocalPath, "mode", string(mode))

	if err := s.run(ctx, req, mode); err != nil {
		s.logger.Error("ingest failed", "id", id, "path", req.LocalPath, "error", err)
		return err
	}
	s.logger.Info("ingest finished",
		"id", id, "path", req.LocalPath, "elapsed", s.clock.Now().Sub(start))
	return nil
}

// run executes the fetch/extract/wrap/persist phases for one validated
// request. Every failure, whichever phase it comes from, surfaces to Ingest
// for logging.
func (s *IngestService) run(ctx context.Context, req Request, mode UnzipMode) error {
	var tree Record
	switch mode {
	case UnzipNone:
		rec, err := s.fetcher.Fetch(ctx, req.RemoteURL, req.LocalPath, req.Headers)
		if err != nil {
			return err
		}
		tree = rec
	case UnzipZip:
		// The .zip suffix forces the binary transport encoding; the
		// temporary path itself is never persisted.
		rec, err := s.fetcher.Fetch(ctx, req.RemoteURL, req.LocalPath+".zip", req.Headers)
		if err != nil {
			return err
		}
		extracted, err := ExtractZipRecord(rec, req.LocalPath)
		if err != nil {
			return err
		}
		tree = extracted
	}

	wrapped, err := WrapAncestors(tree)
	if err != nil {
		return err
	}

	return s.persist(ctx, wrapped)
}

// persist walks the record tree depth-first, saving each directory before
// its children. Directories are submitted as content-free markers; the
// in-memory tree is left intact.
func (s *IngestService) persist(ctx context.Context, rec Record) error {
	switch r := rec.(type) {
	case *DirectoryRecord:
		marker := &DirectoryRecord{Name: r.Name, Path: r.Path}
		if err := s.store.Save(ctx, marker); err != nil {
			return fmt.Errorf("saving directory %q: %w: %w", r.Path, ErrStorage, err)
		}
		s.logger.Debug("directory saved", "path", r.Path, "children", len(r.Children))
		for _, child := range r.Children {
			if err := s.persist(ctx, child); err != nil {
				return err
			}
		}
		return nil
	case *FileRecord:
		if err := s.store.Save(ctx, r); err != nil {
			return fmt.Errorf("saving file %q: %w: %w", r.Path, ErrStorage, err)
		}
		s.logger.Debug("file saved", "path", r.Path)
		return nil
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
}
