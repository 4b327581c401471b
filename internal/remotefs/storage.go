package remotefs

import "context"

// Store persists file and directory records into a hierarchical backend
// addressed by slash-delimited paths.
//
// Save receives either a *FileRecord with inline content or a
// *DirectoryRecord with an empty child list — the ingest service submits
// content-free directory markers and persists children separately.
// Implementations must be safe for concurrent use; the pipeline serializes
// nothing across requests.
type Store interface {
	Save(ctx context.Context, rec Record) error
}
