package core

import "errors"

// Error taxonomy for the ingestion core. Intake-level errors fail the
// whole call; per-document errors are isolated by the orchestrator and
// never surface as batch failures.
var (
	// ErrArchiveCorrupt means the uploaded container could not be
	// opened as a valid archive. No partial intake happens.
	ErrArchiveCorrupt = errors.New("archive is invalid or corrupted")

	// ErrNoValidInput means every supplied file was outside the
	// supported extension set.
	ErrNoValidInput = errors.New("no valid input files")

	// ErrUnsupportedFormat means a format-specific capability is
	// unavailable in the runtime (e.g. legacy .doc conversion helpers).
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrRenderFailure means page rasterization produced no pages for
	// a PDF document.
	ErrRenderFailure = errors.New("page rendering failed")

	// ErrNoDocumentsProcessed means every document in a batch failed.
	// A partially successful batch is not an error.
	ErrNoDocumentsProcessed = errors.New("no documents could be processed")

	// ErrUploadTooLarge means the combined upload exceeds the
	// configured size limit. Nothing is materialized.
	ErrUploadTooLarge = errors.New("upload exceeds size limit")

	// ErrSessionNotFound means the session ID is unknown to the
	// repository.
	ErrSessionNotFound = errors.New("session not found")
)
