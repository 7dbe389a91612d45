// Package cache provides caching for pipeline stages and API clients.
//
// The Cache interface abstracts over storage backends so the CLI can use
// a local file cache while the server uses Redis. Keys are generated by a
// Keyer, which guarantees that every input that affects a stage's output
// is part of its key.
//
// Three layers of the pipeline are cached independently:
//
//   - extraction results (document -> process), keyed by document hash and
//     extraction options
//   - layouts (process -> diagram), keyed by process hash and layout options
//   - rendered artifacts (diagram -> svg/png/pdf/dot/json), keyed by
//     diagram hash and render options
//
// HTTP responses from external APIs (Miro, ClickUp) are cached with HTTPKey
// under their own namespaces.
package cache

import (
	"context"
	"time"
)

// TTL values for each cached layer. Extraction results can drift as models
// change, so they expire faster than layouts and artifacts, which are pure
// functions of their inputs.
const (
	// TTLHTTP is the time-to-live for cached HTTP responses.
	TTLHTTP = 1 * time.Hour

	// TTLExtract is the time-to-live for cached extraction results.
	TTLExtract = 7 * 24 * time.Hour

	// TTLLayout is the time-to-live for cached diagram layouts.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the time-to-live for cached rendered artifacts.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Returns (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ExtractKeyOpts captures the options that affect an extraction result.
type ExtractKeyOpts struct {
	Mode  string // "llm" or "file"
	Model string // LLM model identifier, empty for file mode
}

// LayoutKeyOpts captures the options that affect a layout.
type LayoutKeyOpts struct {
	DiagramType string // "process", "sipoc", or "valuechain"
	LaneHeight  int
	SpacingX    int
	SpacingY    int
}

// ArtifactKeyOpts captures the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string // "svg", "png", "pdf", "dot", or "json"
	Background  string
	Interactive bool
	Horizontal  bool // dot rank direction
}

// Keyer generates cache keys for each cached layer.
// All keys generated by the same Keyer share a consistent scheme, and
// every option that affects the cached value is folded into the key.
type Keyer interface {
	// HTTPKey generates a key for an HTTP response.
	HTTPKey(namespace, key string) string

	// ExtractKey generates a key for an extraction result.
	// docHash is the content hash of the source document.
	ExtractKey(docHash string, opts ExtractKeyOpts) string

	// LayoutKey generates a key for a diagram layout.
	// processHash is the content hash of the canonical process JSON.
	LayoutKey(processHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// diagramHash is the content hash of the canonical diagram JSON.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for an HTTP response.
// HTTP keys embed the raw namespace and key so that related entries can be
// inspected and invalidated together.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ExtractKey generates a key for an extraction result.
func (k *DefaultKeyer) ExtractKey(docHash string, opts ExtractKeyOpts) string {
	return hashKey("extract", docHash, opts)
}

// LayoutKey generates a key for a diagram layout.
func (k *DefaultKeyer) LayoutKey(processHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", processHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
