// Package store persists processes and their positioned diagrams.
//
// Two backends implement the Store interface:
//   - memory: in-process maps for development and tests
//   - mongo: MongoDB collections for deployments
//
// Records carry generated UUIDs so callers can reference a process
// across layout runs, renders, and publishes. Save operations upsert:
// an empty ID gets a fresh one, a known ID replaces the stored record.
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Deployment
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "laneflow")
//	if err != nil {
//		return err
//	}
//	defer st.Close(ctx)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// ProcessRecord wraps a stored process with identity and timestamps.
type ProcessRecord struct {
	ID        string           `json:"id" bson:"_id"`
	Process   *process.Process `json:"process" bson:"process"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// DiagramRecord wraps a stored diagram and references the process it
// was laid out from.
type DiagramRecord struct {
	ID        string           `json:"id" bson:"_id"`
	ProcessID string           `json:"process_id" bson:"process_id"`
	Diagram   *diagram.Diagram `json:"diagram" bson:"diagram"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// Store is the persistence interface used by the HTTP server and the
// sync workflows.
type Store interface {
	// SaveProcess upserts a process record, assigning an ID and
	// timestamps as needed.
	SaveProcess(ctx context.Context, rec *ProcessRecord) error

	// GetProcess retrieves a process record by ID.
	GetProcess(ctx context.Context, id string) (*ProcessRecord, error)

	// ListProcesses returns all process records, newest first.
	ListProcesses(ctx context.Context) ([]*ProcessRecord, error)

	// SaveDiagram upserts a diagram record.
	SaveDiagram(ctx context.Context, rec *DiagramRecord) error

	// GetDiagram retrieves a diagram record by ID.
	GetDiagram(ctx context.Context, id string) (*DiagramRecord, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// NewProcessRecord wraps a process in a record with a fresh ID.
func NewProcessRecord(p *process.Process) *ProcessRecord {
	now := time.Now().UTC()
	return &ProcessRecord{
		ID:        NewID(),
		Process:   p,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDiagramRecord wraps a diagram in a record tied to its process.
func NewDiagramRecord(processID string, d *diagram.Diagram) *DiagramRecord {
	return &DiagramRecord{
		ID:        NewID(),
		ProcessID: processID,
		Diagram:   d,
		CreatedAt: time.Now().UTC(),
	}
}

// stamp fills in identity and timestamps before a save.
func (r *ProcessRecord) stamp() {
	now := time.Now().UTC()
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

func (r *DiagramRecord) stamp() {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}
