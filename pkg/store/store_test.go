package store

import (
	"context"
	"testing"
	"time"

	"github.com/laneflow/laneflow/pkg/diagram"
	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

func TestMemoryStoreProcessRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := NewProcessRecord(&process.Process{Name: "Onboarding"})
	if err := st.SaveProcess(ctx, rec); err != nil {
		t.Fatalf("SaveProcess: %v", err)
	}

	got, err := st.GetProcess(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetProcess: %v", err)
	}
	if got.Process.Name != "Onboarding" {
		t.Errorf("name = %q, want Onboarding", got.Process.Name)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Errorf("timestamps not set: %+v", got)
	}
}

func TestMemoryStoreSaveAssignsID(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := &ProcessRecord{Process: &process.Process{Name: "Ad hoc"}}
	if err := st.SaveProcess(ctx, rec); err != nil {
		t.Fatalf("SaveProcess: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("save left ID empty")
	}
	if _, err := st.GetProcess(ctx, rec.ID); err != nil {
		t.Errorf("GetProcess after save: %v", err)
	}
}

func TestMemoryStoreGetProcessMissing(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.GetProcess(context.Background(), "nope")
	if !errs.Is(err, errs.ErrCodeProcessNotFound) {
		t.Fatalf("err = %v, want process not found", err)
	}
}

func TestMemoryStoreUpdateReplaces(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := NewProcessRecord(&process.Process{Name: "v1"})
	if err := st.SaveProcess(ctx, rec); err != nil {
		t.Fatalf("SaveProcess: %v", err)
	}
	firstUpdate := rec.UpdatedAt

	rec.Process.Name = "v2"
	time.Sleep(time.Millisecond)
	if err := st.SaveProcess(ctx, rec); err != nil {
		t.Fatalf("SaveProcess again: %v", err)
	}

	got, err := st.GetProcess(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetProcess: %v", err)
	}
	if got.Process.Name != "v2" {
		t.Errorf("name = %q, want v2", got.Process.Name)
	}
	if !got.UpdatedAt.After(firstUpdate) {
		t.Errorf("UpdatedAt not bumped: %v vs %v", got.UpdatedAt, firstUpdate)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		rec := &ProcessRecord{
			ID:        name,
			Process:   &process.Process{Name: name},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := st.SaveProcess(ctx, rec); err != nil {
			t.Fatalf("SaveProcess(%s): %v", name, err)
		}
	}

	recs, err := st.ListProcesses(ctx)
	if err != nil {
		t.Fatalf("ListProcesses: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if recs[i].ID != want {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].ID, want)
		}
	}
}

func TestMemoryStoreDiagramRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := NewDiagramRecord("proc-1", &diagram.Diagram{Type: "bpmn_swimlane"})
	if err := st.SaveDiagram(ctx, rec); err != nil {
		t.Fatalf("SaveDiagram: %v", err)
	}

	got, err := st.GetDiagram(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetDiagram: %v", err)
	}
	if got.ProcessID != "proc-1" {
		t.Errorf("ProcessID = %q, want proc-1", got.ProcessID)
	}

	if _, err := st.GetDiagram(ctx, "missing"); !errs.Is(err, errs.ErrCodeDiagramNotFound) {
		t.Errorf("missing diagram err = %v, want diagram not found", err)
	}
}

func TestMemoryStoreNilRecords(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.SaveProcess(ctx, nil); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("SaveProcess(nil) err = %v", err)
	}
	if err := st.SaveDiagram(ctx, nil); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("SaveDiagram(nil) err = %v", err)
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "", "laneflow")
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want invalid config", err)
	}
}
