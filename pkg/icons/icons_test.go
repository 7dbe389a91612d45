package icons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laneflow/laneflow/pkg/process"
)

// writeLibrary creates a minimal on-disk library and returns the yaml path.
func writeLibrary(t *testing.T, mode string) string {
	t.Helper()
	dir := t.TempDir()

	iconDir := filepath.Join(dir, "assets", "tasks")
	if err := os.MkdirAll(iconDir, 0o755); err != nil {
		t.Fatal(err)
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle r="4"/></svg>`
	if err := os.WriteFile(filepath.Join(iconDir, "user-task.svg"), []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := `
tasks:
  user_task: tasks/user-task.svg
  service_task: tasks/service-task.svg
events:
  start_event: events/start.svg
gateways:
  exclusive_gateway: gateways/exclusive.svg
config:
  base_path: ` + filepath.Join(dir, "assets") + `
  mode: ` + mode + `
  icon_sizes:
    task: 22
`
	path := filepath.Join(dir, "icons.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if r.Mode() != ModeHybrid {
		t.Errorf("Mode() = %q, want hybrid", r.Mode())
	}
	n := &process.Node{Type: process.NodeTask, TaskKind: process.TaskUser}
	if _, ok := r.Resolve(n); ok {
		t.Error("Resolve() on empty library should miss")
	}
}

func TestResolveReadsAndCaches(t *testing.T) {
	r, err := Load(writeLibrary(t, "hybrid"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	n := &process.Node{Type: process.NodeTask, TaskKind: process.TaskUser}
	ic, ok := r.Resolve(n)
	if !ok {
		t.Fatal("Resolve() miss, want hit")
	}
	if ic.SVG == "" {
		t.Error("Resolve() returned empty SVG content")
	}
	if ic.Size != 22 {
		t.Errorf("Size = %d, want 22 from library config", ic.Size)
	}
	if ic.Position != "left" {
		t.Errorf("Position = %q, want default left", ic.Position)
	}

	// Remove the file; the cached content must survive.
	if err := os.Remove(ic.Path); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Resolve(n); !ok {
		t.Error("Resolve() after file removal should hit the cache")
	}
}

func TestResolveMissingAsset(t *testing.T) {
	r, err := Load(writeLibrary(t, "hybrid"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// service_task is indexed but the file does not exist.
	n := &process.Node{Type: process.NodeTask, TaskKind: process.TaskService}
	if _, ok := r.Resolve(n); ok {
		t.Error("Resolve() should miss when the SVG file is absent")
	}
}

func TestEmojiModeNeverResolves(t *testing.T) {
	r, err := Load(writeLibrary(t, "emoji"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	n := &process.Node{Type: process.NodeTask, TaskKind: process.TaskUser}
	if _, ok := r.Resolve(n); ok {
		t.Error("Resolve() in emoji mode should always miss")
	}
}

func TestNilResolver(t *testing.T) {
	var r *Resolver
	if r.Mode() != ModeEmoji {
		t.Errorf("nil Mode() = %q, want emoji", r.Mode())
	}
	if _, ok := r.Resolve(&process.Node{Type: process.NodeTask}); ok {
		t.Error("nil Resolve() should miss")
	}
	if got := r.Size(CategoryEvent); got != 16 {
		t.Errorf("nil Size(event) = %d, want 16", got)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		node    process.Node
		wantCat Category
		wantKey string
	}{
		{"plain task", process.Node{Type: process.NodeTask}, CategoryTask, "user_task"},
		{"manual task", process.Node{Type: process.NodeTask, TaskKind: process.TaskManual}, CategoryTask, "manual_task"},
		{"start", process.Node{Type: process.NodeStart}, CategoryEvent, "start_event"},
		{"end", process.Node{Type: process.NodeEnd}, CategoryEvent, "end_event"},
		{"plain intermediate", process.Node{Type: process.NodeIntermediate}, CategoryEvent, "intermediate_event"},
		{"timer", process.Node{Type: process.NodeIntermediate, EventKind: process.EventTimer}, CategoryEvent, "timer_event"},
		{"link throw", process.Node{Type: process.NodeLinkThrow}, CategoryEvent, "link_throw_event"},
		{"gateway", process.Node{Type: process.NodeGateway, GatewayKind: process.GatewayParallel}, CategoryGateway, "parallel_gateway"},
		{"annotation has no icon", process.Node{Type: process.NodeAnnotation}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, key := Key(&tt.node)
			if cat != tt.wantCat || key != tt.wantKey {
				t.Errorf("Key() = (%q, %q), want (%q, %q)", cat, key, tt.wantCat, tt.wantKey)
			}
		})
	}
}
