package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/laneflow/laneflow/pkg/extract"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
	"github.com/laneflow/laneflow/pkg/pipeline"
	"github.com/laneflow/laneflow/pkg/process"
	"github.com/laneflow/laneflow/pkg/publish"
	"github.com/laneflow/laneflow/pkg/store"
)

// orderDoc is a minimal three-node process in the document format
// POST /processes accepts.
const orderDoc = `{
  "name": "Order Intake",
  "actors": ["Sales"],
  "nodes": [
    {"id": "start", "type": "start_event", "name": "Order received"},
    {"id": "approve", "type": "task", "name": "Approve order", "actor": "Sales"},
    {"id": "end", "type": "end_event", "name": "Order accepted"}
  ],
  "edges": [
    {"from": "start", "to": "approve"},
    {"from": "approve", "to": "end"}
  ]
}`

type fakeExtractor struct {
	res   *extract.Result
	calls int
}

func (f *fakeExtractor) ExtractWithRetry(context.Context, string, int) (*extract.Result, error) {
	f.calls++
	return f.res, nil
}

// fakeBoard accepts every widget and hands out sequential item ids.
type fakeBoard struct {
	boards int
	conns  int
	nextID int
}

func (f *fakeBoard) id() string {
	f.nextID++
	return fmt.Sprintf("item-%d", f.nextID)
}

func (f *fakeBoard) CreateBoard(_ context.Context, name, _ string) (*miro.Board, error) {
	f.boards++
	return &miro.Board{ID: fmt.Sprintf("board-%d", f.boards), Name: name}, nil
}

func (f *fakeBoard) CreateShape(_ context.Context, _ string, _ miro.Shape) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateStickyNote(_ context.Context, _, _ string, _, _ float64, _ string) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateText(_ context.Context, _, _ string, _, _, _ float64) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateFrame(_ context.Context, _, _ string, _, _, _, _ float64) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateConnector(_ context.Context, _ string, _ miro.Connector) (*miro.Item, error) {
	f.conns++
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateCard(_ context.Context, _ string, _ miro.Card) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateLinkCard(_ context.Context, _, _, _ string, _, _ float64) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateEmbed(_ context.Context, _, _ string, _, _, _ float64) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) CreateImage(_ context.Context, _, _ string, _, _, _, _ float64) (*miro.Item, error) {
	return &miro.Item{ID: f.id()}, nil
}

func (f *fakeBoard) ListItems(_ context.Context, _, _ string, _ int) ([]miro.BoardItem, error) {
	return nil, nil
}

func (f *fakeBoard) BoardURL(boardID string) string { return "https://miro.test/" + boardID }

func (f *fakeBoard) ItemURL(boardID, itemID string) string {
	return "https://miro.test/" + boardID + "#" + itemID
}

var _ publish.BoardClient = (*fakeBoard)(nil)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testLogger()
	}
	ts := httptest.NewServer(New(cfg).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body: %s)", resp.StatusCode, want, body)
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// createProcess stores orderDoc and returns its id.
func createProcess(t *testing.T, baseURL string) string {
	t.Helper()
	resp := postJSON(t, baseURL+"/processes", orderDoc)
	wantStatus(t, resp, http.StatusCreated)
	var created processResponse
	decode(t, resp, &created)
	if created.ID == "" {
		t.Fatal("created process has no id")
	}
	return created.ID
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := get(t, ts.URL+"/health")
	wantStatus(t, resp, http.StatusOK)

	var body struct {
		OK      bool   `json:"ok"`
		Service string `json:"service"`
	}
	decode(t, resp, &body)
	if !body.OK || body.Service != "laneflow" {
		t.Errorf("health = %+v", body)
	}
}

func TestCreateGetListProcess(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := postJSON(t, ts.URL+"/processes", orderDoc)
	wantStatus(t, resp, http.StatusCreated)
	var created processResponse
	decode(t, resp, &created)
	if created.ID == "" {
		t.Error("response has no id")
	}
	if !created.Validation.Valid {
		t.Errorf("validation = %+v, want valid", created.Validation)
	}

	resp = get(t, ts.URL+"/processes/"+created.ID)
	wantStatus(t, resp, http.StatusOK)
	var got store.ProcessRecord
	decode(t, resp, &got)
	if got.Process.Name != "Order Intake" || len(got.Process.Nodes) != 3 {
		t.Errorf("stored process = %q with %d nodes", got.Process.Name, len(got.Process.Nodes))
	}

	resp = get(t, ts.URL+"/processes")
	wantStatus(t, resp, http.StatusOK)
	var list []*store.ProcessRecord
	decode(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("list has %d records, want 1", len(list))
	}
}

func TestGetProcessNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := get(t, ts.URL+"/processes/no-such-id")
	wantStatus(t, resp, http.StatusNotFound)

	var e errorResponse
	decode(t, resp, &e)
	if e.Error.Code != "PROCESS_NOT_FOUND" {
		t.Errorf("error code = %q, want PROCESS_NOT_FOUND", e.Error.Code)
	}
}

func TestCreateProcessMalformed(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := postJSON(t, ts.URL+"/processes", `{"name": "Broken", "nodes": [{`)
	wantStatus(t, resp, http.StatusBadRequest)

	var e errorResponse
	decode(t, resp, &e)
	if e.Error.Code != "INVALID_PROCESS" {
		t.Errorf("error code = %q, want INVALID_PROCESS", e.Error.Code)
	}
}

func TestValidateProcessEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	// No end event: stored anyway, flagged invalid.
	doc := `{
  "name": "Broken",
  "nodes": [
    {"id": "start", "type": "start_event", "name": "Go"},
    {"id": "work", "type": "task", "name": "Work"}
  ],
  "edges": [{"from": "start", "to": "work"}]
}`
	resp := postJSON(t, ts.URL+"/processes", doc)
	wantStatus(t, resp, http.StatusCreated)
	var created processResponse
	decode(t, resp, &created)
	if created.Validation.Valid {
		t.Error("validation should flag the missing end event on create")
	}

	resp = postJSON(t, ts.URL+"/processes/"+created.ID+"/validate", "")
	wantStatus(t, resp, http.StatusOK)
	var v validation
	decode(t, resp, &v)
	if v.Valid {
		t.Error("validate endpoint reports valid for a process without end event")
	}
	found := false
	for _, e := range v.Errors {
		if strings.Contains(e, "end event") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want one about the end event", v.Errors)
	}
}

func TestLayoutProcessAndGetDiagram(t *testing.T) {
	ts := newTestServer(t, Config{})
	id := createProcess(t, ts.URL)

	resp := postJSON(t, ts.URL+"/processes/"+id+"/layout", `{"spacing_x": 200}`)
	wantStatus(t, resp, http.StatusCreated)
	var lr layoutResponse
	decode(t, resp, &lr)
	if lr.ID == "" {
		t.Error("layout response has no diagram id")
	}
	if lr.ProcessID != id {
		t.Errorf("ProcessID = %q, want %q", lr.ProcessID, id)
	}
	if len(lr.Diagram.Elements) != 3 {
		t.Errorf("diagram has %d elements, want 3", len(lr.Diagram.Elements))
	}

	resp = get(t, ts.URL+"/diagrams/"+lr.ID)
	wantStatus(t, resp, http.StatusOK)
	var rec store.DiagramRecord
	decode(t, resp, &rec)
	if len(rec.Diagram.Lanes) != 2 {
		t.Errorf("stored diagram has %d lanes, want 2", len(rec.Diagram.Lanes))
	}
}

func TestLayoutProcessNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := postJSON(t, ts.URL+"/processes/no-such-id/layout", "")
	wantStatus(t, resp, http.StatusNotFound)
}

func TestExtractEndpoint(t *testing.T) {
	p, err := process.ReadJSON(strings.NewReader(orderDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	fake := &fakeExtractor{res: &extract.Result{Process: p}}
	ts := newTestServer(t, Config{Options: pipeline.Options{Extractor: fake}})

	resp := postJSON(t, ts.URL+"/extract", `{"markdown": "# Order intake interview"}`)
	wantStatus(t, resp, http.StatusCreated)
	var er extractResponse
	decode(t, resp, &er)
	if er.ID == "" {
		t.Error("extract response has no id")
	}
	if er.Process.Name != "Order Intake" {
		t.Errorf("Process.Name = %q", er.Process.Name)
	}
	if fake.calls != 1 {
		t.Errorf("extractor calls = %d, want 1", fake.calls)
	}

	// The stored record is retrievable.
	resp = get(t, ts.URL+"/processes/"+er.ID)
	wantStatus(t, resp, http.StatusOK)
}

func TestExtractRequiresMarkdown(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := postJSON(t, ts.URL+"/extract", `{}`)
	wantStatus(t, resp, http.StatusBadRequest)

	var e errorResponse
	decode(t, resp, &e)
	if e.Error.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", e.Error.Code)
	}
}

func TestPublishDiagram(t *testing.T) {
	fb := &fakeBoard{}
	ts := newTestServer(t, Config{Publisher: publish.NewPublisher(fb, testLogger())})

	id := createProcess(t, ts.URL)
	resp := postJSON(t, ts.URL+"/processes/"+id+"/layout", "")
	wantStatus(t, resp, http.StatusCreated)
	var lr layoutResponse
	decode(t, resp, &lr)

	resp = postJSON(t, ts.URL+"/diagrams/"+lr.ID+"/publish", `{"board_name": "Order Intake Map"}`)
	wantStatus(t, resp, http.StatusOK)
	var pr publishResponse
	decode(t, resp, &pr)
	if pr.BoardID != "board-1" {
		t.Errorf("BoardID = %q, want board-1", pr.BoardID)
	}
	if pr.BoardURL != "https://miro.test/board-1" {
		t.Errorf("BoardURL = %q", pr.BoardURL)
	}
	if pr.ConnectorsCreated != 2 || pr.ConnectorsFailed != 0 {
		t.Errorf("connectors = %d created, %d failed; want 2, 0",
			pr.ConnectorsCreated, pr.ConnectorsFailed)
	}
	if fb.conns != 2 {
		t.Errorf("board got %d connectors, want 2", fb.conns)
	}
}

func TestPublishWithoutMiroConfigured(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp := postJSON(t, ts.URL+"/diagrams/any/publish", "")
	wantStatus(t, resp, http.StatusServiceUnavailable)

	var e errorResponse
	decode(t, resp, &e)
	if e.Error.Code != "INVALID_CONFIG" {
		t.Errorf("error code = %q, want INVALID_CONFIG", e.Error.Code)
	}
}
