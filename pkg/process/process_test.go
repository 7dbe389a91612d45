package process

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{"valid task", Node{ID: "a", Type: NodeTask}, nil},
		{"valid start", Node{ID: "b", Type: NodeStart}, nil},
		{"empty id", Node{Type: NodeTask}, ErrInvalidNodeID},
		{"unknown type", Node{ID: "c", Type: "banana"}, ErrUnknownNodeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Process
			err := p.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	var p Process
	if err := p.AddNode(Node{ID: "a", Type: NodeTask}); err != nil {
		t.Fatalf("AddNode() failed: %v", err)
	}
	err := p.AddNode(Node{ID: "a", Type: NodeGateway})
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestNodePredicates(t *testing.T) {
	tests := []struct {
		name       string
		node       Node
		event      bool
		gateway    bool
		task       bool
		annotation bool
		link       bool
	}{
		{"start", Node{Type: NodeStart}, true, false, false, false, false},
		{"end", Node{Type: NodeEnd}, true, false, false, false, false},
		{"intermediate", Node{Type: NodeIntermediate}, true, false, false, false, false},
		{"task", Node{Type: NodeTask}, false, false, true, false, false},
		{"gateway", Node{Type: NodeGateway}, false, true, false, false, false},
		{"annotation", Node{Type: NodeAnnotation}, false, false, false, true, false},
		{"link throw", Node{Type: NodeLinkThrow}, true, false, false, false, true},
		{"link catch", Node{Type: NodeLinkCatch}, true, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsEvent(); got != tt.event {
				t.Errorf("IsEvent() = %v, want %v", got, tt.event)
			}
			if got := tt.node.IsGateway(); got != tt.gateway {
				t.Errorf("IsGateway() = %v, want %v", got, tt.gateway)
			}
			if got := tt.node.IsTask(); got != tt.task {
				t.Errorf("IsTask() = %v, want %v", got, tt.task)
			}
			if got := tt.node.IsAnnotation(); got != tt.annotation {
				t.Errorf("IsAnnotation() = %v, want %v", got, tt.annotation)
			}
			if got := tt.node.IsLink(); got != tt.link {
				t.Errorf("IsLink() = %v, want %v", got, tt.link)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	n := Node{ID: "check_stock", Type: NodeTask}
	if got := n.DisplayName(); got != "check_stock" {
		t.Errorf("DisplayName() = %q, want ID fallback", got)
	}
	n.Name = "Check stock"
	if got := n.DisplayName(); got != "Check stock" {
		t.Errorf("DisplayName() = %q, want %q", got, "Check stock")
	}
}

func TestNodeIndex(t *testing.T) {
	p := Process{Nodes: []Node{
		{ID: "a", Type: NodeStart},
		{ID: "b", Type: NodeTask},
		{ID: "c", Type: NodeEnd},
	}}

	tests := []struct {
		id   string
		want int
	}{
		{"a", 0},
		{"b", 1},
		{"c", 2},
		{"missing", -1},
	}

	for _, tt := range tests {
		if got := p.NodeIndex(tt.id); got != tt.want {
			t.Errorf("NodeIndex(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestOutgoingIncoming(t *testing.T) {
	p := Process{
		Nodes: []Node{
			{ID: "a", Type: NodeStart},
			{ID: "b", Type: NodeGateway, GatewayKind: GatewayExclusive},
			{ID: "c", Type: NodeTask},
			{ID: "d", Type: NodeEnd},
		},
		Edges: []Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c", Condition: "Yes"},
			{From: "b", To: "d", Condition: "No"},
			{From: "c", To: "d"},
		},
	}

	out := p.Outgoing("b")
	if len(out) != 2 {
		t.Fatalf("Outgoing(b) = %d edges, want 2", len(out))
	}
	if out[0].Condition != "Yes" || out[1].Condition != "No" {
		t.Error("Outgoing() should preserve declaration order")
	}

	in := p.Incoming("d")
	if len(in) != 2 {
		t.Fatalf("Incoming(d) = %d edges, want 2", len(in))
	}
	if in[0].From != "b" || in[1].From != "c" {
		t.Error("Incoming() should preserve declaration order")
	}
}

func TestReadJSON(t *testing.T) {
	input := `{
		"name": "Order Fulfillment",
		"actors": ["Sales", "Warehouse"],
		"nodes": [
			{"id": "start", "type": "start_event", "name": "Order received"},
			{"id": "pick", "type": "task", "name": "Pick items", "actor": "Warehouse", "task_kind": "manual"},
			{"id": "gw", "type": "gateway", "name": "In stock?", "actor": "Sales", "gateway_kind": "exclusive", "conditions": ["Yes", "No"]},
			{"id": "done", "type": "end_event", "name": "Shipped"}
		],
		"edges": [
			{"from": "start", "to": "pick"},
			{"from": "pick", "to": "gw"},
			{"from": "gw", "to": "done", "condition": "Yes"}
		]
	}`

	p, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}

	if p.Name != "Order Fulfillment" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Actors) != 2 || p.Actors[0] != "Sales" {
		t.Errorf("Actors = %v", p.Actors)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(p.Nodes))
	}
	if p.Nodes[1].TaskKind != TaskManual {
		t.Errorf("TaskKind = %q, want manual", p.Nodes[1].TaskKind)
	}
	if p.Nodes[2].GatewayKind != GatewayExclusive {
		t.Errorf("GatewayKind = %q, want exclusive", p.Nodes[2].GatewayKind)
	}
	if len(p.Nodes[2].Conditions) != 2 {
		t.Errorf("Conditions = %v", p.Nodes[2].Conditions)
	}
	if len(p.Edges) != 3 || p.Edges[2].Condition != "Yes" {
		t.Errorf("Edges = %v", p.Edges)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"nodes": [`},
		{"duplicate id", `{"nodes": [{"id": "a", "type": "task"}, {"id": "a", "type": "task"}]}`},
		{"empty id", `{"nodes": [{"type": "task"}]}`},
		{"unknown type", `{"nodes": [{"id": "a", "type": "subprocess"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() should fail")
			}
		})
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	p := &Process{
		Name:   "Approval",
		Actors: []string{"Manager"},
		Nodes: []Node{
			{ID: "s", Type: NodeStart},
			{ID: "approve", Type: NodeTask, Name: "Approve", Actor: "Manager", TaskKind: TaskUser},
			{ID: "note", Type: NodeAnnotation, Name: "SLA 24h", AttachedTo: "approve"},
			{ID: "e", Type: NodeEnd},
		},
		Edges: []Edge{
			{From: "s", To: "approve"},
			{From: "approve", To: "e"},
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}

	if got.Name != p.Name || len(got.Nodes) != len(p.Nodes) || len(got.Edges) != len(p.Edges) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Nodes[2].AttachedTo != "approve" {
		t.Errorf("AttachedTo lost in round trip: %+v", got.Nodes[2])
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON("does/not/exist.json"); err == nil {
		t.Error("ImportJSON() should fail for missing file")
	}
}
