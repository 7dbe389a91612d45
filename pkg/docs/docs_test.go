package docs

import (
	"testing"

	"github.com/laneflow/laneflow/pkg/process"
)

// purchaseProcess is the shared fixture: two lanes, two enriched
// tasks, a gateway, and boundary events.
func purchaseProcess() *process.Process {
	return &process.Process{
		Name:        "Purchase Approval",
		Description: "Approve and pay purchase requests.",
		Actors:      []string{"Buyer", "Finance"},
		Nodes: []process.Node{
			{ID: "start", Type: process.NodeStart, Name: "Request received"},
			{
				ID: "review", Type: process.NodeTask, Name: "Review request",
				Actor:       "Buyer",
				Description: "Check the request against the purchasing policy.",
				Inputs:      []string{"Purchase request"},
				Outputs:     []string{"Reviewed request"},
				Tools:       []string{"ERP"},
			},
			{
				ID: "approve", Type: process.NodeGateway, Name: "Approved?",
				GatewayKind: process.GatewayExclusive,
				Conditions:  []string{"Yes", "No"},
			},
			{
				ID: "pay", Type: process.NodeTask, Name: "Issue payment",
				Actor:   "Finance",
				Outputs: []string{"Payment receipt"},
			},
			{ID: "end", Type: process.NodeEnd, Name: "Customer notified"},
		},
		Edges: []process.Edge{
			{From: "start", To: "review"},
			{From: "review", To: "approve"},
			{From: "approve", To: "pay", Condition: "Yes"},
			{From: "approve", To: "end", Condition: "No"},
			{From: "pay", To: "end"},
		},
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"POP", 1, "POP-001"},
		{"IT", 12, "IT-012"},
		{"CL", 345, "CL-345"},
	}
	for _, tt := range tests {
		if got := Code(tt.prefix, tt.seq); got != tt.want {
			t.Errorf("Code(%q, %d) = %q, want %q", tt.prefix, tt.seq, got, tt.want)
		}
	}
}

func TestNumberTasksByActor(t *testing.T) {
	numbers := NumberTasks(purchaseProcess())

	want := map[string]string{"review": "1.1", "pay": "2.1"}
	for id, num := range want {
		if numbers[id] != num {
			t.Errorf("numbers[%q] = %q, want %q", id, numbers[id], num)
		}
	}
	if _, ok := numbers["approve"]; ok {
		t.Error("gateway got a number, want tasks only")
	}
}

func TestNumberTasksSequential(t *testing.T) {
	p := purchaseProcess()
	p.Actors = nil

	numbers := NumberTasks(p)
	if numbers["review"] != "1" || numbers["pay"] != "2" {
		t.Errorf("numbers = %v, want sequential 1, 2", numbers)
	}
}

func TestNumberTasksNil(t *testing.T) {
	if got := NumberTasks(nil); len(got) != 0 {
		t.Errorf("NumberTasks(nil) = %v, want empty", got)
	}
}

func TestGenerateSet(t *testing.T) {
	set, err := GenerateSet(purchaseProcess(), SetOptions{Author: "QA Team"})
	if err != nil {
		t.Fatalf("GenerateSet: %v", err)
	}

	if set.POP == nil || set.POP.Code != "POP-001" {
		t.Fatalf("POP = %+v, want code POP-001", set.POP)
	}
	if len(set.Instructions) != 2 || len(set.Checklists) != 2 {
		t.Fatalf("got %d instructions, %d checklists, want 2 of each",
			len(set.Instructions), len(set.Checklists))
	}
	if set.Instructions[0].Code != "IT-001" || set.Instructions[1].Code != "IT-002" {
		t.Errorf("instruction codes = %s, %s", set.Instructions[0].Code, set.Instructions[1].Code)
	}
	if set.Checklists[1].Code != "CL-002" {
		t.Errorf("checklist code = %s, want CL-002", set.Checklists[1].Code)
	}
	if set.Instructions[0].POPReference != "POP-001" {
		t.Errorf("POP reference = %q, want POP-001", set.Instructions[0].POPReference)
	}
	if set.SIPOC == nil || !set.SIPOC.IsComplete() {
		t.Errorf("SIPOC = %+v, want complete", set.SIPOC)
	}
	if set.Instructions[0].Author != "QA Team" {
		t.Errorf("author = %q, want QA Team", set.Instructions[0].Author)
	}
}

func TestGenerateSetNilProcess(t *testing.T) {
	if _, err := GenerateSet(nil, SetOptions{}); err == nil {
		t.Fatal("GenerateSet(nil) succeeded, want error")
	}
}
