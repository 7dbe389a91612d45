package docs

import (
	"strings"
	"testing"
)

func TestGeneratePOPDefaults(t *testing.T) {
	pop := GeneratePOP(purchaseProcess(), POPOptions{})

	if pop.Code != "POP-001" {
		t.Errorf("code = %q, want POP-001", pop.Code)
	}
	if pop.Version != "1.0" || pop.Status != StatusDraft {
		t.Errorf("version/status = %s/%s, want 1.0/draft", pop.Version, pop.Status)
	}
	if !strings.Contains(pop.Objective, "Purchase Approval") {
		t.Errorf("objective %q does not mention the process", pop.Objective)
	}
	if !strings.Contains(pop.Scope, "Purchase Approval") {
		t.Errorf("scope %q does not mention the process", pop.Scope)
	}
}

func TestGeneratePOPProcessMap(t *testing.T) {
	pop := GeneratePOP(purchaseProcess(), POPOptions{})

	if len(pop.ProcessMap) != 3 {
		t.Fatalf("len(ProcessMap) = %d, want 2 tasks + 1 gateway", len(pop.ProcessMap))
	}

	review := pop.ProcessMap[0]
	if review.Number != "1.1" || review.Responsible != "Buyer" {
		t.Errorf("first row = %+v, want number 1.1 owned by Buyer", review)
	}
	if len(review.Inputs) != 1 || review.Inputs[0] != "Purchase request" {
		t.Errorf("first row inputs = %v", review.Inputs)
	}

	gateway := pop.ProcessMap[1]
	if gateway.Number != "" || gateway.Type != "gateway" {
		t.Errorf("gateway row = %+v, want unnumbered gateway", gateway)
	}
}

func TestGeneratePOPResponsibilities(t *testing.T) {
	p := purchaseProcess()
	p.Actors = append(p.Actors, "Observer") // declared but owns nothing

	pop := GeneratePOP(p, POPOptions{})
	if len(pop.Responsibilities) != 2 {
		t.Fatalf("len(Responsibilities) = %d, want idle actor skipped", len(pop.Responsibilities))
	}
	if pop.Responsibilities[0].Role != "Buyer" || pop.Responsibilities[0].Tasks[0] != "Review request" {
		t.Errorf("first responsibility = %+v", pop.Responsibilities[0])
	}
}

func TestGeneratePOPSteps(t *testing.T) {
	pop := GeneratePOP(purchaseProcess(), POPOptions{})

	if len(pop.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(pop.Steps))
	}

	withDesc := pop.Steps[0]
	if withDesc.How != "Check the request against the purchasing policy." {
		t.Errorf("How = %q, want the task description", withDesc.How)
	}
	if withDesc.Who != "Buyer" {
		t.Errorf("Who = %q, want Buyer", withDesc.Who)
	}

	bare := pop.Steps[1]
	if !strings.Contains(bare.How, "Carry out the Issue payment activity") {
		t.Errorf("How fallback = %q", bare.How)
	}
	if bare.When == "" || bare.Where == "" || bare.Why == "" {
		t.Errorf("step %+v has empty 5W2H fields", bare)
	}
}

func TestPOPMarkdown(t *testing.T) {
	pop := GeneratePOP(purchaseProcess(), POPOptions{Author: "Ops"})
	md, err := pop.Markdown()
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	for _, want := range []string{
		"# POP-001 - Purchase Approval",
		"## 4. Process Map",
		"| 1.1 | Review request | task | Buyer | Purchase request | Reviewed request | ERP |",
		"| - | Approved? | gateway | - | - | - | - |",
		"### Step 1.1: Review request",
		"**Who:** Buyer",
		"**Author:** Ops",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}
