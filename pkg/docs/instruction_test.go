package docs

import (
	"strings"
	"testing"

	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

func TestGenerateInstructionRejectsNonTask(t *testing.T) {
	p := purchaseProcess()
	gateway, _ := p.Node("approve")

	_, err := GenerateInstruction(gateway, p, InstructionOptions{})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if _, err := GenerateInstruction(nil, p, InstructionOptions{}); err == nil {
		t.Fatal("nil node accepted, want error")
	}
}

func TestGenerateInstructions(t *testing.T) {
	p := purchaseProcess()
	its := GenerateInstructions(p, InstructionOptions{POPCode: "POP-007"})

	if len(its) != 2 {
		t.Fatalf("len(its) = %d, want one per task", len(its))
	}

	review := its[0]
	if review.Code != "IT-001" || review.Title != "Review request" {
		t.Errorf("first instruction = %s %q", review.Code, review.Title)
	}
	if review.StepInPOP != "1.1" {
		t.Errorf("StepInPOP = %q, want 1.1", review.StepInPOP)
	}
	if review.POPReference != "POP-007" {
		t.Errorf("POPReference = %q", review.POPReference)
	}

	wantPrereqs := []string{"Have Purchase request available", "Access to ERP"}
	if len(review.Prerequisites) != 2 || review.Prerequisites[0] != wantPrereqs[0] || review.Prerequisites[1] != wantPrereqs[1] {
		t.Errorf("prerequisites = %v, want %v", review.Prerequisites, wantPrereqs)
	}
	if len(review.Materials) != 1 || review.Materials[0].Name != "ERP" {
		t.Errorf("materials = %v", review.Materials)
	}

	// Description plus outputs: action step then verification step.
	if len(review.Steps) != 2 {
		t.Fatalf("len(review.Steps) = %d, want 2", len(review.Steps))
	}
	if review.Steps[1].Action != "Verify the result" {
		t.Errorf("second step = %+v", review.Steps[1])
	}

	pay := its[1]
	if pay.Prerequisites[0] != "No specific prerequisites" {
		t.Errorf("bare task prerequisites = %v", pay.Prerequisites)
	}
	// No description: only the output verification step remains.
	if len(pay.Steps) != 1 || pay.Steps[0].Number != 1 {
		t.Errorf("bare task steps = %+v", pay.Steps)
	}
	if pay.QualityCriteria[0] != "Verify that Payment receipt was produced correctly" {
		t.Errorf("quality criteria = %v", pay.QualityCriteria)
	}
}

func TestQualityCriteriaFallback(t *testing.T) {
	n := &process.Node{ID: "t", Type: process.NodeTask, Name: "File report"}
	got := qualityCriteria(n)
	if len(got) != 1 || got[0] != "File report carried out as described" {
		t.Errorf("qualityCriteria = %v", got)
	}
}

func TestInstructionMarkdown(t *testing.T) {
	p := purchaseProcess()
	task, _ := p.Node("review")

	it, err := GenerateInstruction(task, p, InstructionOptions{Code: "IT-003", POPCode: "POP-001"})
	if err != nil {
		t.Fatalf("GenerateInstruction: %v", err)
	}
	it.Steps[0].Caution = "Do not skip the policy check"

	md, err := it.Markdown()
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	for _, want := range []string{
		"# IT-003 - Review request",
		"**Related POP:** POP-001",
		"**Step in POP:** 1.1",
		"- [ ] Have Purchase request available",
		"| ERP | - | - |",
		"### Step 1: Review request",
		"> **Caution:** Do not skip the policy check",
		"- [ ] Verify that Reviewed request was produced correctly",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}
