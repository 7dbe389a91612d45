package docs

import (
	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

// InstructionStep is one numbered action in a work instruction.
// Caution, Tip, and SystemPath are optional callouts.
type InstructionStep struct {
	Number     int    `json:"number"`
	Action     string `json:"action"`
	Details    string `json:"details,omitempty"`
	Caution    string `json:"caution,omitempty"`
	Tip        string `json:"tip,omitempty"`
	SystemPath string `json:"system_path,omitempty"`
}

// Material is a tool or resource an activity needs.
type Material struct {
	Name          string `json:"name"`
	Quantity      string `json:"quantity,omitempty"`
	Specification string `json:"specification,omitempty"`
}

// WorkInstruction details how to perform a single activity: who it is
// for, what must be in place before starting, the steps themselves,
// and how to tell the result is acceptable. It references the POP it
// belongs to by code and step number.
type WorkInstruction struct {
	Meta
	ProcessName     string            `json:"process_name"`
	TaskID          string            `json:"task_id"`
	POPReference    string            `json:"pop_reference,omitempty"`
	StepInPOP       string            `json:"step_in_pop,omitempty"`
	Objective       string            `json:"objective"`
	TargetAudience  string            `json:"target_audience"`
	Prerequisites   []string          `json:"prerequisites,omitempty"`
	Materials       []Material        `json:"materials,omitempty"`
	Steps           []InstructionStep `json:"steps,omitempty"`
	QualityCriteria []string          `json:"quality_criteria,omitempty"`
}

// InstructionOptions control work instruction generation.
type InstructionOptions struct {
	Code      string // default IT-001
	Author    string
	Objective string
	POPCode   string // code of the parent procedure, if any
}

// GenerateInstruction builds a work instruction for one task node.
// Returns an error when the node is missing or not a task.
func GenerateInstruction(n *process.Node, p *process.Process, opts InstructionOptions) (*WorkInstruction, error) {
	if n == nil || !n.IsTask() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "work instructions cover task nodes only")
	}
	return generateInstruction(n, p, NumberTasks(p), opts), nil
}

// GenerateInstructions builds one work instruction per task, in
// declaration order, with sequential codes (IT-001, IT-002, ...).
func GenerateInstructions(p *process.Process, opts InstructionOptions) []*WorkInstruction {
	numbers := NumberTasks(p)
	var out []*WorkInstruction
	for i, task := range p.Tasks() {
		o := opts
		o.Code = Code("IT", i+1)
		out = append(out, generateInstruction(&task, p, numbers, o))
	}
	return out
}

func generateInstruction(n *process.Node, p *process.Process, numbers map[string]string, opts InstructionOptions) *WorkInstruction {
	name := n.DisplayName()

	code := opts.Code
	if code == "" {
		code = Code("IT", 1)
	}
	objective := opts.Objective
	if objective == "" {
		objective = "Detail how to carry out the " + name + " activity."
	}

	it := &WorkInstruction{
		Meta:            newMeta(code, name, opts.Author),
		ProcessName:     p.Name,
		TaskID:          n.ID,
		POPReference:    opts.POPCode,
		StepInPOP:       numbers[n.ID],
		Objective:       objective,
		TargetAudience:  "Everyone involved in the activity",
		Prerequisites:   prerequisites(n),
		Materials:       materials(n),
		Steps:           instructionSteps(n),
		QualityCriteria: qualityCriteria(n),
	}
	return it
}

// prerequisites derives a pre-flight list from the task's inputs and
// tools. A task with neither still gets one placeholder line so the
// rendered section is never empty.
func prerequisites(n *process.Node) []string {
	var out []string
	for _, in := range n.Inputs {
		out = append(out, "Have "+in+" available")
	}
	for _, tool := range n.Tools {
		out = append(out, "Access to "+tool)
	}
	if len(out) == 0 {
		out = append(out, "No specific prerequisites")
	}
	return out
}

func materials(n *process.Node) []Material {
	var out []Material
	for _, tool := range n.Tools {
		out = append(out, Material{Name: tool})
	}
	return out
}

// instructionSteps builds the step list: the task description, if any,
// becomes the action, and outputs add a final verification step.
func instructionSteps(n *process.Node) []InstructionStep {
	var steps []InstructionStep
	if n.Description != "" {
		steps = append(steps, InstructionStep{
			Number:  1,
			Action:  n.DisplayName(),
			Details: n.Description,
		})
	}
	if len(n.Outputs) > 0 {
		steps = append(steps, InstructionStep{
			Number:  len(steps) + 1,
			Action:  "Verify the result",
			Details: "Confirm the following outputs were produced: " + listOrDash(n.Outputs) + ".",
		})
	}
	return steps
}

func qualityCriteria(n *process.Node) []string {
	var out []string
	for _, output := range n.Outputs {
		out = append(out, "Verify that "+output+" was produced correctly")
	}
	if len(out) == 0 {
		out = append(out, n.DisplayName()+" carried out as described")
	}
	return out
}

// Markdown renders the work instruction as a Markdown document.
func (d *WorkInstruction) Markdown() (string, error) {
	return render(instructionTmpl, d)
}

var instructionTmpl = mustTemplate("instruction", `# {{.Code}} - {{.Title}}

**Version:** {{.Version}}
**Status:** {{.Status}}
**Related POP:** {{orDash .POPReference}}
**Step in POP:** {{orDash .StepInPOP}}

## 1. Objective

{{.Objective}}

**Audience:** {{.TargetAudience}}

## 2. Prerequisites

{{range .Prerequisites}}- [ ] {{.}}
{{end}}
## 3. Materials

| Material | Quantity | Specification |
|----------|----------|---------------|
{{range .Materials}}| {{.Name}} | {{orDash .Quantity}} | {{orDash .Specification}} |
{{end}}
## 4. Detailed Steps
{{range .Steps}}
### Step {{.Number}}: {{.Action}}

{{.Details}}
{{if .SystemPath}}
**System path:** ` + "`{{.SystemPath}}`" + `
{{end}}{{if .Caution}}
> **Caution:** {{.Caution}}
{{end}}{{if .Tip}}
**Tip:** {{.Tip}}
{{end}}{{end}}
## 5. Quality Criteria

{{range .QualityCriteria}}- [ ] {{.}}
{{end}}
---
**Author:** {{orDash .Author}}
`)
