package docs

import (
	"github.com/laneflow/laneflow/pkg/process"
)

// ChecklistItem is one verification line: what to check, how to judge
// it, and who answers for it. RelatedStep ties the item back to a POP
// step number.
type ChecklistItem struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Criteria    string `json:"criteria"`
	Responsible string `json:"responsible,omitempty"`
	Mandatory   bool   `json:"mandatory"`
	RelatedStep string `json:"related_step,omitempty"`
}

// Checklist verifies that a process or a single activity ran to
// completion. Items follow execution order: activity lines first, then
// one line per expected deliverable.
type Checklist struct {
	Meta
	ProcessName  string          `json:"process_name"`
	Purpose      string          `json:"purpose"`
	Trigger      string          `json:"trigger,omitempty"`
	POPReference string          `json:"pop_reference,omitempty"`
	Items        []ChecklistItem `json:"items,omitempty"`
}

// ChecklistOptions control checklist generation.
type ChecklistOptions struct {
	Code    string // default CL-001
	Author  string
	Purpose string
	Trigger string
	POPCode string
}

// GenerateChecklist builds a whole-process checklist: one item per task
// plus one per task output, in declaration order.
func GenerateChecklist(p *process.Process, opts ChecklistOptions) *Checklist {
	code := opts.Code
	if code == "" {
		code = Code("CL", 1)
	}
	purpose := opts.Purpose
	if purpose == "" {
		purpose = "Ensure the " + p.Name + " process runs to completion."
	}

	numbers := NumberTasks(p)
	cl := &Checklist{
		Meta:         newMeta(code, "Checklist - "+p.Name, opts.Author),
		ProcessName:  p.Name,
		Purpose:      purpose,
		Trigger:      opts.Trigger,
		POPReference: opts.POPCode,
	}

	seq := 1
	for _, n := range p.Tasks() {
		name := n.DisplayName()
		cl.Items = append(cl.Items, ChecklistItem{
			Number:      seq,
			Description: name + " carried out",
			Criteria:    "Activity " + name + " completed as specified",
			Responsible: n.Actor,
			Mandatory:   true,
			RelatedStep: numbers[n.ID],
		})
		seq++

		for _, output := range n.Outputs {
			cl.Items = append(cl.Items, ChecklistItem{
				Number:      seq,
				Description: output + " produced",
				Criteria:    "Verify that " + output + " was produced correctly",
				Responsible: n.Actor,
				Mandatory:   true,
				RelatedStep: numbers[n.ID],
			})
			seq++
		}
	}
	return cl
}

// ChecklistForTask builds a checklist scoped to one activity: a start
// item, one item per input and output, and a completion item.
func ChecklistForTask(n *process.Node, p *process.Process, opts ChecklistOptions) *Checklist {
	return checklistForTask(n, p, NumberTasks(p), opts)
}

func checklistForTask(n *process.Node, p *process.Process, numbers map[string]string, opts ChecklistOptions) *Checklist {
	name := n.DisplayName()

	code := opts.Code
	if code == "" {
		code = Code("CL", 1)
	}
	purpose := opts.Purpose
	if purpose == "" {
		purpose = "Verify the execution of the " + name + " activity."
	}
	trigger := opts.Trigger
	if trigger == "" {
		trigger = "After performing " + name
	}

	cl := &Checklist{
		Meta:         newMeta(code, "Checklist - "+name, opts.Author),
		ProcessName:  p.Name,
		Purpose:      purpose,
		Trigger:      trigger,
		POPReference: opts.POPCode,
	}

	step := numbers[n.ID]
	add := func(description, criteria string) {
		cl.Items = append(cl.Items, ChecklistItem{
			Number:      len(cl.Items) + 1,
			Description: description,
			Criteria:    criteria,
			Responsible: n.Actor,
			Mandatory:   true,
			RelatedStep: step,
		})
	}

	add(name+" started", "Activity started correctly")
	for _, in := range n.Inputs {
		add("Input available: "+in, "Confirm "+in+" is available")
	}
	for _, output := range n.Outputs {
		add("Output produced: "+output, "Verify the quality of "+output)
	}
	add(name+" completed", "Activity finished successfully")

	return cl
}

// Markdown renders the checklist as a Markdown document.
func (d *Checklist) Markdown() (string, error) {
	return render(checklistTmpl, d)
}

var checklistTmpl = mustTemplate("checklist", `# {{.Code}} - {{.Title}}

**Version:** {{.Version}}
**Purpose:** {{.Purpose}}
{{if .Trigger}}**Trigger:** {{.Trigger}}
{{end}}
## Checklist

| # | Item | Acceptance criteria | Responsible | Done |
|---|------|---------------------|-------------|------|
{{range .Items}}| {{.Number}} | {{.Description}} | {{.Criteria}} | {{orDash .Responsible}} | ☐ |
{{end}}
---
**Author:** {{orDash .Author}}
`)
