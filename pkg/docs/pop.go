package docs

import (
	"strconv"

	"github.com/laneflow/laneflow/pkg/process"
)

// MapRow is one row of the POP process map: a numbered task or an
// unnumbered gateway, with whatever enrichment the node carries.
type MapRow struct {
	Number      string   `json:"number,omitempty"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Responsible string   `json:"responsible,omitempty"`
	Description string   `json:"description,omitempty"`
	Inputs      []string `json:"inputs,omitempty"`
	Outputs     []string `json:"outputs,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// Responsibility lists the activities one role performs.
type Responsibility struct {
	Role  string   `json:"role"`
	Tasks []string `json:"tasks"`
}

// Step describes one activity in 5W2H style. Every field is always
// populated, falling back to generic phrasing when the process graph
// carries no detail.
type Step struct {
	Number string `json:"number"`
	What   string `json:"what"`
	How    string `json:"how"`
	Why    string `json:"why"`
	When   string `json:"when"`
	Where  string `json:"where"`
	Who    string `json:"who"`
}

// POP is a standard operating procedure covering a whole process:
// objective and scope, a responsibility matrix, the numbered process
// map, and a 5W2H description of every step.
type POP struct {
	Meta
	ProcessName      string           `json:"process_name"`
	Objective        string           `json:"objective"`
	Scope            string           `json:"scope"`
	Responsibilities []Responsibility `json:"responsibilities,omitempty"`
	ProcessMap       []MapRow         `json:"process_map,omitempty"`
	Steps            []Step           `json:"steps,omitempty"`
}

// POPOptions control POP generation. Empty fields fall back to
// defaults derived from the process.
type POPOptions struct {
	Code      string // default POP-001
	Author    string
	Objective string
	Scope     string
}

// GeneratePOP builds a standard operating procedure from a process
// graph. Tasks and gateways become process-map rows, declared actors
// become the responsibility matrix, and each task gets a 5W2H step
// description.
func GeneratePOP(p *process.Process, opts POPOptions) *POP {
	code := opts.Code
	if code == "" {
		code = Code("POP", 1)
	}

	objective := opts.Objective
	if objective == "" {
		objective = "Standardize the execution of the " + p.Name + " process."
	}
	scope := opts.Scope
	if scope == "" {
		scope = "This procedure applies to everyone involved in the " + p.Name + " process."
	}

	numbers := NumberTasks(p)
	pop := &POP{
		Meta:             newMeta(code, p.Name, opts.Author),
		ProcessName:      p.Name,
		Objective:        objective,
		Scope:            scope,
		Responsibilities: responsibilities(p),
		ProcessMap:       processMap(p, numbers),
		Steps:            stepDescriptions(p, numbers),
	}
	return pop
}

// processMap lists tasks and gateways in declaration order. Gateways
// have no number; their row marks the decision point between steps.
func processMap(p *process.Process, numbers map[string]string) []MapRow {
	var rows []MapRow
	for _, n := range p.Nodes {
		if !n.IsTask() && !n.IsGateway() {
			continue
		}
		rows = append(rows, MapRow{
			Number:      numbers[n.ID],
			Name:        n.DisplayName(),
			Type:        string(n.Type),
			Responsible: n.Actor,
			Description: n.Description,
			Inputs:      n.Inputs,
			Outputs:     n.Outputs,
			Tools:       n.Tools,
		})
	}
	return rows
}

// responsibilities groups task names by declared actor. Actors with no
// tasks are skipped.
func responsibilities(p *process.Process) []Responsibility {
	var out []Responsibility
	for _, actor := range p.Actors {
		var tasks []string
		for _, n := range p.Nodes {
			if n.IsTask() && n.Actor == actor {
				tasks = append(tasks, n.DisplayName())
			}
		}
		if len(tasks) > 0 {
			out = append(out, Responsibility{Role: actor, Tasks: tasks})
		}
	}
	return out
}

func stepDescriptions(p *process.Process, numbers map[string]string) []Step {
	var steps []Step
	for i, n := range p.Tasks() {
		name := n.DisplayName()

		number := numbers[n.ID]
		if number == "" {
			number = strconv.Itoa(i + 1)
		}
		how := n.Description
		if how == "" {
			how = "Carry out the " + name + " activity."
		}
		who := n.Actor
		if who == "" {
			who = "Assigned owner"
		}

		steps = append(steps, Step{
			Number: number,
			What:   name,
			How:    how,
			Why:    "Ensure " + name + " is performed correctly.",
			When:   "As dictated by the process flow.",
			Where:  "In the work environment.",
			Who:    who,
		})
	}
	return steps
}

// Markdown renders the POP as a Markdown document.
func (d *POP) Markdown() (string, error) {
	return render(popTmpl, d)
}

var popTmpl = mustTemplate("pop", `# {{.Code}} - {{.Title}}

**Version:** {{.Version}}
**Status:** {{.Status}}

## 1. Objective

{{.Objective}}

## 2. Scope

{{.Scope}}

## 3. Responsibilities

| Role | Activities |
|------|------------|
{{range .Responsibilities}}| {{.Role}} | {{join .Tasks ", "}} |
{{end}}
## 4. Process Map

| # | Activity | Type | Responsible | Inputs | Outputs | Tools |
|---|----------|------|-------------|--------|---------|-------|
{{range .ProcessMap}}| {{orDash .Number}} | {{.Name}} | {{.Type}} | {{orDash .Responsible}} | {{list .Inputs}} | {{list .Outputs}} | {{list .Tools}} |
{{end}}
## 5. Step Descriptions
{{range .Steps}}
### Step {{.Number}}: {{.What}}

**What:** {{.What}}
**How:** {{.How}}
**Why:** {{.Why}}
**When:** {{.When}}
**Where:** {{.Where}}
**Who:** {{.Who}}
{{end}}
---
**Author:** {{orDash .Author}}
`)
