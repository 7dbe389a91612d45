package docs

import (
	"strings"

	"github.com/laneflow/laneflow/pkg/hierarchy"
	"github.com/laneflow/laneflow/pkg/process"
)

// GenerateSIPOC summarizes a process in five columns. Start events
// become suppliers (whatever triggers the process), task inputs and
// outputs fill the I and O columns, numbered task names form the
// process column, and end events become customers.
func GenerateSIPOC(p *process.Process) *hierarchy.SIPOC {
	numbers := NumberTasks(p)
	s := &hierarchy.SIPOC{}

	seen := map[string]bool{}
	for _, n := range p.StartNodes() {
		name := n.DisplayName()
		if seen[name] {
			continue
		}
		seen[name] = true
		s.Suppliers = append(s.Suppliers, hierarchy.SIPOCItem{
			Name:        name,
			Description: "Triggers the process",
			Kind:        partyKind(name),
		})
	}

	seen = map[string]bool{}
	for _, n := range p.Tasks() {
		for _, in := range n.Inputs {
			if seen[in] {
				continue
			}
			seen[in] = true
			s.Inputs = append(s.Inputs, hierarchy.SIPOCItem{
				Name:        in,
				Description: "Input for " + n.DisplayName(),
			})
		}
	}

	for _, n := range p.Tasks() {
		step := n.DisplayName()
		if num := numbers[n.ID]; num != "" {
			step = num + ". " + step
		}
		s.Steps = append(s.Steps, step)
	}

	seen = map[string]bool{}
	for _, n := range p.Tasks() {
		for _, out := range n.Outputs {
			if seen[out] {
				continue
			}
			seen[out] = true
			s.Outputs = append(s.Outputs, hierarchy.SIPOCItem{
				Name:        out,
				Description: "Output of " + n.DisplayName(),
			})
		}
	}

	seen = map[string]bool{}
	for _, n := range p.EndNodes() {
		name := n.DisplayName()
		if seen[name] {
			continue
		}
		seen[name] = true
		s.Customers = append(s.Customers, hierarchy.SIPOCItem{
			Name:        name,
			Description: "Receives the process result",
			Kind:        partyKind(name),
		})
	}

	return s
}

// SIPOCForMacroprocess returns the macroprocess's own SIPOC when it
// has one, otherwise a skeleton whose process column references the
// child processes.
func SIPOCForMacroprocess(m *hierarchy.Macroprocess) *hierarchy.SIPOC {
	if m.SIPOC != nil {
		return m.SIPOC
	}
	s := &hierarchy.SIPOC{}
	for _, pid := range m.Processes {
		s.Steps = append(s.Steps, "Process: "+pid)
	}
	return s
}

// partyKind guesses whether a supplier or customer is external. Names
// mentioning customers or clients are taken as external parties.
func partyKind(name string) hierarchy.ItemKind {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "customer") || strings.Contains(lower, "client") {
		return hierarchy.ItemExternal
	}
	return hierarchy.ItemInternal
}

// sipocRow is one rendered line of the five-column grid.
type sipocRow struct {
	Supplier, Input, Step, Output, Customer string
}

// SIPOCMarkdown renders a SIPOC as a Markdown table titled with the
// process name. Columns are padded to the longest one.
func SIPOCMarkdown(s *hierarchy.SIPOC, name string) (string, error) {
	rows := max(len(s.Suppliers), len(s.Inputs), len(s.Steps), len(s.Outputs), len(s.Customers))

	data := struct {
		Name string
		Rows []sipocRow
	}{Name: name}

	for i := 0; i < rows; i++ {
		var r sipocRow
		if i < len(s.Suppliers) {
			r.Supplier = s.Suppliers[i].Name
		}
		if i < len(s.Inputs) {
			r.Input = s.Inputs[i].Name
		}
		if i < len(s.Steps) {
			r.Step = s.Steps[i]
		}
		if i < len(s.Outputs) {
			r.Output = s.Outputs[i].Name
		}
		if i < len(s.Customers) {
			r.Customer = s.Customers[i].Name
		}
		data.Rows = append(data.Rows, r)
	}

	return render(sipocTmpl, data)
}

var sipocTmpl = mustTemplate("sipoc", `# SIPOC - {{.Name}}

| Suppliers | Inputs | Process | Outputs | Customers |
|-----------|--------|---------|---------|-----------|
{{range .Rows}}| {{.Supplier}} | {{.Input}} | {{.Step}} | {{.Output}} | {{.Customer}} |
{{end}}`)
