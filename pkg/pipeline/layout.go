package pipeline

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/layout"
	"github.com/laneflow/laneflow/pkg/process"
)

// ComputeLayout positions a process as a swimlane diagram.
//
// The layout.Result carries run diagnostics: how many backward edges
// were rewritten into link pairs, which edges referenced unknown nodes
// and were skipped, and whether any element was unreachable. The runner
// logs these; library callers can inspect them directly.
func ComputeLayout(p *process.Process, opts Options) (diagram.Diagram, layout.Result, error) {
	return layout.Layout(p, opts.LayoutConfig())
}
