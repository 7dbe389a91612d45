package icons

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// Decorate attaches SVG icon paths to the elements of a positioned
// diagram. Elements keep the emoji glyph assigned during layout unless
// the mode is svg, in which case unresolved glyphs are cleared so
// renderers draw nothing rather than mixing styles.
//
// Link substitution elements carry synthetic node ids and keep their
// letter labels untouched.
func (r *Resolver) Decorate(d *diagram.Diagram, p *process.Process) {
	if r == nil || d == nil || p == nil {
		return
	}

	for i := range d.Elements {
		el := &d.Elements[i]
		n, ok := p.Node(el.NodeID)
		if !ok {
			continue
		}
		if ic, found := r.Resolve(n); found {
			el.IconPath = ic.Path
			if r.mode == ModeSVG {
				el.Icon = ""
			}
			continue
		}
		if r.mode == ModeSVG {
			el.Icon = ""
		}
	}
}
