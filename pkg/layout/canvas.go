package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
)

// sizeCanvas sets the canvas to the configured base dimensions, grown
// to fit the placed geometry plus a fixed margin. The canvas never
// shrinks below the base size, and an empty diagram causes no growth.
func sizeCanvas(d *diagram.Diagram, cfg Config) {
	d.Width = cfg.BaseWidth
	d.Height = cfg.BaseHeight

	if len(d.Elements) == 0 {
		return
	}

	_, _, xMax, yMax := d.Bounds()
	d.Width = max(d.Width, xMax+canvasMargin)
	d.Height = max(d.Height, yMax+canvasMargin)
}
