package layout

// Fixed page geometry. The left margin leaves room for the lane label
// bar; the first column starts further right so connectors entering
// the first elements have somewhere to bend.
const (
	startX       = 250.0
	marginTop    = 100.0
	marginLeft   = 50.0
	marginRight  = 50.0
	canvasMargin = 100.0
)

// Config holds the spacing and sizing parameters for one layout run.
// The zero value of any field is replaced by its default, so callers
// can override a single knob without spelling out the rest.
type Config struct {
	// SpacingX is the horizontal gap between rank columns.
	SpacingX float64

	// SpacingY is the vertical gap between flow rows. The swimlane
	// positioner spaces in-lane stacks by StackSpacing, not SpacingY.
	SpacingY float64

	// LaneHeight is the height of every swimlane band. Lanes are
	// contiguous: each sits directly below the previous one.
	LaneHeight float64

	// StackSpacing is the vertical gap between elements stacked in
	// the same (rank, lane) cell.
	StackSpacing float64

	// LabelReserve is the extra height reserved below shapes whose
	// name renders as an external label underneath (events, link
	// markers), so stacked labels never collide with the next shape.
	LabelReserve float64

	// BaseWidth and BaseHeight are the starting canvas dimensions.
	// The canvas grows past them when the diagram needs more room and
	// never shrinks below them.
	BaseWidth  float64
	BaseHeight float64
}

// DefaultConfig returns the standard tuning used by the CLI and server.
func DefaultConfig() Config {
	return Config{
		SpacingX:     150,
		SpacingY:     100,
		LaneHeight:   200,
		StackSpacing: 30,
		LabelReserve: 40,
		BaseWidth:    4000,
		BaseHeight:   3000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SpacingX == 0 {
		c.SpacingX = d.SpacingX
	}
	if c.SpacingY == 0 {
		c.SpacingY = d.SpacingY
	}
	if c.LaneHeight == 0 {
		c.LaneHeight = d.LaneHeight
	}
	if c.StackSpacing == 0 {
		c.StackSpacing = d.StackSpacing
	}
	if c.LabelReserve == 0 {
		c.LabelReserve = d.LabelReserve
	}
	if c.BaseWidth == 0 {
		c.BaseWidth = d.BaseWidth
	}
	if c.BaseHeight == 0 {
		c.BaseHeight = d.BaseHeight
	}
	return c
}
