// Package diagram defines the positioned visual model produced by the
// layout engine and consumed by renderers and publishers.
//
// A Diagram is a flat list of styled shapes (Element), arrows
// (Connector), and horizontal actor bands (Lane) on a fixed-size
// canvas. All coordinates are top-left based; publishers that address
// shapes by their center (Miro does) convert at the edge.
package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Diagram - Positioned Visual Model
// =============================================================================

// Diagram types.
const (
	TypeProcess    = "process"
	TypeSIPOC      = "sipoc"
	TypeValueChain = "valuechain"
)

// Diagram is a fully positioned visual document.
//
// Check Type to determine how the parts relate:
//
//	Process ("process"):
//	  - Elements laid out left-to-right by rank inside Lanes
//	  - Connectors carry the flow arrows
//
//	SIPOC ("sipoc"):
//	  - Elements form a title, a header row, and five columns of cards;
//	    Connectors chain the column headers. No Lanes.
//
//	Value chain ("valuechain"):
//	  - Elements form the band frames and macroprocess boxes;
//	    Connectors chain the primary band. No Lanes.
//
// Width and Height describe the canvas. For process diagrams it only
// ever grows from the configured base size.
type Diagram struct {
	// Discriminator
	Type string `json:"type" bson:"type"`

	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	Elements   []Element   `json:"elements,omitempty" bson:"elements,omitempty"`
	Connectors []Connector `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Lanes      []Lane      `json:"lanes,omitempty" bson:"lanes,omitempty"`

	// Canvas dimensions
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// IsProcess returns true if this is a swimlane process diagram.
func (d *Diagram) IsProcess() bool { return d.Type == TypeProcess }

// Element returns the element with the given visual ID.
func (d *Diagram) Element(id string) (*Element, bool) {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return &d.Elements[i], true
		}
	}
	return nil, false
}

// LaneFor returns the lane owned by the given actor.
func (d *Diagram) LaneFor(actor string) (*Lane, bool) {
	for i := range d.Lanes {
		if d.Lanes[i].Actor == actor {
			return &d.Lanes[i], true
		}
	}
	return nil, false
}

// Bounds returns the bounding box of all elements as
// (xMin, yMin, xMax, yMax). A diagram without elements has zero bounds.
func (d *Diagram) Bounds() (xMin, yMin, xMax, yMax float64) {
	if len(d.Elements) == 0 {
		return 0, 0, 0, 0
	}
	first := d.Elements[0]
	xMin, yMin = first.X, first.Y
	xMax, yMax = first.X+first.Width, first.Y+first.Height
	for _, e := range d.Elements[1:] {
		if e.X < xMin {
			xMin = e.X
		}
		if e.Y < yMin {
			yMin = e.Y
		}
		if e.X+e.Width > xMax {
			xMax = e.X + e.Width
		}
		if e.Y+e.Height > yMax {
			yMax = e.Y + e.Height
		}
	}
	return xMin, yMin, xMax, yMax
}

// =============================================================================
// Element - Positioned Shape
// =============================================================================

// Element shapes.
const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeDiamond   = "diamond"
	ShapeSticky    = "sticky_note"
)

// Element is a single positioned shape.
//
// X and Y are the top-left corner. Synthetic elements created during
// cycle breaking carry a LinkLabel pairing the throw side with its
// catch side; their NodeID names the synthetic link event rather than
// a node of the source process.
type Element struct {
	ID     string `json:"id" bson:"id"`
	NodeID string `json:"node_id,omitempty" bson:"node_id,omitempty"`
	Shape  string `json:"shape" bson:"shape"`

	// Text inside the shape. Events and gateways show a glyph here and
	// carry their name in Label instead.
	Text       string `json:"text" bson:"text"`
	Label      string `json:"label,omitempty" bson:"label,omitempty"`
	LabelBelow bool   `json:"label_below,omitempty" bson:"label_below,omitempty"`

	// Icon is an emoji prefix; IconPath points at an SVG asset that
	// replaces the emoji when set.
	Icon     string `json:"icon,omitempty" bson:"icon,omitempty"`
	IconPath string `json:"icon_path,omitempty" bson:"icon_path,omitempty"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Style Style `json:"style" bson:"style"`

	Actor     string `json:"actor,omitempty" bson:"actor,omitempty"`
	LinkLabel string `json:"link_label,omitempty" bson:"link_label,omitempty"`
}

// CenterX returns the horizontal center of the element.
func (e *Element) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element.
func (e *Element) CenterY() float64 { return e.Y + e.Height/2 }

// Style describes how a shape is painted.
type Style struct {
	Fill        string `json:"fill" bson:"fill"`
	Border      string `json:"border" bson:"border"`
	TextColor   string `json:"text_color" bson:"text_color"`
	BorderWidth int    `json:"border_width" bson:"border_width"`
	FontSize    int    `json:"font_size" bson:"font_size"`
	Bold        bool   `json:"bold,omitempty" bson:"bold,omitempty"`
}

// =============================================================================
// Connector - Flow Arrow
// =============================================================================

// Connector is an arrow between two elements. FlowID names the source
// process edge ("from->to"); connectors synthesized during cycle
// breaking reference the link event side instead.
type Connector struct {
	ID     string `json:"id" bson:"id"`
	FlowID string `json:"flow_id,omitempty" bson:"flow_id,omitempty"`
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`

	Color    string `json:"color" bson:"color"`
	Width    int    `json:"width" bson:"width"`
	Dashed   bool   `json:"dashed,omitempty" bson:"dashed,omitempty"`
	ArrowEnd bool   `json:"arrow_end" bson:"arrow_end"`
}

// =============================================================================
// Lane - Actor Band
// =============================================================================

// Lane is a horizontal band owned by one actor. Elements lists the
// visual IDs assigned to the band in process declaration order. The
// label bar on the left edge is LabelWidth wide.
type Lane struct {
	ID    string `json:"id" bson:"id"`
	Actor string `json:"actor" bson:"actor"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Fill      string `json:"fill" bson:"fill"`
	Border    string `json:"border" bson:"border"`
	TextColor string `json:"text_color" bson:"text_color"`

	Elements   []string `json:"elements,omitempty" bson:"elements,omitempty"`
	LabelWidth float64  `json:"label_width" bson:"label_width"`
}

// CenterY returns the vertical center of the lane.
func (l *Lane) CenterY() float64 { return l.Y + l.Height/2 }

// Contains reports whether the lane holds the given visual ID.
func (l *Lane) Contains(id string) bool {
	for _, e := range l.Elements {
		if e == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram serializes a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDiagram deserializes JSON bytes into a Diagram.
// Validates referential integrity: connectors and lanes may only
// reference elements present in the document.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}

	if d.Type == "" {
		d.Type = TypeProcess
	}
	switch d.Type {
	case TypeProcess, TypeSIPOC, TypeValueChain:
	default:
		return Diagram{}, fmt.Errorf("unknown diagram type %q", d.Type)
	}

	ids := make(map[string]bool, len(d.Elements))
	for _, e := range d.Elements {
		ids[e.ID] = true
	}
	for _, c := range d.Connectors {
		if !ids[c.From] || !ids[c.To] {
			return Diagram{}, fmt.Errorf("connector %s references unknown element", c.ID)
		}
	}
	for _, l := range d.Lanes {
		for _, id := range l.Elements {
			if !ids[id] {
				return Diagram{}, fmt.Errorf("lane %s references unknown element %s", l.ID, id)
			}
		}
	}

	return d, nil
}

// WriteDiagramFile writes a Diagram to a JSON file.
func WriteDiagramFile(d Diagram, path string) error {
	data, err := MarshalDiagram(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDiagramFile reads a Diagram from a JSON file.
func ReadDiagramFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDiagram(data)
}
