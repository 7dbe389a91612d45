package publish

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
)

const (
	// laneLabelFill is the background of the vertical actor bar on the
	// left edge of each lane.
	laneLabelFill = "#E0E0E0"

	// defaultLaneLabelWidth is used when a lane does not carry its own
	// label width.
	defaultLaneLabelWidth = 60

	// maxActorChars is the longest actor name the label bar renders
	// before truncation.
	maxActorChars = 15

	// belowLabelWidth and belowLabelGap place the text widget under
	// event circles whose label does not fit inside the shape.
	belowLabelWidth = 120
	belowLabelGap   = 20

	// iconSize and iconInset place SVG icon overlays in the top-left
	// corner of a shape.
	iconSize  = 20
	iconInset = 8
)

// stickyColors maps palette fills to Miro's named sticky note colors.
// Sticky notes reject arbitrary hex fills.
var stickyColors = map[string]string{
	"#FFF9C4": "yellow",
	"#C8E6C9": "light_green",
	"#FFCDD2": "light_pink",
	"#E3F2FD": "light_blue",
}

// BoardUpload reports what one upload created on a board.
type BoardUpload struct {
	BoardID  string
	BoardURL string

	// ItemIDs maps diagram element IDs to the board item IDs that
	// represent them.
	ItemIDs map[string]string

	ConnectorsCreated int
	ConnectorsFailed  int
}

// Publisher redraws positioned diagrams on Miro boards.
type Publisher struct {
	Miro   BoardClient
	Logger *log.Logger

	// IconBaseURL is the public URL prefix under which the icon SVGs
	// are served. When set, elements with an icon file get an image
	// overlay; otherwise the emoji fallback is prefixed to the text.
	// Miro fetches icon URLs server-side, so the prefix must be
	// reachable from the internet.
	IconBaseURL string
}

// NewPublisher creates a publisher around a board client.
// If logger is nil, the default logger is used.
func NewPublisher(client BoardClient, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{Miro: client, Logger: logger}
}

// Upload creates a new board and draws the diagram on it. An empty
// boardName falls back to the diagram name.
func (p *Publisher) Upload(ctx context.Context, d *diagram.Diagram, boardName string) (*BoardUpload, error) {
	if boardName == "" {
		boardName = d.Name
	}

	p.Logger.Info("creating board", "name", boardName)
	board, err := p.Miro.CreateBoard(ctx, boardName, d.Description)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	return p.Draw(ctx, board.ID, d)
}

// Draw recreates the diagram on an existing board: lane backgrounds
// first so everything else stacks on top, then elements, then
// connectors. A lane or element failure aborts the draw; connector
// failures are logged and counted, since a board missing one arrow is
// still useful.
func (p *Publisher) Draw(ctx context.Context, boardID string, d *diagram.Diagram) (*BoardUpload, error) {
	upload := &BoardUpload{
		BoardID:  boardID,
		BoardURL: p.Miro.BoardURL(boardID),
		ItemIDs:  make(map[string]string, len(d.Elements)),
	}

	p.Logger.Info("drawing diagram",
		"board", boardID,
		"lanes", len(d.Lanes),
		"elements", len(d.Elements),
		"connectors", len(d.Connectors))

	for i := range d.Lanes {
		if err := p.drawLane(ctx, boardID, &d.Lanes[i]); err != nil {
			return nil, fmt.Errorf("lane %s: %w", d.Lanes[i].ID, err)
		}
	}
	for i := range d.Elements {
		if err := p.drawElement(ctx, boardID, &d.Elements[i], upload.ItemIDs); err != nil {
			return nil, fmt.Errorf("element %s: %w", d.Elements[i].ID, err)
		}
	}
	for i := range d.Connectors {
		conn := &d.Connectors[i]
		if err := p.drawConnector(ctx, boardID, conn, upload.ItemIDs); err != nil {
			upload.ConnectorsFailed++
			p.Logger.Error("connector failed", "from", conn.From, "to", conn.To, "err", err)
			continue
		}
		upload.ConnectorsCreated++
	}

	p.Logger.Info("diagram drawn",
		"items", len(upload.ItemIDs),
		"connectors", upload.ConnectorsCreated,
		"failed", upload.ConnectorsFailed)
	return upload, nil
}

// drawLane paints the lane as two shapes: a translucent content area
// and an opaque label bar carrying the actor name.
func (p *Publisher) drawLane(ctx context.Context, boardID string, lane *diagram.Lane) error {
	labelWidth := lane.LabelWidth
	if labelWidth <= 0 {
		labelWidth = defaultLaneLabelWidth
	}

	// Translucent fill keeps connectors readable where they cross the
	// lane background.
	_, err := p.Miro.CreateShape(ctx, boardID, miro.Shape{
		Shape:  "rectangle",
		X:      lane.X + labelWidth + (lane.Width-labelWidth)/2,
		Y:      lane.CenterY(),
		Width:  lane.Width - labelWidth,
		Height: lane.Height,
		Style: &miro.ShapeStyle{
			FillColor:   lane.Fill,
			BorderColor: lane.Border,
			BorderWidth: "1",
			FillOpacity: "0.2",
		},
	})
	if err != nil {
		return err
	}

	_, err = p.Miro.CreateShape(ctx, boardID, miro.Shape{
		Shape:   "rectangle",
		Content: truncateActor(lane.Actor),
		X:       lane.X + labelWidth/2,
		Y:       lane.CenterY(),
		Width:   labelWidth,
		Height:  lane.Height,
		Style: &miro.ShapeStyle{
			FillColor:         laneLabelFill,
			BorderColor:       lane.Border,
			BorderWidth:       "1",
			FontSize:          "14",
			TextAlign:         "center",
			TextAlignVertical: "middle",
		},
	})
	return err
}

func (p *Publisher) drawElement(ctx context.Context, boardID string, el *diagram.Element, items map[string]string) error {
	var item *miro.Item
	var err error

	if el.Shape == diagram.ShapeSticky {
		item, err = p.Miro.CreateStickyNote(ctx, boardID, el.Text, el.CenterX(), el.CenterY(), stickyColor(el.Style.Fill))
	} else {
		iconURL := p.iconURL(el)
		content := el.Text
		if iconURL == "" && el.Icon != "" {
			content = el.Icon + " " + content
		}

		item, err = p.Miro.CreateShape(ctx, boardID, miro.Shape{
			Shape:   miroShape(el.Shape),
			Content: content,
			X:       el.CenterX(),
			Y:       el.CenterY(),
			Width:   el.Width,
			Height:  el.Height,
			Style: &miro.ShapeStyle{
				FillColor:         el.Style.Fill,
				BorderColor:       el.Style.Border,
				BorderWidth:       strconv.Itoa(el.Style.BorderWidth),
				FontSize:          strconv.Itoa(el.Style.FontSize),
				TextAlign:         "center",
				TextAlignVertical: "middle",
			},
		})
		if err == nil && iconURL != "" {
			// A failed overlay loses decoration, not meaning.
			if _, ierr := p.Miro.CreateImage(ctx, boardID, iconURL,
				el.X+iconSize/2+iconInset, el.Y+iconSize/2+iconInset,
				iconSize, iconSize); ierr != nil {
				p.Logger.Warn("icon overlay failed", "element", el.ID, "err", ierr)
			}
		}
	}
	if err != nil {
		return err
	}
	items[el.ID] = item.ID

	if el.LabelBelow && el.Label != "" {
		if _, err := p.Miro.CreateText(ctx, boardID, el.Label,
			el.CenterX(), el.Y+el.Height+belowLabelGap, belowLabelWidth); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) drawConnector(ctx context.Context, boardID string, conn *diagram.Connector, items map[string]string) error {
	start, ok := items[conn.From]
	if !ok {
		p.Logger.Warn("connector endpoint not on board", "element", conn.From)
		start = conn.From
	}
	end, ok := items[conn.To]
	if !ok {
		p.Logger.Warn("connector endpoint not on board", "element", conn.To)
		end = conn.To
	}

	stroke := "normal"
	if conn.Dashed {
		stroke = "dashed"
	}
	endCap := "none"
	if conn.ArrowEnd {
		endCap = "stealth"
	}

	_, err := p.Miro.CreateConnector(ctx, boardID, miro.Connector{
		StartItemID: start,
		EndItemID:   end,
		Caption:     conn.Label,
		Style: &miro.ConnectorStyle{
			StrokeColor:     conn.Color,
			StrokeWidth:     float64(conn.Width),
			StrokeStyle:     stroke,
			EndStrokeCap:    endCap,
			TextOrientation: "horizontal",
		},
	})
	return err
}

// iconURL resolves an element's icon file against the configured base
// URL. Empty when either side is missing.
func (p *Publisher) iconURL(el *diagram.Element) string {
	if p.IconBaseURL == "" || el.IconPath == "" {
		return ""
	}
	return strings.TrimSuffix(p.IconBaseURL, "/") + "/" + strings.TrimPrefix(el.IconPath, "/")
}

// miroShape maps diagram shapes onto Miro shape names. Miro calls a
// diamond a rhombus.
func miroShape(shape string) string {
	switch shape {
	case diagram.ShapeCircle:
		return "circle"
	case diagram.ShapeDiamond:
		return "rhombus"
	default:
		return "rectangle"
	}
}

func stickyColor(fill string) string {
	if c, ok := stickyColors[fill]; ok {
		return c
	}
	return "yellow"
}

// truncateActor shortens long actor names so they fit the vertical
// label bar.
func truncateActor(name string) string {
	runes := []rune(name)
	if len(runes) <= maxActorChars {
		return name
	}
	return string(runes[:maxActorChars-3]) + "..."
}
