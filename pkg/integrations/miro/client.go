package miro

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/integrations"
)

const defaultBaseURL = "https://api.miro.com/v2"

// linkCardTheme is the accent color for cards that link to another board.
const linkCardTheme = "#E3F2FD"

// Board holds the identity of a Miro board.
//
// ViewLink is the browser URL Miro reports for the board; it may be empty
// on older API responses, in which case [Client.BoardURL] reconstructs it
// from the ID.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ViewLink    string `json:"viewLink"`
}

// Item identifies a widget created on a board.
type Item struct {
	ID string `json:"id"`
}

// BoardItem is an existing widget returned by [Client.ListItems].
type BoardItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Content string `json:"content"`
		Title   string `json:"title"`
	} `json:"data"`
}

// Shape describes a shape widget to create.
//
// X and Y address the shape's center, following the Miro coordinate model.
// Callers working with top-left coordinates must convert before calling.
type Shape struct {
	Shape   string // "rectangle", "circle", "rhombus"; empty means "rectangle"
	Content string // text content, may contain basic HTML tags
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Style   *ShapeStyle // nil for Miro defaults
}

// ShapeStyle styles a shape widget. Miro expects numeric style values as
// strings here ("1", "14", "0.2"); only connector strokes are numbers.
type ShapeStyle struct {
	FillColor         string `json:"fillColor,omitempty"`
	FillOpacity       string `json:"fillOpacity,omitempty"`
	BorderColor       string `json:"borderColor,omitempty"`
	BorderWidth       string `json:"borderWidth,omitempty"`
	FontSize          string `json:"fontSize,omitempty"`
	TextAlign         string `json:"textAlign,omitempty"`
	TextAlignVertical string `json:"textAlignVertical,omitempty"`
	Color             string `json:"color,omitempty"`
}

// Connector describes an elbowed connector between two widgets.
type Connector struct {
	StartItemID string
	EndItemID   string
	Caption     string          // optional label rendered on the line
	Style       *ConnectorStyle // nil for the house style
}

// ConnectorStyle styles a connector. Unlike shape styles, StrokeWidth is
// a JSON number.
type ConnectorStyle struct {
	StrokeColor     string  `json:"strokeColor,omitempty"`
	StrokeWidth     float64 `json:"strokeWidth,omitempty"`
	StrokeStyle     string  `json:"strokeStyle,omitempty"` // "normal" or "dashed"
	EndStrokeCap    string  `json:"endStrokeCap,omitempty"`
	TextOrientation string  `json:"textOrientation,omitempty"`
}

// Card describes a card widget.
type Card struct {
	Title       string
	Description string
	Theme       string // accent color, empty for Miro default
	X           float64
	Y           float64
}

// Client provides access to the Miro REST API v2.
// It handles HTTP requests with caching and automatic retries on reads.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Miro client authenticated with the given access token.
//
// Parameters:
//   - backend: cache backend for board lookups (nil disables caching)
//   - token: Miro OAuth access token, sent as a Bearer header
//   - cacheTTL: how long board lookups are cached
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, token string, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(backend, "miro", cacheTTL, headers),
		baseURL: defaultBaseURL,
	}
}

// CreateBoard creates a private board shared with the team for editing.
func (c *Client) CreateBoard(ctx context.Context, name, description string) (*Board, error) {
	payload := boardPayload{
		Name:        name,
		Description: description,
		Policy: boardPolicy{
			SharingPolicy: sharingPolicy{Access: "private", TeamAccess: "edit"},
		},
	}

	var board Board
	if err := c.Post(ctx, c.baseURL+"/boards", payload, &board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return &board, nil
}

// GetBoard retrieves board metadata.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns [integrations.ErrNotFound] if the board doesn't exist and
// [integrations.ErrNetwork] for HTTP failures.
func (c *Client) GetBoard(ctx context.Context, boardID string, refresh bool) (*Board, error) {
	var board Board
	err := c.Cached(ctx, "board:"+boardID, refresh, &board, func() error {
		if err := c.Get(ctx, c.baseURL+"/boards/"+boardID, &board); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: board %s", err, boardID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// DeleteBoard permanently deletes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.Delete(ctx, c.baseURL+"/boards/"+boardID)
}

// CreateShape creates a shape widget on a board.
func (c *Client) CreateShape(ctx context.Context, boardID string, shape Shape) (*Item, error) {
	kind := shape.Shape
	if kind == "" {
		kind = "rectangle"
	}
	payload := shapePayload{
		Data:     shapeData{Shape: kind, Content: shape.Content},
		Position: position(shape.X, shape.Y),
		Geometry: geometryPayload{Width: shape.Width, Height: shape.Height},
		Style:    shape.Style,
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/shapes", payload, &item); err != nil {
		return nil, fmt.Errorf("create shape: %w", err)
	}
	return &item, nil
}

// CreateStickyNote creates a square sticky note. The color must be one of
// Miro's named sticky colors ("yellow", "light_green", "light_pink",
// "light_blue", ...); an empty color means yellow.
func (c *Client) CreateStickyNote(ctx context.Context, boardID, content string, x, y float64, color string) (*Item, error) {
	if color == "" {
		color = "yellow"
	}
	payload := stickyPayload{
		Data:     stickyData{Content: content, Shape: "square"},
		Position: position(x, y),
		Style:    stickyStyle{FillColor: color},
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/sticky_notes", payload, &item); err != nil {
		return nil, fmt.Errorf("create sticky note: %w", err)
	}
	return &item, nil
}

// CreateText creates a left-aligned text widget. A width of 0 lets Miro
// size the text box itself.
func (c *Client) CreateText(ctx context.Context, boardID, content string, x, y, width float64) (*Item, error) {
	payload := textPayload{
		Data:     textData{Content: content},
		Position: position(x, y),
		Style:    textStyle{FontSize: "14", TextAlign: "left"},
	}
	if width > 0 {
		payload.Geometry = &geometryPayload{Width: width}
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/texts", payload, &item); err != nil {
		return nil, fmt.Errorf("create text: %w", err)
	}
	return &item, nil
}

// CreateFrame creates a freeform frame titled title.
func (c *Client) CreateFrame(ctx context.Context, boardID, title string, x, y, width, height float64) (*Item, error) {
	payload := framePayload{
		Data:     frameData{Title: title, Format: "custom", Type: "freeform"},
		Position: position(x, y),
		Geometry: geometryPayload{Width: width, Height: height},
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/frames", payload, &item); err != nil {
		return nil, fmt.Errorf("create frame: %w", err)
	}
	return &item, nil
}

// CreateConnector creates an elbowed connector between two widgets.
// A nil style gets the house style: dark 2pt solid stroke with a stealth
// arrowhead. A non-nil style is sent as-is; the caller fills every field.
func (c *Client) CreateConnector(ctx context.Context, boardID string, conn Connector) (*Item, error) {
	style := conn.Style
	if style == nil {
		style = &ConnectorStyle{
			StrokeColor:     "#1a1a1a",
			StrokeWidth:     2,
			StrokeStyle:     "normal",
			EndStrokeCap:    "stealth",
			TextOrientation: "horizontal",
		}
	}
	payload := connectorPayload{
		StartItem: itemRef{ID: conn.StartItemID},
		EndItem:   itemRef{ID: conn.EndItemID},
		Shape:     "elbowed",
		Style:     style,
	}
	if conn.Caption != "" {
		payload.Captions = []captionPayload{{Content: conn.Caption}}
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/connectors", payload, &item); err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	return &item, nil
}

// CreateCard creates a card widget.
func (c *Client) CreateCard(ctx context.Context, boardID string, card Card) (*Item, error) {
	payload := cardPayload{
		Data:     cardData{Title: card.Title, Description: card.Description},
		Position: position(card.X, card.Y),
	}
	if card.Theme != "" {
		payload.Style = &cardStyle{CardTheme: card.Theme}
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/cards", payload, &item); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	return &item, nil
}

// CreateLinkCard creates a card that points at an external URL, styled in
// the link accent color. The URL lands in the card description because the
// cards API has no dedicated link field.
func (c *Client) CreateLinkCard(ctx context.Context, boardID, title, linkURL string, x, y float64) (*Item, error) {
	return c.CreateCard(ctx, boardID, Card{
		Title:       title,
		Description: "open: " + linkURL,
		Theme:       linkCardTheme,
		X:           x,
		Y:           y,
	})
}

// CreateEmbed embeds an external URL inline on the board. Not every URL is
// embeddable; callers should fall back to [Client.CreateCard] on error.
func (c *Client) CreateEmbed(ctx context.Context, boardID, embedURL string, x, y, width float64) (*Item, error) {
	payload := embedPayload{
		Data:     embedData{URL: embedURL, Mode: "inline"},
		Position: position(x, y),
	}
	if width > 0 {
		payload.Geometry = &geometryPayload{Width: width}
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/embeds", payload, &item); err != nil {
		return nil, fmt.Errorf("create embed: %w", err)
	}
	return &item, nil
}

// CreateImage places an image from a publicly reachable URL on the board.
// Miro fetches the URL server-side, so localhost and intranet addresses
// will not resolve.
func (c *Client) CreateImage(ctx context.Context, boardID, imageURL string, x, y, width, height float64) (*Item, error) {
	payload := imagePayload{
		Data:     imageData{URL: imageURL},
		Position: position(x, y),
		Geometry: geometryPayload{Width: width, Height: height},
	}

	var item Item
	if err := c.Post(ctx, c.baseURL+"/boards/"+boardID+"/images", payload, &item); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return &item, nil
}

// ListItems lists widgets on a board, optionally filtered by type
// ("shape", "sticky_note", "text", ...). Results are never cached; boards
// change while a publish is in flight.
func (c *Client) ListItems(ctx context.Context, boardID, itemType string, limit int) ([]BoardItem, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if itemType != "" {
		q.Set("type", itemType)
	}

	var resp itemsResponse
	if err := c.Get(ctx, c.baseURL+"/boards/"+boardID+"/items?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateItem replaces the text content of an existing widget.
func (c *Client) UpdateItem(ctx context.Context, boardID, itemID, content string) error {
	payload := map[string]any{"data": map[string]any{"content": content}}
	return c.Patch(ctx, c.baseURL+"/boards/"+boardID+"/items/"+itemID, payload, nil)
}

// DeleteItem removes a widget from a board.
func (c *Client) DeleteItem(ctx context.Context, boardID, itemID string) error {
	return c.Delete(ctx, c.baseURL+"/boards/"+boardID+"/items/"+itemID)
}

// BoardURL returns the browser URL for a board.
func (c *Client) BoardURL(boardID string) string {
	return "https://miro.com/app/board/" + boardID
}

// ItemURL returns a deep link that opens a board scrolled to one widget.
func (c *Client) ItemURL(boardID, itemID string) string {
	return c.BoardURL(boardID) + "?moveToWidget=" + itemID
}

func position(x, y float64) positionPayload {
	return positionPayload{X: x, Y: y, Origin: "center"}
}

type positionPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Origin string  `json:"origin"`
}

type geometryPayload struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type boardPayload struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Policy      boardPolicy `json:"policy"`
}

type boardPolicy struct {
	SharingPolicy sharingPolicy `json:"sharingPolicy"`
}

type sharingPolicy struct {
	Access     string `json:"access"`
	TeamAccess string `json:"teamAccess"`
}

type shapePayload struct {
	Data     shapeData       `json:"data"`
	Position positionPayload `json:"position"`
	Geometry geometryPayload `json:"geometry"`
	Style    *ShapeStyle     `json:"style,omitempty"`
}

type shapeData struct {
	Shape   string `json:"shape"`
	Content string `json:"content"`
}

type stickyPayload struct {
	Data     stickyData      `json:"data"`
	Position positionPayload `json:"position"`
	Style    stickyStyle     `json:"style"`
}

type stickyData struct {
	Content string `json:"content"`
	Shape   string `json:"shape"`
}

type stickyStyle struct {
	FillColor string `json:"fillColor"`
}

type textPayload struct {
	Data     textData         `json:"data"`
	Position positionPayload  `json:"position"`
	Geometry *geometryPayload `json:"geometry,omitempty"`
	Style    textStyle        `json:"style"`
}

type textData struct {
	Content string `json:"content"`
}

type textStyle struct {
	FontSize  string `json:"fontSize"`
	TextAlign string `json:"textAlign"`
}

type framePayload struct {
	Data     frameData       `json:"data"`
	Position positionPayload `json:"position"`
	Geometry geometryPayload `json:"geometry"`
}

type frameData struct {
	Title  string `json:"title"`
	Format string `json:"format"`
	Type   string `json:"type"`
}

type connectorPayload struct {
	StartItem itemRef          `json:"startItem"`
	EndItem   itemRef          `json:"endItem"`
	Shape     string           `json:"shape"`
	Style     *ConnectorStyle  `json:"style,omitempty"`
	Captions  []captionPayload `json:"captions,omitempty"`
}

type itemRef struct {
	ID string `json:"id"`
}

type captionPayload struct {
	Content string `json:"content"`
}

type cardPayload struct {
	Data     cardData        `json:"data"`
	Position positionPayload `json:"position"`
	Style    *cardStyle      `json:"style,omitempty"`
}

type cardData struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type cardStyle struct {
	CardTheme string `json:"cardTheme,omitempty"`
}

type embedPayload struct {
	Data     embedData        `json:"data"`
	Position positionPayload  `json:"position"`
	Geometry *geometryPayload `json:"geometry,omitempty"`
}

type embedData struct {
	URL  string `json:"url"`
	Mode string `json:"mode"`
}

type imagePayload struct {
	Data     imageData       `json:"data"`
	Position positionPayload `json:"position"`
	Geometry geometryPayload `json:"geometry"`
}

type imageData struct {
	URL string `json:"url"`
}

type itemsResponse struct {
	Data []BoardItem `json:"data"`
}
