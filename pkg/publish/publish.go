package publish

import (
	"context"

	"github.com/laneflow/laneflow/pkg/integrations/clickup"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
)

// BoardClient is the slice of the Miro API the publisher uses.
// *miro.Client implements it; tests drop in fakes.
type BoardClient interface {
	CreateBoard(ctx context.Context, name, description string) (*miro.Board, error)
	CreateShape(ctx context.Context, boardID string, shape miro.Shape) (*miro.Item, error)
	CreateStickyNote(ctx context.Context, boardID, content string, x, y float64, color string) (*miro.Item, error)
	CreateText(ctx context.Context, boardID, content string, x, y, width float64) (*miro.Item, error)
	CreateFrame(ctx context.Context, boardID, title string, x, y, width, height float64) (*miro.Item, error)
	CreateConnector(ctx context.Context, boardID string, conn miro.Connector) (*miro.Item, error)
	CreateCard(ctx context.Context, boardID string, card miro.Card) (*miro.Item, error)
	CreateLinkCard(ctx context.Context, boardID, title, linkURL string, x, y float64) (*miro.Item, error)
	CreateEmbed(ctx context.Context, boardID, embedURL string, x, y, width float64) (*miro.Item, error)
	CreateImage(ctx context.Context, boardID, imageURL string, x, y, width, height float64) (*miro.Item, error)
	ListItems(ctx context.Context, boardID, itemType string, limit int) ([]miro.BoardItem, error)
	BoardURL(boardID string) string
	ItemURL(boardID, itemID string) string
}

// TaskClient is the slice of the ClickUp API the syncer uses.
// *clickup.Client implements it.
type TaskClient interface {
	CreateProcessStructure(ctx context.Context, spaceID, processName string, activities []clickup.Activity) (*clickup.ProcessStructure, error)
	CreateFolder(ctx context.Context, spaceID, name string) (*clickup.Folder, error)
	CreateComment(ctx context.Context, taskID, text string) error
	UpdateTask(ctx context.Context, taskID string, req clickup.TaskRequest) (*clickup.Task, error)
	ListURL(listID string) string
}

var (
	_ BoardClient = (*miro.Client)(nil)
	_ TaskClient  = (*clickup.Client)(nil)
)
