package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/docs"
	"github.com/laneflow/laneflow/pkg/hierarchy"
	"github.com/laneflow/laneflow/pkg/integrations/clickup"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
	"github.com/laneflow/laneflow/pkg/layout"
	"github.com/laneflow/laneflow/pkg/process"
)

// Board name prefixes per diagram kind. A process with an explicit
// code uses "CODE - Name" instead.
const (
	processBoardPrefix    = "PROC - "
	valueChainBoardPrefix = "Value Chain - "
	macroBoardPrefix      = "MACRO - "
)

// The POP frame and the ClickUp embed live in the margin left of the
// diagram, which starts at x=0.
const (
	popFrameX      = -300
	popFrameY      = 0
	popFrameWidth  = 250
	popFrameHeight = 200

	embedX = -300
	embedY = 250
)

// taskCardTheme colors the fallback card when the workspace rejects
// the ClickUp embed.
const taskCardTheme = "#7B68EE"

// macroLinkGap is the distance between a macroprocess box and the
// navigation card linking to its detail board.
const macroLinkGap = 60

// SyncResult reports one synchronization run across both platforms.
// Errors mark the run unsuccessful; warnings do not.
type SyncResult struct {
	Success   bool      `json:"success"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`

	MiroBoardID  string `json:"miro_board_id,omitempty"`
	MiroBoardURL string `json:"miro_board_url,omitempty"`

	// MiroItemIDs maps process node IDs (macroprocess IDs on a value
	// chain board) to the board items that render them.
	MiroItemIDs map[string]string `json:"miro_item_ids,omitempty"`

	ClickUpSpaceID  string `json:"clickup_space_id,omitempty"`
	ClickUpFolderID string `json:"clickup_folder_id,omitempty"`
	ClickUpListID   string `json:"clickup_list_id,omitempty"`

	// ClickUpTaskIDs maps process node IDs to the tasks created for
	// them. Together with MiroItemIDs it pairs each node's shape with
	// its task.
	ClickUpTaskIDs map[string]string `json:"clickup_task_ids,omitempty"`

	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func newSyncResult(operation string) *SyncResult {
	return &SyncResult{
		Success:   true,
		Operation: operation,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
	}
}

// AddError records a failure and marks the run unsuccessful.
func (r *SyncResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Success = false
}

// AddWarning records a problem that degraded the run without failing it.
func (r *SyncResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// SyncOptions tune one synchronization run. The zero value generates
// documents, creates the board, and skips task creation (no space ID).
type SyncOptions struct {
	// SpaceID is the ClickUp space receiving the folder/list/task
	// structure. Empty skips task creation with a warning.
	SpaceID string

	// ProcessID is the process code, e.g. "PR-012". When set, the
	// board is named "PR-012 - Name" instead of "PROC - Name".
	ProcessID string

	// Author and POPCode stamp the generated documents.
	Author  string
	POPCode string

	SkipBoard bool
	SkipTasks bool
	SkipDocs  bool
}

// Syncer publishes processes to Miro and ClickUp and cross-links the
// two platforms. Tasks may be nil, in which case only the board side
// runs.
type Syncer struct {
	Publisher *Publisher
	Tasks     TaskClient
	Layout    layout.Config
	Logger    *log.Logger
}

// NewSyncer creates a syncer around an existing publisher.
// If logger is nil, the default logger is used.
func NewSyncer(pub *Publisher, tasks TaskClient, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		Publisher: pub,
		Tasks:     tasks,
		Layout:    layout.DefaultConfig(),
		Logger:    logger,
	}
}

// SyncProcess runs the full round trip for one process: documents,
// board, task structure, cross-links. Partial failures accumulate on
// the result instead of aborting the remaining phases.
func (s *Syncer) SyncProcess(ctx context.Context, proc *process.Process, opts SyncOptions) *SyncResult {
	result := newSyncResult("sync_process")
	result.Metadata["process_name"] = proc.Name
	if opts.ProcessID != "" {
		result.Metadata["process_id"] = opts.ProcessID
	}

	s.Logger.Info("syncing process", "process", proc.Name)

	// Documents come first: the task descriptions and checklists are
	// drawn from them.
	var set *docs.Set
	if !opts.SkipDocs {
		var err error
		set, err = docs.GenerateSet(proc, docs.SetOptions{Author: opts.Author, POPCode: opts.POPCode})
		if err != nil {
			result.AddWarning("document generation failed: %v", err)
		} else {
			result.Metadata["pop_code"] = set.POP.Code
			s.Logger.Info("documents generated",
				"pop", set.POP.Code,
				"instructions", len(set.Instructions),
				"checklists", len(set.Checklists))
		}
	}

	if !opts.SkipBoard {
		if err := s.syncBoard(ctx, proc, set, opts, result); err != nil {
			result.AddError("create board: %v", err)
		}
	}

	if !opts.SkipTasks && s.Tasks != nil {
		if opts.SpaceID == "" {
			result.AddWarning("no space ID configured; skipping task creation")
		} else if err := s.syncTasks(ctx, proc, set, opts, result); err != nil {
			result.AddError("create task structure: %v", err)
		}
	}

	if result.MiroBoardID != "" && result.ClickUpListID != "" {
		s.crossReference(ctx, result)
	}

	s.Logger.Info("process synced",
		"success", result.Success,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))
	return result
}

func (s *Syncer) syncBoard(ctx context.Context, proc *process.Process, set *docs.Set, opts SyncOptions, result *SyncResult) error {
	d, layoutResult, err := layout.Layout(proc, s.Layout)
	if err != nil {
		return err
	}
	for _, edge := range layoutResult.Skipped {
		result.AddWarning("edge %s -> %s references an unknown node; left off the board", edge.From, edge.To)
	}

	boardName := processBoardPrefix + proc.Name
	if opts.ProcessID != "" {
		boardName = opts.ProcessID + " - " + proc.Name
	}

	board, err := s.Publisher.Miro.CreateBoard(ctx, boardName, proc.Description)
	if err != nil {
		return err
	}
	upload, err := s.Publisher.Draw(ctx, board.ID, &d)
	if err != nil {
		return err
	}

	result.MiroBoardID = board.ID
	result.MiroBoardURL = upload.BoardURL
	result.MiroItemIDs = nodeItems(&d, upload.ItemIDs)
	if upload.ConnectorsFailed > 0 {
		result.AddWarning("%d of %d connectors failed", upload.ConnectorsFailed,
			upload.ConnectorsFailed+upload.ConnectorsCreated)
	}

	// A frame in the left margin anchors the POP reference next to the
	// diagram.
	if set != nil && set.POP != nil {
		if _, err := s.Publisher.Miro.CreateFrame(ctx, board.ID, "POP: "+set.POP.Code,
			popFrameX, popFrameY, popFrameWidth, popFrameHeight); err != nil {
			return fmt.Errorf("pop frame: %w", err)
		}
	}
	return nil
}

func (s *Syncer) syncTasks(ctx context.Context, proc *process.Process, set *docs.Set, opts SyncOptions, result *SyncResult) error {
	activities := buildActivities(proc, set)

	structure, err := s.Tasks.CreateProcessStructure(ctx, opts.SpaceID, proc.Name, activities)
	if err != nil {
		return err
	}

	result.ClickUpSpaceID = opts.SpaceID
	result.ClickUpFolderID = structure.FolderID
	result.ClickUpListID = structure.ListID
	result.ClickUpTaskIDs = structure.TaskIDs

	s.Logger.Info("task structure created",
		"folder", structure.FolderID,
		"list", structure.ListID,
		"tasks", len(structure.Tasks))

	// Leave a board link on every task so executors can jump straight
	// to the diagram.
	if result.MiroBoardURL != "" {
		for _, task := range structure.Tasks {
			comment := "📊 [Process board on Miro](" + result.MiroBoardURL + ")"
			if err := s.Tasks.CreateComment(ctx, task.ID, comment); err != nil {
				s.Logger.Warn("board link comment failed", "task", task.ID, "err", err)
			}
		}
	}
	return nil
}

// buildActivities pairs each task node with its generated work
// instruction and checklist. GenerateSet emits instructions and
// checklists parallel to Tasks(), one per task node.
func buildActivities(proc *process.Process, set *docs.Set) []clickup.Activity {
	tasks := proc.Tasks()
	activities := make([]clickup.Activity, 0, len(tasks))

	for i, task := range tasks {
		activity := clickup.Activity{
			ElementID: task.ID,
			Name:      task.Name,
		}
		if set != nil {
			if i < len(set.Instructions) {
				if md, err := set.Instructions[i].Markdown(); err == nil {
					activity.Description = md
				}
			}
			if i < len(set.Checklists) {
				for _, item := range set.Checklists[i].Items {
					activity.ChecklistItems = append(activity.ChecklistItems, item.Description)
				}
			}
		}
		activities = append(activities, activity)
	}
	return activities
}

// crossReference embeds the task list on the board. Some workspaces
// reject external embeds, so a failed embed falls back to a link card;
// only a failure of both is recorded, and as a warning.
func (s *Syncer) crossReference(ctx context.Context, result *SyncResult) {
	listURL := s.Tasks.ListURL(result.ClickUpListID)

	if _, err := s.Publisher.Miro.CreateEmbed(ctx, result.MiroBoardID, listURL, embedX, embedY, 0); err == nil {
		return
	}

	_, err := s.Publisher.Miro.CreateCard(ctx, result.MiroBoardID, miro.Card{
		Title:       "ClickUp Tasks",
		Description: "ClickUp: " + listURL,
		Theme:       taskCardTheme,
		X:           embedX,
		Y:           embedY,
	})
	if err != nil {
		result.AddWarning("cross-reference failed: %v", err)
	}
}

// SyncValueChain publishes the value chain overview board, one detail
// board per macroprocess, and navigation cards linking the overview to
// the details. Macroprocess failures degrade the run to warnings so
// one broken SIPOC does not lose the rest of the chain.
func (s *Syncer) SyncValueChain(ctx context.Context, vc *hierarchy.ValueChain, macros map[string]hierarchy.Macroprocess, opts SyncOptions) *SyncResult {
	result := newSyncResult("sync_value_chain")
	if vc == nil {
		result.AddError("no value chain to sync")
		return result
	}
	result.Metadata["value_chain"] = vc.Name

	s.Logger.Info("syncing value chain", "name", vc.Name, "macroprocesses", len(macros))

	d := layout.LayoutValueChain(vc, macros)

	board, err := s.Publisher.Miro.CreateBoard(ctx, valueChainBoardPrefix+vc.Name, vc.Description)
	if err != nil {
		result.AddError("create board: %v", err)
		return result
	}
	upload, err := s.Publisher.Draw(ctx, board.ID, &d)
	if err != nil {
		result.AddError("draw value chain: %v", err)
		return result
	}

	result.MiroBoardID = board.ID
	result.MiroBoardURL = upload.BoardURL
	result.MiroItemIDs = macroItems(vc, upload.ItemIDs)

	macroBoards := make(map[string]string)
	for _, id := range vc.Macroprocesses() {
		macro, ok := macros[id]
		if !ok {
			result.AddWarning("macroprocess %s not provided", id)
			continue
		}

		macroResult := s.SyncMacroprocess(ctx, &macro, opts)
		if !macroResult.Success {
			result.AddWarning("macroprocess %s: %s", id, strings.Join(macroResult.Errors, "; "))
			continue
		}
		macroBoards[id] = macroResult.MiroBoardURL

		// Navigation card under the macro's box on the overview board.
		if el := findElement(&d, id); el != nil {
			if _, err := s.Publisher.Miro.CreateLinkCard(ctx, board.ID, macro.Name,
				macroResult.MiroBoardURL, el.CenterX(), el.Y+el.Height+macroLinkGap); err != nil {
				result.AddWarning("link card for %s: %v", id, err)
			}
		}
	}
	result.Metadata["macro_boards"] = macroBoards

	return result
}

// SyncMacroprocess publishes one macroprocess: a board carrying its
// SIPOC matrix, and a ClickUp folder when a space is configured.
func (s *Syncer) SyncMacroprocess(ctx context.Context, m *hierarchy.Macroprocess, opts SyncOptions) *SyncResult {
	result := newSyncResult("sync_macroprocess")
	result.Metadata["macroprocess_id"] = m.ID
	result.Metadata["macroprocess_name"] = m.Name

	s.Logger.Info("syncing macroprocess", "id", m.ID, "name", m.Name)

	board, err := s.Publisher.Miro.CreateBoard(ctx, macroBoardPrefix+m.Name, m.Objective)
	if err != nil {
		result.AddError("create board: %v", err)
		return result
	}
	result.MiroBoardID = board.ID
	result.MiroBoardURL = s.Publisher.Miro.BoardURL(board.ID)

	if m.SIPOC != nil {
		d := layout.LayoutSIPOC(m.SIPOC, m.Name)
		if _, err := s.Publisher.Draw(ctx, board.ID, &d); err != nil {
			result.AddError("draw SIPOC: %v", err)
			return result
		}
	}

	if s.Tasks != nil && opts.SpaceID != "" {
		folder, err := s.Tasks.CreateFolder(ctx, opts.SpaceID, m.Name)
		if err != nil {
			result.AddError("create folder: %v", err)
			return result
		}
		result.ClickUpSpaceID = opts.SpaceID
		result.ClickUpFolderID = folder.ID
	}

	return result
}

// UpdateTasksFromBoard pulls shape edits off the board and renames the
// matching ClickUp tasks. prior must be the result of the original
// SyncProcess run; its item and task maps pair each node's shape with
// its task.
func (s *Syncer) UpdateTasksFromBoard(ctx context.Context, prior *SyncResult) *SyncResult {
	result := newSyncResult("update_tasks_from_board")
	result.MiroBoardID = prior.MiroBoardID
	result.ClickUpListID = prior.ClickUpListID

	if s.Tasks == nil {
		result.AddError("no task client configured")
		return result
	}

	items, err := s.Publisher.Miro.ListItems(ctx, prior.MiroBoardID, "shape", 100)
	if err != nil {
		result.AddError("list board items: %v", err)
		return result
	}

	// Invert node -> item so board items resolve back to their nodes.
	nodeFor := make(map[string]string, len(prior.MiroItemIDs))
	for nodeID, itemID := range prior.MiroItemIDs {
		nodeFor[itemID] = nodeID
	}

	updated := 0
	for _, item := range items {
		nodeID, ok := nodeFor[item.ID]
		if !ok {
			continue
		}
		taskID, ok := prior.ClickUpTaskIDs[nodeID]
		if !ok || item.Data.Content == "" {
			continue
		}
		if _, err := s.Tasks.UpdateTask(ctx, taskID, clickup.TaskRequest{Name: item.Data.Content}); err != nil {
			result.AddWarning("update task %s: %v", taskID, err)
			continue
		}
		updated++
	}

	result.Metadata["updated"] = updated
	s.Logger.Info("tasks updated from board", "updated", updated, "items", len(items))
	return result
}

// AddMiroLinks comments a deep link to each task's board shape, so a
// task opens the diagram scrolled to its own step.
func (s *Syncer) AddMiroLinks(ctx context.Context, prior *SyncResult) *SyncResult {
	result := newSyncResult("add_miro_links")
	result.MiroBoardID = prior.MiroBoardID

	if s.Tasks == nil {
		result.AddError("no task client configured")
		return result
	}
	if prior.MiroBoardID == "" {
		result.AddError("no board to link")
		return result
	}

	linked := 0
	for nodeID, taskID := range prior.ClickUpTaskIDs {
		itemID, ok := prior.MiroItemIDs[nodeID]
		if !ok {
			continue
		}
		comment := "📊 [View on Miro](" + s.Publisher.Miro.ItemURL(prior.MiroBoardID, itemID) + ")"
		if err := s.Tasks.CreateComment(ctx, taskID, comment); err != nil {
			result.AddWarning("link for %s: %v", nodeID, err)
			continue
		}
		linked++
	}

	result.Metadata["linked"] = linked
	return result
}

// nodeItems reduces the element -> item map to node -> item, dropping
// lane chrome and label widgets.
func nodeItems(d *diagram.Diagram, items map[string]string) map[string]string {
	nodes := make(map[string]string)
	for _, el := range d.Elements {
		if el.NodeID == "" {
			continue
		}
		if id, ok := items[el.ID]; ok {
			nodes[el.NodeID] = id
		}
	}
	return nodes
}

// macroItems keeps only the macroprocess boxes out of a value chain
// upload. Macro elements carry the macroprocess ID as their element ID.
func macroItems(vc *hierarchy.ValueChain, items map[string]string) map[string]string {
	out := make(map[string]string)
	for _, id := range vc.Macroprocesses() {
		if itemID, ok := items[id]; ok {
			out[id] = itemID
		}
	}
	return out
}

// findElement returns the element with the given ID, or nil.
func findElement(d *diagram.Diagram, id string) *diagram.Element {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return &d.Elements[i]
		}
	}
	return nil
}
