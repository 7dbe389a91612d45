package clickup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/integrations"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// defaultChecklistName labels verification checklists on activity tasks.
const defaultChecklistName = "Verification"

// activitiesListName is the list every process folder gets for its tasks.
const activitiesListName = "Activities"

// Team is a ClickUp workspace.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Space is a ClickUp space within a team.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder groups lists within a space.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List holds tasks within a folder or directly within a space.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a ClickUp task.
type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent"`
	URL    string `json:"url"`
}

// Checklist is a checklist attached to a task.
type Checklist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a comment on a task.
type Comment struct {
	ID   string `json:"id"`
	Text string `json:"comment_text"`
}

// TaskRequest describes a task to create or the fields to update.
// Description is sent as both plain and markdown description, so markdown
// written by the document generators renders in the ClickUp UI.
type TaskRequest struct {
	Name        string
	Description string
	Assignees   []int
	Tags        []string
	Status      string
	Priority    int // 1=urgent, 2=high, 3=normal, 4=low
	DueDate     int64
	StartDate   int64
	Parent      string // parent task ID; set to create a subtask
}

// Activity is one process activity to mirror as a ClickUp task.
type Activity struct {
	ElementID      string // diagram element the task mirrors, keys ProcessStructure.TaskIDs
	Name           string
	Description    string // markdown body, typically the activity's work instruction
	ChecklistName  string // empty means "Verification"
	ChecklistItems []string
}

// ProcessStructure holds the IDs created by [Client.CreateProcessStructure].
type ProcessStructure struct {
	FolderID string
	ListID   string
	Tasks    []Task
	TaskIDs  map[string]string // element ID -> task ID for activities that carry one
}

// Client provides access to the ClickUp API v2.
// It handles HTTP requests with caching and automatic retries on reads.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	teamID  string
}

// NewClient creates a ClickUp client authenticated with the given API token.
//
// Parameters:
//   - backend: cache backend for team and space lookups (nil disables caching)
//   - token: ClickUp personal API token, sent raw (ClickUp does not use Bearer)
//   - teamID: default team for space operations, may be empty
//   - cacheTTL: how long lookups are cached
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, token, teamID string, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"Authorization": token,
	}
	return &Client{
		Client:  integrations.NewClient(backend, "clickup", cacheTTL, headers),
		baseURL: defaultBaseURL,
		teamID:  teamID,
	}
}

// Teams lists the workspaces the token can access.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
func (c *Client) Teams(ctx context.Context, refresh bool) ([]Team, error) {
	var resp teamsResponse
	err := c.Cached(ctx, "teams", refresh, &resp, func() error {
		return c.Get(ctx, c.baseURL+"/team", &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// Spaces lists the spaces in a team. An empty teamID falls back to the
// client's default team.
func (c *Client) Spaces(ctx context.Context, teamID string, refresh bool) ([]Space, error) {
	if teamID == "" {
		teamID = c.teamID
	}

	var resp spacesResponse
	err := c.Cached(ctx, "spaces:"+teamID, refresh, &resp, func() error {
		return c.Get(ctx, c.baseURL+"/team/"+teamID+"/space", &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Spaces, nil
}

// CreateSpace creates a space with checklists, tags, and dependency
// warnings enabled. An empty teamID falls back to the client's default team.
func (c *Client) CreateSpace(ctx context.Context, teamID, name string) (*Space, error) {
	if teamID == "" {
		teamID = c.teamID
	}
	payload := spacePayload{
		Name:              name,
		MultipleAssignees: true,
		Features: spaceFeatures{
			DueDates:          dueDatesFeature{Enabled: true, StartDate: true, RemapDueDates: true},
			TimeTracking:      enabledFeature{Enabled: true},
			Tags:              enabledFeature{Enabled: true},
			Checklists:        enabledFeature{Enabled: true},
			CustomFields:      enabledFeature{Enabled: true},
			DependencyWarning: enabledFeature{Enabled: true},
		},
	}

	var space Space
	if err := c.Post(ctx, c.baseURL+"/team/"+teamID+"/space", payload, &space); err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}
	return &space, nil
}

// Folders lists the folders in a space.
func (c *Client) Folders(ctx context.Context, spaceID string, refresh bool) ([]Folder, error) {
	var resp foldersResponse
	err := c.Cached(ctx, "folders:"+spaceID, refresh, &resp, func() error {
		return c.Get(ctx, c.baseURL+"/space/"+spaceID+"/folder", &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// CreateFolder creates a folder in a space.
func (c *Client) CreateFolder(ctx context.Context, spaceID, name string) (*Folder, error) {
	var folder Folder
	if err := c.Post(ctx, c.baseURL+"/space/"+spaceID+"/folder", namePayload{Name: name}, &folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return &folder, nil
}

// Lists returns the lists in a folder. Never cached; lists are created
// and renamed while a sync runs.
func (c *Client) Lists(ctx context.Context, folderID string) ([]List, error) {
	var resp listsResponse
	if err := c.Get(ctx, c.baseURL+"/folder/"+folderID+"/list", &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// CreateList creates a list inside a folder.
func (c *Client) CreateList(ctx context.Context, folderID, name, description string) (*List, error) {
	var list List
	payload := listPayload{Name: name, Content: description}
	if err := c.Post(ctx, c.baseURL+"/folder/"+folderID+"/list", payload, &list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return &list, nil
}

// CreateFolderlessList creates a list directly in a space.
func (c *Client) CreateFolderlessList(ctx context.Context, spaceID, name, description string) (*List, error) {
	var list List
	payload := listPayload{Name: name, Content: description}
	if err := c.Post(ctx, c.baseURL+"/space/"+spaceID+"/list", payload, &list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return &list, nil
}

// Tasks lists the tasks in a list. Never cached; task state is what a
// sync reconciles.
func (c *Client) Tasks(ctx context.Context, listID string, includeClosed bool) ([]Task, error) {
	url := c.baseURL + "/list/" + listID + "/task"
	if includeClosed {
		url += "?include_closed=true"
	}

	var resp tasksResponse
	if err := c.Get(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// GetTask retrieves a single task.
//
// Returns [integrations.ErrNotFound] if the task doesn't exist.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.Get(ctx, c.baseURL+"/task/"+taskID, &task); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %s", err, taskID)
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task in a list. Set req.Parent to create a subtask.
func (c *Client) CreateTask(ctx context.Context, listID string, req TaskRequest) (*Task, error) {
	var task Task
	if err := c.Post(ctx, c.baseURL+"/list/"+listID+"/task", taskPayload(req), &task); err != nil {
		return nil, fmt.Errorf("create task %q: %w", req.Name, err)
	}
	return &task, nil
}

// UpdateTask changes the non-zero fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req TaskRequest) (*Task, error) {
	// Updates carry only the fields the caller set. Sending the full
	// payload would blank description on a rename.
	payload := map[string]any{}
	if req.Name != "" {
		payload["name"] = req.Name
	}
	if req.Description != "" {
		payload["description"] = req.Description
		payload["markdown_description"] = req.Description
	}
	if req.Status != "" {
		payload["status"] = req.Status
	}
	if req.Priority != 0 {
		payload["priority"] = req.Priority
	}
	if req.DueDate != 0 {
		payload["due_date"] = req.DueDate
	}

	var task Task
	if err := c.Put(ctx, c.baseURL+"/task/"+taskID, payload, &task); err != nil {
		return nil, fmt.Errorf("update task %s: %w", taskID, err)
	}
	return &task, nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.Delete(ctx, c.baseURL+"/task/"+taskID)
}

// CreateChecklist creates an empty checklist on a task.
func (c *Client) CreateChecklist(ctx context.Context, taskID, name string) (*Checklist, error) {
	var resp checklistResponse
	if err := c.Post(ctx, c.baseURL+"/task/"+taskID+"/checklist", namePayload{Name: name}, &resp); err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	return &resp.Checklist, nil
}

// CreateChecklistItem appends an item to a checklist. An assignee of 0
// leaves the item unassigned.
func (c *Client) CreateChecklistItem(ctx context.Context, checklistID, name string, assignee int) error {
	payload := checklistItemPayload{Name: name}
	if assignee > 0 {
		payload.Assignee = assignee
	}
	if err := c.Post(ctx, c.baseURL+"/checklist/"+checklistID+"/checklist_item", payload, nil); err != nil {
		return fmt.Errorf("create checklist item: %w", err)
	}
	return nil
}

// AddChecklist creates a checklist on a task and fills it with items.
func (c *Client) AddChecklist(ctx context.Context, taskID, name string, items []string) (*Checklist, error) {
	checklist, err := c.CreateChecklist(ctx, taskID, name)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := c.CreateChecklistItem(ctx, checklist.ID, item, 0); err != nil {
			return nil, err
		}
	}
	return checklist, nil
}

// CreateComment adds a comment to a task without notifying watchers.
func (c *Client) CreateComment(ctx context.Context, taskID, text string) error {
	payload := commentPayload{CommentText: text, NotifyAll: false}
	if err := c.Post(ctx, c.baseURL+"/task/"+taskID+"/comment", payload, nil); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Comments lists the comments on a task.
func (c *Client) Comments(ctx context.Context, taskID string) ([]Comment, error) {
	var resp commentsResponse
	if err := c.Get(ctx, c.baseURL+"/task/"+taskID+"/comment", &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// AddDependency makes taskID wait on dependsOn.
func (c *Client) AddDependency(ctx context.Context, taskID, dependsOn string) error {
	payload := dependencyPayload{DependsOn: dependsOn}
	if err := c.Post(ctx, c.baseURL+"/task/"+taskID+"/dependency", payload, nil); err != nil {
		return fmt.Errorf("add dependency: %w", err)
	}
	return nil
}

// CreateProcessStructure builds the ClickUp mirror of one process:
// a folder named after the process, an "Activities" list inside it, and
// one task per activity with its verification checklist.
func (c *Client) CreateProcessStructure(ctx context.Context, spaceID, processName string, activities []Activity) (*ProcessStructure, error) {
	folder, err := c.CreateFolder(ctx, spaceID, processName)
	if err != nil {
		return nil, err
	}
	list, err := c.CreateList(ctx, folder.ID, activitiesListName, "")
	if err != nil {
		return nil, err
	}

	structure := &ProcessStructure{
		FolderID: folder.ID,
		ListID:   list.ID,
		TaskIDs:  make(map[string]string),
	}
	for _, activity := range activities {
		task, err := c.CreateTask(ctx, list.ID, TaskRequest{
			Name:        activity.Name,
			Description: activity.Description,
		})
		if err != nil {
			return nil, err
		}
		if len(activity.ChecklistItems) > 0 {
			name := activity.ChecklistName
			if name == "" {
				name = defaultChecklistName
			}
			if _, err := c.AddChecklist(ctx, task.ID, name, activity.ChecklistItems); err != nil {
				return nil, err
			}
		}
		structure.Tasks = append(structure.Tasks, *task)
		if activity.ElementID != "" {
			structure.TaskIDs[activity.ElementID] = task.ID
		}
	}
	return structure, nil
}

// TaskURL returns the browser URL for a task.
func (c *Client) TaskURL(taskID string) string {
	return "https://app.clickup.com/t/" + taskID
}

// ListURL returns the browser URL for a list.
func (c *Client) ListURL(listID string) string {
	return "https://app.clickup.com/list/" + listID
}

func taskPayload(req TaskRequest) taskRequestPayload {
	return taskRequestPayload{
		Name:                req.Name,
		Description:         req.Description,
		MarkdownDescription: req.Description,
		Assignees:           req.Assignees,
		Tags:                req.Tags,
		Status:              req.Status,
		Priority:            req.Priority,
		DueDate:             req.DueDate,
		StartDate:           req.StartDate,
		Parent:              req.Parent,
	}
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type checklistResponse struct {
	Checklist Checklist `json:"checklist"`
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

type namePayload struct {
	Name string `json:"name"`
}

type listPayload struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

type spacePayload struct {
	Name              string        `json:"name"`
	MultipleAssignees bool          `json:"multiple_assignees"`
	Features          spaceFeatures `json:"features"`
}

type spaceFeatures struct {
	DueDates          dueDatesFeature `json:"due_dates"`
	TimeTracking      enabledFeature  `json:"time_tracking"`
	Tags              enabledFeature  `json:"tags"`
	Checklists        enabledFeature  `json:"checklists"`
	CustomFields      enabledFeature  `json:"custom_fields"`
	DependencyWarning enabledFeature  `json:"dependency_warning"`
}

type dueDatesFeature struct {
	Enabled       bool `json:"enabled"`
	StartDate     bool `json:"start_date"`
	RemapDueDates bool `json:"remap_due_dates"`
}

type enabledFeature struct {
	Enabled bool `json:"enabled"`
}

type taskRequestPayload struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MarkdownDescription string   `json:"markdown_description"`
	Assignees           []int    `json:"assignees,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	Status              string   `json:"status,omitempty"`
	Priority            int      `json:"priority,omitempty"`
	DueDate             int64    `json:"due_date,omitempty"`
	StartDate           int64    `json:"start_date,omitempty"`
	Parent              string   `json:"parent,omitempty"`
}

type checklistItemPayload struct {
	Name     string `json:"name"`
	Assignee int    `json:"assignee,omitempty"`
}

type commentPayload struct {
	CommentText string `json:"comment_text"`
	NotifyAll   bool   `json:"notify_all"`
}

type dependencyPayload struct {
	DependsOn string `json:"depends_on"`
}
