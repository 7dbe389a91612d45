// Package clickup provides an HTTP client for the ClickUp API v2.
//
// # Overview
//
// This package manages the task side of a published process on ClickUp
// (https://clickup.com): spaces, folders, lists, tasks, checklists,
// comments, and dependencies.
//
// # Usage
//
//	client := clickup.NewClient(backend, token, teamID, time.Hour)
//
//	structure, err := client.CreateProcessStructure(ctx, spaceID, "Purchasing", []clickup.Activity{
//	    {
//	        ElementID:      "act-1",
//	        Name:           "1.1 Approve request (Buyer)",
//	        Description:    instructionMarkdown,
//	        ChecklistItems: []string{"Budget confirmed", "Supplier registered"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(client.ListURL(structure.ListID))
//
// # Process Structure
//
// [Client.CreateProcessStructure] mirrors one process as a folder holding
// an "Activities" list, one task per activity, and a verification
// checklist on each task that has checklist items. The returned
// [ProcessStructure] maps diagram element IDs to task IDs so the sync
// layer can cross-link boards and tasks.
//
// # Authentication
//
// ClickUp personal tokens are sent raw in the Authorization header; the
// API does not use the Bearer scheme.
//
// # Caching
//
// Team, space, and folder lookups are cached; they change rarely and are
// read on every sync. Task and list reads always hit the API because they
// are exactly what a sync reconciles.
//
// # Errors
//
// Methods return the shared [integrations] sentinels: ErrNotFound for
// missing resources, ErrUnauthorized for bad tokens, ErrRateLimited and
// ErrNetwork for transient failures.
package clickup
