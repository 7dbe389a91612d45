// Package publish uploads positioned diagrams to Miro boards and keeps
// them synchronized with ClickUp task structures.
//
// # Publishing
//
// A [Publisher] redraws a [diagram.Diagram] on a board: lane
// backgrounds first, then elements, then connectors, translating the
// diagram's top-left coordinates into Miro's center-based positions.
// Lane and element failures abort the upload; connector failures are
// counted and logged, since a board missing one arrow is still useful.
//
//	pub := publish.NewPublisher(miroClient, logger)
//	upload, err := pub.Upload(ctx, &diag, "PR-012 - Order Handling")
//
// # Synchronization
//
// A [Syncer] drives the full round trip for a process: generate the
// operational documents, publish the board, create the ClickUp
// folder/list/task structure from the generated work instructions, and
// cross-link the two platforms. Sync operations return a [SyncResult]
// that accumulates errors and warnings rather than stopping at the
// first failure, so a missing workspace degrades the run instead of
// aborting it.
package publish
