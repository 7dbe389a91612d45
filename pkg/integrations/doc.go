// Package integrations provides HTTP clients for collaboration
// platform APIs.
//
// # Overview
//
// This package contains low-level API clients for publishing diagrams
// and task structures to external platforms. Each platform has its own
// subpackage:
//
//   - [miro]: Miro REST API v2 (boards, shapes, connectors, frames)
//   - [clickup]: ClickUp API v2 (spaces, folders, lists, tasks)
//
// # Client Pattern
//
// All platform clients follow a consistent pattern:
//
//	client := miro.NewClient(backend, token, time.Hour)
//	board, err := client.CreateBoard(ctx, "PROC - Purchasing", "")
//
// Clients handle:
//   - Bearer or token authentication via default headers
//   - Response caching for reads (backed by [cache.Cache])
//   - Retry with backoff for cached fetches
//   - Status mapping to shared sentinel errors
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing used by all platform
// clients. Reads that tolerate staleness go through [Client.Cached];
// writes go through [Client.Post], [Client.Put], [Client.Patch], and
// [Client.Delete] and are never cached or retried.
//
// # Errors
//
// Clients return [ErrNotFound], [ErrUnauthorized], [ErrRateLimited],
// and [ErrNetwork], all wrapped with request context, so callers can
// branch with errors.Is regardless of platform.
//
// # Adding a New Platform
//
// To add support for a new platform:
//
//  1. Create a subpackage: pkg/integrations/<platform>/
//  2. Define request and response structs matching the API schema
//  3. Embed [Client], constructed via [NewClient] with the platform's
//     auth headers and cache namespace
//  4. Wire into the publish package
//
// [miro]: github.com/laneflow/laneflow/pkg/integrations/miro
// [clickup]: github.com/laneflow/laneflow/pkg/integrations/clickup
// [cache.Cache]: github.com/laneflow/laneflow/pkg/cache.Cache
package integrations
