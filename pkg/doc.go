// Package pkg provides the core libraries for laneflow swimlane diagramming.
//
// # Overview
//
// Laneflow turns written process descriptions into positioned swimlane
// diagrams and the operational documents that go with them. The pkg
// directory is organized into four main areas:
//
//  1. Domain models ([process], [diagram], [hierarchy]) - the process
//     graph going in, the positioned visual document coming out, and
//     the value-chain layer above both
//  2. Engines ([extract], [layout], [docs], [render]) - the stages that
//     transform one into the other
//  3. Infrastructure ([cache], [store], [config], [errors], [httputil],
//     [observability]) - the plumbing every entry point shares
//  4. Platforms ([integrations], [publish]) - Miro and ClickUp clients
//     and the orchestration that drives them
//
// # Architecture
//
// The typical data flow through laneflow:
//
//	Markdown transcript / structured JSON
//	         ↓
//	    [extract] package (LLM or file → process graph)
//	         ↓
//	    [process] package (model + validation)
//	         ↓
//	    [layout] package (cycle breaking → ranks → lanes → coordinates)
//	         ↓
//	    [diagram] package (positioned visual document)
//	         ↓
//	    [render] / [publish] / [docs] (SVG/PNG files, Miro boards,
//	    ClickUp tasks, markdown procedures)
//
// # Quick Start
//
// Lay out a process and render it locally:
//
//	import (
//	    "github.com/laneflow/laneflow/pkg/layout"
//	    "github.com/laneflow/laneflow/pkg/process"
//	    "github.com/laneflow/laneflow/pkg/render"
//	)
//
//	// 1. Load the process graph
//	p, _ := process.ImportJSON("order.json")
//
//	// 2. Position it as a swimlane diagram
//	d, _, _ := layout.Layout(p, layout.DefaultConfig())
//
//	// 3. Render to SVG
//	svg, _ := render.RenderSVG(&d)
//
// # Main Packages
//
// ## Domain Models
//
// [process] - The source-of-truth process graph: ordered nodes (tasks,
// gateways, events, annotations with closed subtype variants), edges
// with condition labels, declared actors, and a validator that reports
// structural errors and warnings without blocking layout.
//
// [diagram] - The positioned visual document: styled elements,
// connectors, actor lanes, and canvas dimensions, discriminated by
// diagram type (process, SIPOC, value chain). style.go is the
// exhaustive appearance catalog for every node kind and subtype.
//
// [hierarchy] - Value chains and macroprocesses, the strategic layer
// that groups individual processes.
//
// ## Engines
//
// [extract] - Process graph extraction: an LLM extractor over chat
// completions for free-form transcripts and a file extractor for
// externally authored JSON/YAML graphs.
//
// [layout] - The layout engine. A pure five-stage pipeline: convert,
// break cycles through link throw/catch pairs, breadth-first rank
// leveling, actor lanes, column-walk positioning with grow-only canvas
// sizing. Also hosts the SIPOC grid and value-chain layouts.
//
// [docs] - Markdown document generators: standard operating procedures,
// per-task work instructions, verification checklists, and SIPOC tables.
//
// [render] - Local artifact rendering: hand-built swimlane SVG, DOT
// views rasterized through Graphviz, and PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - The extract → layout → render orchestrator used by the
// CLI and the HTTP server, with per-stage caching and timing logs.
//
// [cache] - Cache interface with file, Redis, and null backends plus
// stable per-stage key derivation.
//
// [store] - Process and diagram persistence: in-memory for tests and
// development, MongoDB for the server.
//
// [config] - TOML settings file with environment overrides for secrets.
//
// [errors] - Machine-readable error codes shared across packages.
//
// ## Platforms
//
// [integrations] - HTTP clients for collaboration platforms: a shared
// base client with caching, retry, and status mapping, plus Miro and
// ClickUp subpackages.
//
// [publish] - Pushes positioned diagrams onto Miro boards and mirrors
// processes into ClickUp folders, lists, tasks, and checklists, with
// cross-links between the two.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [process]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/process
// [diagram]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/diagram
// [hierarchy]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/hierarchy
// [extract]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/extract
// [layout]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/layout
// [docs]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/docs
// [render]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/cache
// [store]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/store
// [config]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/config
// [errors]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/observability
// [integrations]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/integrations
// [publish]: https://pkg.go.dev/github.com/laneflow/laneflow/pkg/publish
package pkg
