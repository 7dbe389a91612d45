// Package pipeline provides the core document-to-diagram pipeline for laneflow.
//
// This package implements the complete extract → layout → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: Turn a process description into a process graph
//  2. Layout: Position the graph as a swimlane diagram
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    File:    "interview.md",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Extract only
//	res, err := runner.Extract(ctx, extractOpts)
//
//	// Layout with an existing process
//	d, err := runner.ComputeLayout(ctx, p, layoutOpts)
//
//	// Render with an existing diagram
//	artifacts, err := runner.Render(ctx, d, p, renderOpts)
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/layout"
	"github.com/laneflow/laneflow/pkg/process"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultModel is the chat-completion model used for extraction.
	// This matches the pkg/config default so CLI and API agree when
	// neither sets a model explicitly.
	DefaultModel = "gpt-4o"

	// DefaultMaxTokens caps the completion length for extraction.
	DefaultMaxTokens = 8000

	// DefaultAttempts is how often a failed extraction is retried.
	// This matches extract.DefaultAttempts (3) to maintain consistency.
	DefaultAttempts = 3

	// DefaultSpacingX is the horizontal gap between rank columns.
	// Matches layout.DefaultConfig.
	DefaultSpacingX = 150.0

	// DefaultSpacingY is the vertical gap between flow rows.
	// Matches layout.DefaultConfig.
	DefaultSpacingY = 100.0

	// DefaultLaneHeight is the height of every swimlane band.
	// Matches layout.DefaultConfig.
	DefaultLaneHeight = 200.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Mode constants for extraction modes.
const (
	// ModeLLM sends a markdown transcript through the chat-completion
	// extractor.
	ModeLLM = "llm"

	// ModeFile reads a structured process document (JSON or YAML)
	// without involving a model.
	ModeFile = "file"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Extract options
	Markdown    string  `json:"markdown,omitempty"` // inline transcript content
	File        string  `json:"file,omitempty"`     // transcript (.md) or process document (.json/.yaml)
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Attempts    int     `json:"attempts,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Layout options
	SpacingX   float64 `json:"spacing_x,omitempty"`
	SpacingY   float64 `json:"spacing_y,omitempty"`
	LaneHeight float64 `json:"lane_height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Background  string   `json:"background,omitempty"`
	Interactive bool     `json:"interactive,omitempty"` // embed the hover script in SVG output
	Horizontal  bool     `json:"horizontal,omitempty"`  // left-to-right DOT output

	// Runtime options (not serialized)
	Logger    *log.Logger `json:"-"`
	APIKey    string      `json:"-"`
	Extractor Extractor   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Process is the extracted process graph.
	Process *process.Process

	// ProcessHash is the content hash of the process.
	ProcessHash string

	// Diagram is the positioned swimlane diagram.
	Diagram diagram.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings collects non-fatal findings from extraction and
	// validation. The pipeline completes despite them.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExtractHit bool // Whether the extraction result came from cache
	LayoutHit  bool // Whether the layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForExtract(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForExtract checks required fields for extraction.
func (o *Options) ValidateForExtract() error {
	if o.Markdown == "" && o.File == "" {
		return fmt.Errorf("markdown or file is required")
	}

	// Extract defaults
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Attempts == 0 {
		o.Attempts = DefaultAttempts
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation. Defaults
// are materialized onto the options before cache keys are built, so an
// implied default and an explicit one share a cache entry.
func (o *Options) SetLayoutDefaults() {
	if o.SpacingX == 0 {
		o.SpacingX = DefaultSpacingX
	}
	if o.SpacingY == 0 {
		o.SpacingY = DefaultSpacingY
	}
	if o.LaneHeight == 0 {
		o.LaneHeight = DefaultLaneHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.SpacingX < 0 || o.SpacingY < 0 || o.LaneHeight < 0 {
		return fmt.Errorf("layout spacing must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Mode reports how the process will be extracted: ModeFile for
// structured process documents, ModeLLM for anything else. The mode is
// derived from the source, not configured.
func (o *Options) Mode() string {
	if o.File != "" && o.Markdown == "" {
		switch strings.ToLower(filepath.Ext(o.File)) {
		case ".json", ".yaml", ".yml":
			return ModeFile
		}
	}
	return ModeLLM
}

// LayoutConfig translates the layout options into an engine config.
// Knobs the pipeline does not expose keep their engine defaults.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		SpacingX:   o.SpacingX,
		SpacingY:   o.SpacingY,
		LaneHeight: o.LaneHeight,
	}
}

// ExtractKeyOpts returns cache key options for extraction.
func (o *Options) ExtractKeyOpts() cache.ExtractKeyOpts {
	k := cache.ExtractKeyOpts{Mode: o.Mode()}
	if k.Mode == ModeLLM {
		k.Model = o.Model
	}
	return k
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		DiagramType: diagram.TypeProcess,
		LaneHeight:  int(o.LaneHeight),
		SpacingX:    int(o.SpacingX),
		SpacingY:    int(o.SpacingY),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Background:  o.Background,
		Interactive: o.Interactive,
		Horizontal:  o.Horizontal,
	}
}
