// Package icons resolves SVG icon assets for process nodes.
//
// Icons live on disk as individual SVG files, indexed by a YAML library
// describing which file belongs to which node kind:
//
//	tasks:
//	  user_task: tasks/user-task.svg
//	  service_task: tasks/service-task.svg
//	events:
//	  start_event: events/start.svg
//	  timer_event: events/timer.svg
//	gateways:
//	  exclusive_gateway: gateways/exclusive.svg
//	config:
//	  base_path: data/icons
//	  mode: hybrid
//
// Three modes control what renderers draw: "svg" uses only files from the
// library, "emoji" ignores the library entirely and keeps the emoji glyphs
// assigned during layout, and "hybrid" (the default) prefers SVG files but
// falls back to emoji for kinds the library does not cover.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/laneflow/laneflow/pkg/process"
)

// Mode selects how renderers combine SVG assets and emoji glyphs.
type Mode string

// Rendering modes.
const (
	ModeSVG    Mode = "svg"
	ModeEmoji  Mode = "emoji"
	ModeHybrid Mode = "hybrid"
)

// Category groups node kinds for size and position defaults.
type Category string

// Icon categories.
const (
	CategoryTask    Category = "task"
	CategoryEvent   Category = "event"
	CategoryGateway Category = "gateway"
)

// Default icon sizes in pixels per category.
var defaultSizes = map[Category]int{
	CategoryTask:    20,
	CategoryEvent:   16,
	CategoryGateway: 18,
}

// Default icon anchor per category. Tasks show the icon left of the text,
// events inside the circle, gateways centered on the diamond.
var defaultPositions = map[Category]string{
	CategoryTask:    "left",
	CategoryEvent:   "inside",
	CategoryGateway: "center",
}

// libraryConfig is the config: section of the YAML document.
type libraryConfig struct {
	BasePath  string              `yaml:"base_path"`
	Mode      Mode                `yaml:"mode"`
	IconSizes map[Category]int    `yaml:"icon_sizes"`
	Positions map[Category]string `yaml:"icon_position"`
}

// libraryDoc is the full YAML document.
type libraryDoc struct {
	Tasks    map[string]string `yaml:"tasks"`
	Events   map[string]string `yaml:"events"`
	Gateways map[string]string `yaml:"gateways"`
	Config   libraryConfig     `yaml:"config"`
}

// Icon is a resolved icon for one node.
type Icon struct {
	Path     string // absolute path of the SVG file
	SVG      string // file contents
	Size     int
	Position string
}

// Resolver answers icon lookups for process nodes. It caches SVG file
// contents after the first read. A nil Resolver is valid and never
// resolves anything, which leaves emoji glyphs in place.
type Resolver struct {
	doc      libraryDoc
	basePath string
	mode     Mode

	mu    sync.Mutex
	cache map[string]string
}

// Load reads the YAML library at path. A missing file yields an empty
// resolver (every lookup misses, emoji fallback applies); a malformed
// file is an error.
func Load(path string) (*Resolver, error) {
	r := &Resolver{
		mode:  ModeHybrid,
		cache: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read icon library: %w", err)
	}

	if err := yaml.Unmarshal(data, &r.doc); err != nil {
		return nil, fmt.Errorf("parse icon library: %w", err)
	}

	r.basePath = r.doc.Config.BasePath
	if r.basePath == "" {
		r.basePath = filepath.Dir(path)
	}
	if r.doc.Config.Mode != "" {
		switch r.doc.Config.Mode {
		case ModeSVG, ModeEmoji, ModeHybrid:
			r.mode = r.doc.Config.Mode
		default:
			return nil, fmt.Errorf("unknown icon mode %q", r.doc.Config.Mode)
		}
	}
	return r, nil
}

// SetMode overrides the library's rendering mode.
func (r *Resolver) SetMode(m Mode) {
	if r != nil {
		r.mode = m
	}
}

// Mode reports the active rendering mode. A nil resolver is emoji-only.
func (r *Resolver) Mode() Mode {
	if r == nil {
		return ModeEmoji
	}
	return r.mode
}

// Size returns the icon size in pixels for a category.
func (r *Resolver) Size(c Category) int {
	if r != nil {
		if s, ok := r.doc.Config.IconSizes[c]; ok && s > 0 {
			return s
		}
	}
	return defaultSizes[c]
}

// Position returns the icon anchor for a category.
func (r *Resolver) Position(c Category) string {
	if r != nil {
		if p, ok := r.doc.Config.Positions[c]; ok && p != "" {
			return p
		}
	}
	return defaultPositions[c]
}

// Resolve returns the SVG icon for a node, reading and caching the file
// on first use. It misses when the mode is emoji, the library has no
// entry for the node's kind, or the file does not exist.
func (r *Resolver) Resolve(n *process.Node) (Icon, bool) {
	if r == nil || r.mode == ModeEmoji || n == nil {
		return Icon{}, false
	}

	cat, key := Key(n)
	if key == "" {
		return Icon{}, false
	}

	rel, ok := r.lookup(cat, key)
	if !ok {
		return Icon{}, false
	}

	path := filepath.Join(r.basePath, rel)
	svg, err := r.readCached(path)
	if err != nil {
		return Icon{}, false
	}

	return Icon{
		Path:     path,
		SVG:      svg,
		Size:     r.Size(cat),
		Position: r.Position(cat),
	}, true
}

func (r *Resolver) lookup(cat Category, key string) (string, bool) {
	var m map[string]string
	switch cat {
	case CategoryTask:
		m = r.doc.Tasks
	case CategoryEvent:
		m = r.doc.Events
	case CategoryGateway:
		m = r.doc.Gateways
	}
	rel, ok := m[key]
	return rel, ok
}

func (r *Resolver) readCached(path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if svg, ok := r.cache[path]; ok {
		return svg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	r.cache[path] = string(data)
	return string(data), nil
}

// Key maps a node to its library category and lookup key. The key follows
// BPMN naming: refined kind plus the base type, e.g. "user_task",
// "timer_event", "parallel_gateway". Plain tasks resolve as user tasks,
// matching how unrefined tasks are drawn.
func Key(n *process.Node) (Category, string) {
	switch n.Type {
	case process.NodeTask:
		kind := n.TaskKind
		if kind == process.TaskPlain {
			kind = process.TaskUser
		}
		return CategoryTask, string(kind) + "_task"
	case process.NodeStart:
		return CategoryEvent, "start_event"
	case process.NodeEnd:
		return CategoryEvent, "end_event"
	case process.NodeIntermediate:
		if n.EventKind == process.EventPlain {
			return CategoryEvent, "intermediate_event"
		}
		return CategoryEvent, string(n.EventKind) + "_event"
	case process.NodeLinkThrow:
		return CategoryEvent, "link_throw_event"
	case process.NodeLinkCatch:
		return CategoryEvent, "link_catch_event"
	case process.NodeGateway:
		return CategoryGateway, string(n.GatewayKind) + "_gateway"
	default:
		return "", ""
	}
}
