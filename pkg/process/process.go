// Package process defines the business process model: named actors, typed
// nodes, and directed edges between them.
//
// A Process is the canonical input to the layout engine. Declaration order
// is significant and is preserved everywhere: actors become swimlanes in
// the order they are declared, and node declaration order drives both the
// backward-edge heuristic and rank tie-breaking.
//
// Nodes form a closed set of variants (events, tasks, gateways,
// annotations, link events). Variant-specific data lives in explicit typed
// fields rather than a free-form metadata map, so invalid combinations are
// visible and checkable.
package process

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Process.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Process.AddNode] when a node with
	// the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNodeType is returned by [Process.AddNode] when the node's
	// Type is not one of the defined variants.
	ErrUnknownNodeType = errors.New("unknown node type")
)

// NodeType identifies the variant of a process node.
// The set is closed: every node is exactly one of these.
type NodeType string

// Node variants.
const (
	// NodeStart marks where the process begins.
	NodeStart NodeType = "start_event"
	// NodeEnd marks where the process terminates.
	NodeEnd NodeType = "end_event"
	// NodeIntermediate is an event that occurs mid-process (timer, message, ...).
	NodeIntermediate NodeType = "intermediate_event"
	// NodeTask is a unit of work performed by an actor.
	NodeTask NodeType = "task"
	// NodeGateway is a branching or merging decision point.
	NodeGateway NodeType = "gateway"
	// NodeAnnotation is an explanatory note attached to another node.
	NodeAnnotation NodeType = "annotation"
	// NodeLinkThrow is the outgoing half of a link event pair. Link events
	// are synthesized during layout to replace backward edges; they do not
	// normally appear in authored processes.
	NodeLinkThrow NodeType = "link_throw"
	// NodeLinkCatch is the incoming half of a link event pair.
	NodeLinkCatch NodeType = "link_catch"
)

// TaskKind refines a task node. The zero value is a plain task.
type TaskKind string

// Task kinds.
const (
	TaskPlain   TaskKind = ""
	TaskUser    TaskKind = "user"
	TaskManual  TaskKind = "manual"
	TaskService TaskKind = "service"
)

// GatewayKind refines a gateway node.
type GatewayKind string

// Gateway kinds.
const (
	GatewayExclusive GatewayKind = "exclusive"
	GatewayInclusive GatewayKind = "inclusive"
	GatewayParallel  GatewayKind = "parallel"
	GatewayComplex   GatewayKind = "complex"
)

// EventKind refines an intermediate event node. The zero value is an
// untyped event.
type EventKind string

// Intermediate event kinds.
const (
	EventPlain       EventKind = ""
	EventTimer       EventKind = "timer"
	EventMessage     EventKind = "message"
	EventError       EventKind = "error"
	EventSignal      EventKind = "signal"
	EventConditional EventKind = "conditional"
	EventMultiple    EventKind = "multiple"
)

// Node is a single element of a business process.
//
// Only the fields matching the node's Type are meaningful: TaskKind for
// tasks, GatewayKind and Conditions for gateways, EventKind for
// intermediate events, AttachedTo for annotations, and LinkLabel for link
// throw/catch pairs. Actor is empty for events and annotations, which are
// not owned by a lane.
type Node struct {
	ID          string   `json:"id" bson:"id"`
	Type        NodeType `json:"type" bson:"type"`
	Name        string   `json:"name,omitempty" bson:"name,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Actor       string   `json:"actor,omitempty" bson:"actor,omitempty"`

	TaskKind    TaskKind    `json:"task_kind,omitempty" bson:"task_kind,omitempty"`
	GatewayKind GatewayKind `json:"gateway_kind,omitempty" bson:"gateway_kind,omitempty"`
	EventKind   EventKind   `json:"event_kind,omitempty" bson:"event_kind,omitempty"`

	// Conditions are the branch labels a gateway routes on.
	Conditions []string `json:"conditions,omitempty" bson:"conditions,omitempty"`
	// AttachedTo references the node an annotation describes.
	AttachedTo string `json:"attached_to,omitempty" bson:"attached_to,omitempty"`
	// LinkLabel pairs a link throw with its catch ("A".."Z").
	LinkLabel string `json:"link_label,omitempty" bson:"link_label,omitempty"`

	// Inputs, Outputs, and Tools enrich task nodes. They do not affect
	// layout; document generation reads them for prerequisites,
	// verification items, and SIPOC columns.
	Inputs  []string `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty" bson:"outputs,omitempty"`
	Tools   []string `json:"tools,omitempty" bson:"tools,omitempty"`
}

// IsEvent reports whether the node is a start, end, intermediate, or link event.
func (n *Node) IsEvent() bool {
	switch n.Type {
	case NodeStart, NodeEnd, NodeIntermediate, NodeLinkThrow, NodeLinkCatch:
		return true
	}
	return false
}

// IsGateway reports whether the node is a gateway.
func (n *Node) IsGateway() bool { return n.Type == NodeGateway }

// IsTask reports whether the node is a task of any kind.
func (n *Node) IsTask() bool { return n.Type == NodeTask }

// IsAnnotation reports whether the node is an annotation.
func (n *Node) IsAnnotation() bool { return n.Type == NodeAnnotation }

// IsLink reports whether the node is half of a link event pair.
func (n *Node) IsLink() bool { return n.Type == NodeLinkThrow || n.Type == NodeLinkCatch }

// DisplayName returns the name if set, otherwise the ID.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// validTypes is the closed set of node variants accepted by AddNode.
var validTypes = map[NodeType]bool{
	NodeStart:        true,
	NodeEnd:          true,
	NodeIntermediate: true,
	NodeTask:         true,
	NodeGateway:      true,
	NodeAnnotation:   true,
	NodeLinkThrow:    true,
	NodeLinkCatch:    true,
}

// Edge is a directed flow between two nodes.
// Condition carries the branch label when the edge leaves a gateway.
type Edge struct {
	From      string `json:"from" bson:"from"`
	To        string `json:"to" bson:"to"`
	Condition string `json:"condition,omitempty" bson:"condition,omitempty"`
}

// Process is a complete business process: declared actors plus the node
// and edge lists in declaration order.
//
// The zero value is usable as an empty process. Process is not safe for
// concurrent mutation.
type Process struct {
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Actors      []string `json:"actors,omitempty" bson:"actors,omitempty"`
	Nodes       []Node   `json:"nodes" bson:"nodes"`
	Edges       []Edge   `json:"edges" bson:"edges"`
}

// AddNode appends a node, enforcing ID uniqueness and a known type.
// Returns ErrInvalidNodeID, ErrDuplicateNodeID, or ErrUnknownNodeType.
func (p *Process) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if !validTypes[n.Type] {
		return ErrUnknownNodeType
	}
	if _, ok := p.Node(n.ID); ok {
		return ErrDuplicateNodeID
	}
	p.Nodes = append(p.Nodes, n)
	return nil
}

// AddEdge appends an edge. Endpoints are not required to exist yet;
// use Validate to check referential integrity once the process is built.
func (p *Process) AddEdge(e Edge) {
	p.Edges = append(p.Edges, e)
}

// Node returns the node with the given ID and true, or nil and false.
// The returned pointer refers into the Nodes slice.
func (p *Process) Node(id string) (*Node, bool) {
	for i := range p.Nodes {
		if p.Nodes[i].ID == id {
			return &p.Nodes[i], true
		}
	}
	return nil, false
}

// NodeIndex returns the declaration index of the node with the given ID,
// or -1 if it does not exist. Declaration order drives the backward-edge
// heuristic during layout.
func (p *Process) NodeIndex(id string) int {
	return slices.IndexFunc(p.Nodes, func(n Node) bool { return n.ID == id })
}

// HasActor reports whether the actor is declared on the process.
func (p *Process) HasActor(name string) bool {
	return slices.Contains(p.Actors, name)
}

// Outgoing returns the edges leaving the given node, in declaration order.
func (p *Process) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range p.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges entering the given node, in declaration order.
func (p *Process) Incoming(id string) []Edge {
	var in []Edge
	for _, e := range p.Edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}

// StartNodes returns all start events in declaration order.
func (p *Process) StartNodes() []Node {
	var starts []Node
	for _, n := range p.Nodes {
		if n.Type == NodeStart {
			starts = append(starts, n)
		}
	}
	return starts
}

// EndNodes returns all end events in declaration order.
func (p *Process) EndNodes() []Node {
	var ends []Node
	for _, n := range p.Nodes {
		if n.Type == NodeEnd {
			ends = append(ends, n)
		}
	}
	return ends
}

// Tasks returns all task nodes in declaration order.
func (p *Process) Tasks() []Node {
	var tasks []Node
	for _, n := range p.Nodes {
		if n.Type == NodeTask {
			tasks = append(tasks, n)
		}
	}
	return tasks
}
