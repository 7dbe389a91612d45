// Package extract turns process descriptions into process graphs.
//
// Two extractors are provided. LLMExtractor sends a preprocessed
// markdown transcript to a chat-completion model and parses the strict
// JSON it returns. FileExtractor reads the same document shape from a
// JSON or YAML file, so externally authored graphs skip the LLM
// entirely.
//
// Both produce a Result wrapping a validated *process.Process together
// with provenance (source file, model) and any non-fatal warnings.
package extract

import (
	"fmt"
	"strings"

	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

// Result is the outcome of one extraction.
type Result struct {
	Process    *process.Process `json:"process"`
	SourceFile string           `json:"source_file,omitempty"`
	Model      string           `json:"model,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// wireProcess is the document shape shared by the LLM contract and the
// file mode: a flat element list with per-type metadata, not the native
// nodes/edges form.
type wireProcess struct {
	ProcessName string        `json:"process_name" yaml:"process_name"`
	Description string        `json:"description" yaml:"description"`
	Actors      []string      `json:"actors" yaml:"actors"`
	Elements    []wireElement `json:"elements" yaml:"elements"`
	Flows       []wireFlow    `json:"flows" yaml:"flows"`
}

type wireElement struct {
	ID          string         `json:"id" yaml:"id"`
	Type        string         `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Actor       string         `json:"actor" yaml:"actor"`
	Metadata    map[string]any `json:"metadata" yaml:"metadata"`
}

type wireFlow struct {
	FromElement string `json:"from_element" yaml:"from_element"`
	ToElement   string `json:"to_element" yaml:"to_element"`
	Condition   string `json:"condition" yaml:"condition"`
}

// toProcess converts the wire document into a process graph. Element
// order is preserved; the layout engine depends on declaration order
// for cycle classification.
func (w *wireProcess) toProcess() (*process.Process, error) {
	p := &process.Process{
		Name:        w.ProcessName,
		Description: w.Description,
		Actors:      w.Actors,
	}

	for _, el := range w.Elements {
		n, err := el.toNode()
		if err != nil {
			return nil, err
		}
		if err := p.AddNode(n); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidProcess, err, "element %q", el.ID)
		}
	}

	for _, f := range w.Flows {
		p.AddEdge(process.Edge{From: f.FromElement, To: f.ToElement, Condition: f.Condition})
	}
	return p, nil
}

func (el *wireElement) toNode() (process.Node, error) {
	n := process.Node{
		ID:          el.ID,
		Name:        el.Name,
		Description: el.Description,
		Actor:       el.Actor,
	}

	switch el.Type {
	case "task":
		n.Type = process.NodeTask
		n.TaskKind = process.TaskKind(metaString(el.Metadata, "task_type"))
		n.Inputs = metaStrings(el.Metadata, "inputs")
		n.Outputs = metaStrings(el.Metadata, "outputs")
		n.Tools = metaStrings(el.Metadata, "tools")
	case "gateway":
		n.Type = process.NodeGateway
		n.GatewayKind = process.GatewayKind(metaString(el.Metadata, "gateway_type"))
		if n.GatewayKind == "" {
			n.GatewayKind = process.GatewayExclusive
		}
		n.Conditions = metaStrings(el.Metadata, "conditions")
	case "event":
		switch kind := metaString(el.Metadata, "event_type"); kind {
		case "start", "":
			n.Type = process.NodeStart
		case "end":
			n.Type = process.NodeEnd
		default:
			n.Type = process.NodeIntermediate
			n.EventKind = process.EventKind(kind)
		}
	case "annotation":
		n.Type = process.NodeAnnotation
		n.AttachedTo = metaString(el.Metadata, "attached_to")
	default:
		return n, errs.New(errs.ErrCodeInvalidProcess, "element %q has unknown type %q", el.ID, el.Type)
	}
	return n, nil
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func metaStrings(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
