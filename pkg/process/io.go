package process

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a JSON process description from r.
//
// The input must be a JSON object with at least "name" and "nodes":
//
//	{
//	  "name": "Order Fulfillment",
//	  "actors": ["Sales", "Warehouse"],
//	  "nodes": [
//	    {"id": "start", "type": "start_event", "name": "Order received"},
//	    {"id": "pick", "type": "task", "name": "Pick items", "actor": "Warehouse"}
//	  ],
//	  "edges": [{"from": "start", "to": "pick"}]
//	}
//
// Node and edge declaration order is preserved exactly as written, since
// order carries meaning for layout.
//
// ReadJSON returns an error if the JSON is malformed, a node has an empty
// or duplicate ID, or a node type is not one of the defined variants.
// Dangling edges are accepted here; Validate reports them.
func ReadJSON(r io.Reader) (*Process, error) {
	var raw Process
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	p := &Process{
		Name:        raw.Name,
		Description: raw.Description,
		Actors:      raw.Actors,
	}
	for _, n := range raw.Nodes {
		if err := p.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range raw.Edges {
		p.AddEdge(e)
	}

	return p, nil
}

// ImportJSON reads a JSON process file at path.
// It wraps [ReadJSON] with file handling; errors include the path.
func ImportJSON(path string) (*Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a process as indented JSON and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(p *Process, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a process to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *Process, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// MarshalCanonical produces the canonical JSON encoding of a process,
// used for content-addressed cache keys. The encoding is deterministic:
// struct field order is fixed and slices keep declaration order.
func MarshalCanonical(p *Process) ([]byte, error) {
	return json.Marshal(p)
}
