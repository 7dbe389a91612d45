package hierarchy

// ItemKind tells whether a supplier or customer sits inside or outside
// the organization.
type ItemKind string

// SIPOC item kinds. The zero value leaves the distinction open.
const (
	ItemInternal ItemKind = "internal"
	ItemExternal ItemKind = "external"
)

// SIPOCItem is one entry in a SIPOC column. Kind is only meaningful on
// suppliers and customers.
type SIPOCItem struct {
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Kind        ItemKind `json:"kind,omitempty" bson:"kind,omitempty"`
}

// SIPOC summarizes a process in five columns: who supplies what, the
// main steps, and who receives the deliverables.
type SIPOC struct {
	Suppliers []SIPOCItem `json:"suppliers,omitempty" bson:"suppliers,omitempty"`
	Inputs    []SIPOCItem `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Steps     []string    `json:"steps,omitempty" bson:"steps,omitempty"`
	Outputs   []SIPOCItem `json:"outputs,omitempty" bson:"outputs,omitempty"`
	Customers []SIPOCItem `json:"customers,omitempty" bson:"customers,omitempty"`
}

// IsComplete reports whether every column has at least one entry.
func (s *SIPOC) IsComplete() bool {
	return len(s.Suppliers) > 0 &&
		len(s.Inputs) > 0 &&
		len(s.Steps) > 0 &&
		len(s.Outputs) > 0 &&
		len(s.Customers) > 0
}

// FilterItems returns the items of the given kind, preserving order.
func FilterItems(items []SIPOCItem, kind ItemKind) []SIPOCItem {
	var out []SIPOCItem
	for _, it := range items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// ItemNames returns the item names in order.
func ItemNames(items []SIPOCItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
