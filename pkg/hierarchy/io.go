package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
)

// Organization bundles a value chain with the macroprocesses it
// references, for file interchange and storage.
//
// Macroprocesses is keyed by macroprocess ID. The value chain may name
// IDs missing from the map; consumers skip them.
type Organization struct {
	ValueChain     ValueChain              `json:"value_chain" bson:"value_chain"`
	Macroprocesses map[string]Macroprocess `json:"macroprocesses,omitempty" bson:"macroprocesses,omitempty"`
}

// Band returns the macroprocesses of one Porter band, resolved against
// the map in band order. IDs without a matching entry are skipped.
func (o *Organization) Band(kind MacroKind) []Macroprocess {
	var ids []string
	switch kind {
	case MacroPrimary:
		ids = o.ValueChain.Primary
	case MacroSupport:
		ids = o.ValueChain.Support
	case MacroManagement:
		ids = o.ValueChain.Management
	}
	out := make([]Macroprocess, 0, len(ids))
	for _, id := range ids {
		if m, ok := o.Macroprocesses[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks the value chain and every macroprocess, including
// that each map key matches the entry's own ID.
func (o *Organization) Validate() error {
	if err := o.ValueChain.Validate(); err != nil {
		return err
	}
	for id, m := range o.Macroprocesses {
		if err := m.Validate(); err != nil {
			return err
		}
		if m.ID != id {
			return fmt.Errorf("macroprocess map key %q does not match ID %q", id, m.ID)
		}
	}
	return nil
}

// MarshalOrganization serializes an Organization to pretty-printed
// JSON bytes.
func MarshalOrganization(o Organization) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// UnmarshalOrganization deserializes JSON bytes into an Organization
// and validates it.
func UnmarshalOrganization(data []byte) (Organization, error) {
	var o Organization
	if err := json.Unmarshal(data, &o); err != nil {
		return Organization{}, fmt.Errorf("unmarshal organization: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Organization{}, err
	}
	return o, nil
}

// WriteOrganizationFile writes an Organization to a JSON file.
func WriteOrganizationFile(o Organization, path string) error {
	data, err := MarshalOrganization(o)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadOrganizationFile reads and validates an Organization from a
// JSON file.
func ReadOrganizationFile(path string) (Organization, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Organization{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalOrganization(data)
}
