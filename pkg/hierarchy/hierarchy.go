// Package hierarchy models the strategic layers above individual
// processes: the organization's value chain and the macroprocesses it
// groups, each optionally summarized by a SIPOC.
//
// A ValueChain sorts macroprocess IDs into the three Porter bands
// (primary, support, management). Order inside each band is
// significant: the value-chain layout places boxes left to right in
// band order and chains the primary band with arrows.
package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// MacroKind places a macroprocess in one of the three Porter bands.
type MacroKind string

// Macroprocess kinds.
const (
	// MacroPrimary is core business: the chain that delivers value to
	// the customer.
	MacroPrimary MacroKind = "primary"
	// MacroSupport sustains the primary chain (HR, IT, procurement).
	MacroSupport MacroKind = "support"
	// MacroManagement steers and controls (planning, quality, audit).
	MacroManagement MacroKind = "management"
)

// Macroprocess groups related processes under a common objective. It
// is the tactical level between the value chain and the individual
// swimlane processes.
type Macroprocess struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Kind        MacroKind `json:"kind" bson:"kind"`
	Objective   string    `json:"objective,omitempty" bson:"objective,omitempty"`
	Owner       string    `json:"owner,omitempty" bson:"owner,omitempty"`

	// Processes lists the IDs of the child processes.
	Processes []string `json:"processes,omitempty" bson:"processes,omitempty"`

	SIPOC      *SIPOC   `json:"sipoc,omitempty" bson:"sipoc,omitempty"`
	Indicators []string `json:"indicators,omitempty" bson:"indicators,omitempty"`
}

// Validate checks that the macroprocess has an ID, a name, and a known
// kind.
func (m *Macroprocess) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("macroprocess ID must not be empty")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("macroprocess %s: name must not be empty", m.ID)
	}
	switch m.Kind {
	case MacroPrimary, MacroSupport, MacroManagement:
		return nil
	default:
		return fmt.Errorf("macroprocess %s: unknown kind %q", m.ID, m.Kind)
	}
}

// ValueChain is the strategic top level: every macroprocess of the
// organization, grouped into Porter bands by ID.
type ValueChain struct {
	ID           string   `json:"id" bson:"id"`
	Name         string   `json:"name" bson:"name"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Organization string   `json:"organization,omitempty" bson:"organization,omitempty"`
	Mission      string   `json:"mission,omitempty" bson:"mission,omitempty"`
	Vision       string   `json:"vision,omitempty" bson:"vision,omitempty"`
	Values       []string `json:"values,omitempty" bson:"values,omitempty"`

	// Macroprocess IDs per band, in display order.
	Primary    []string `json:"primary,omitempty" bson:"primary,omitempty"`
	Support    []string `json:"support,omitempty" bson:"support,omitempty"`
	Management []string `json:"management,omitempty" bson:"management,omitempty"`
}

// Validate checks that the value chain has an ID and a name.
func (v *ValueChain) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("value chain ID must not be empty")
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("value chain %s: name must not be empty", v.ID)
	}
	return nil
}

// Macroprocesses returns the IDs of every referenced macroprocess,
// primary band first, without duplicates.
func (v *ValueChain) Macroprocesses() []string {
	seen := make(map[string]bool)
	var out []string
	for _, band := range [][]string{v.Primary, v.Support, v.Management} {
		for _, id := range band {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
