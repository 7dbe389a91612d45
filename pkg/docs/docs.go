// Package docs generates operational documents from process graphs:
// standard operating procedures (POP), per-activity work instructions
// (IT), verification checklists (CL), and SIPOC summaries.
//
// Generators are pure: they read a process and return a document
// struct, and each document renders itself to Markdown through
// text/template. Document codes follow the PREFIX-NNN convention
// (POP-001, IT-002). Tasks are numbered hierarchically by lane
// ("2.1" is the first task of the second actor) so that documents,
// diagrams, and published boards agree on step identity.
package docs

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/hierarchy"
	"github.com/laneflow/laneflow/pkg/process"
)

// Status tracks a document through its review lifecycle.
type Status string

// Document statuses. New documents start as drafts.
const (
	StatusDraft    Status = "draft"
	StatusReview   Status = "review"
	StatusApproved Status = "approved"
	StatusObsolete Status = "obsolete"
)

// Meta is the identity block shared by every generated document.
type Meta struct {
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Version   string    `json:"version"`
	Status    Status    `json:"status"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// newMeta stamps a fresh draft with the initial version.
func newMeta(code, title, author string) Meta {
	return Meta{
		Code:      code,
		Title:     title,
		Version:   "1.0",
		Status:    StatusDraft,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
}

// Code formats a document code from a prefix and a sequence number,
// e.g. Code("IT", 3) == "IT-003".
func Code(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// NumberTasks assigns hierarchical numbers to the task nodes of a
// process. Without declared actors, tasks are numbered sequentially
// ("1", "2", ...). With actors, each task gets "{actor}.{task}" where
// both indices follow declaration order and start at 1. Tasks owned by
// an undeclared actor are left unnumbered.
func NumberTasks(p *process.Process) map[string]string {
	numbers := make(map[string]string)
	if p == nil {
		return numbers
	}

	if len(p.Actors) == 0 {
		seq := 1
		for _, n := range p.Nodes {
			if n.IsTask() {
				numbers[n.ID] = strconv.Itoa(seq)
				seq++
			}
		}
		return numbers
	}

	for ai, actor := range p.Actors {
		seq := 1
		for _, n := range p.Nodes {
			if n.IsTask() && n.Actor == actor {
				numbers[n.ID] = fmt.Sprintf("%d.%d", ai+1, seq)
				seq++
			}
		}
	}
	return numbers
}

// Set bundles the full document family generated for one process: the
// procedure, one work instruction and one checklist per task, and the
// SIPOC summary.
type Set struct {
	POP          *POP               `json:"pop"`
	Instructions []*WorkInstruction `json:"instructions,omitempty"`
	Checklists   []*Checklist       `json:"checklists,omitempty"`
	SIPOC        *hierarchy.SIPOC   `json:"sipoc,omitempty"`
}

// SetOptions control GenerateSet. The zero value works.
type SetOptions struct {
	Author  string
	POPCode string // default POP-001
}

// GenerateSet produces every document for a process in one pass. The
// instruction and checklist slices are parallel to p.Tasks().
func GenerateSet(p *process.Process, opts SetOptions) (*Set, error) {
	if p == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "generate documents: process is nil")
	}

	pop := GeneratePOP(p, POPOptions{Code: opts.POPCode, Author: opts.Author})
	set := &Set{
		POP:   pop,
		SIPOC: GenerateSIPOC(p),
	}

	numbers := NumberTasks(p)
	for i, task := range p.Tasks() {
		it := generateInstruction(&task, p, numbers, InstructionOptions{
			Code:    Code("IT", i+1),
			Author:  opts.Author,
			POPCode: pop.Code,
		})
		cl := checklistForTask(&task, p, numbers, ChecklistOptions{
			Code:    Code("CL", i+1),
			Author:  opts.Author,
			POPCode: pop.Code,
		})
		set.Instructions = append(set.Instructions, it)
		set.Checklists = append(set.Checklists, cl)
	}
	return set, nil
}

// ====== Template rendering ======

var tmplFuncs = template.FuncMap{
	"join":   strings.Join,
	"orDash": orDash,
	"list":   listOrDash,
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(tmplFuncs).Parse(text))
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "render %s", t.Name())
	}
	return buf.String(), nil
}
