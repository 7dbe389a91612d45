package layout

import (
	"errors"
	"fmt"
)

// ErrLinkLabelsExhausted is returned when a graph contains more than 26
// backward edges. Link markers are labeled with a single letter, and
// the behavior past 'Z' is deliberately undefined rather than patched.
var ErrLinkLabelsExhausted = errors.New("more than 26 backward edges: link labels exhausted")

// layoutContext carries the counters for a single layout invocation.
// A fresh context per call keeps ids deterministic and lets callers
// lay out unrelated processes concurrently.
type layoutContext struct {
	ids   int
	links int
}

func newLayoutContext() *layoutContext {
	return &layoutContext{}
}

// nextID allocates the next visual id. Elements and connectors share
// one sequence, so ids are unique across both collections.
func (lc *layoutContext) nextID(prefix string) string {
	lc.ids++
	return fmt.Sprintf("%s_%d", prefix, lc.ids)
}

// nextLinkLabel allocates the next single-letter link label, 'A'
// through 'Z'.
func (lc *layoutContext) nextLinkLabel() (string, error) {
	if lc.links >= 26 {
		return "", ErrLinkLabelsExhausted
	}
	label := string(rune('A' + lc.links))
	lc.links++
	return label, nil
}
