// Package diag is the core's one failure channel: a tree of diagnostic
// addenda written during a CanAssign query, plus the closed taxonomy of
// Error kinds the engine reports. Each Error renders a plain one-line
// message; how diagnostics are presented to users is the caller's job.
package diag

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Addendum is one node of the write-only reason tree the assignability
// engine builds while it fails. A query that succeeds discards its
// addendum; one that fails attaches it to the caller's sink.
type Addendum struct {
	Message  string
	Children []*Addendum
}

// New creates a root addendum.
func New(format string, args ...any) *Addendum {
	return &Addendum{Message: fmt.Sprintf(format, args...)}
}

// Child appends and returns a new child node, letting call sites build
// nested reasons (e.g. "class comparison failed" -> "member '__len__' not
// present") without threading a builder object around.
func (a *Addendum) Child(format string, args ...any) *Addendum {
	if a == nil {
		return nil
	}
	child := &Addendum{Message: fmt.Sprintf(format, args...)}
	a.Children = append(a.Children, child)
	return child
}

// JSON serializes the addendum tree for tooling that wants a structured
// diagnostic rather than the nested-tree shape directly; built with sjson
// one path-set at a time rather than via encoding/json tags, matching how
// the rest of this module treats JSON as a tree to be built/queried rather
// than a struct to be marshaled.
func (a *Addendum) JSON() string {
	if a == nil {
		return "{}"
	}
	doc, _ := sjson.Set("{}", "message", a.Message)
	for i, child := range a.Children {
		childJSON := child.JSON()
		doc, _ = sjson.SetRaw(doc, fmt.Sprintf("children.%d", i), childJSON)
	}
	return doc
}
