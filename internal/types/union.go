package types

import "strings"

// UnionType is always flattened (no UnionType directly contains another)
// and has at least 2 subtypes after normalization — a single-subtype union
// collapses to the subtype, and that collapse happens in Combine, never
// here. Construct unions only through Combine to preserve that invariant.
type UnionType struct {
	Subtypes   []Type
	provenance Provenance
}

func (t *UnionType) Provenance() Provenance { return t.provenance }

func (t *UnionType) String() string {
	parts := make([]string, len(t.Subtypes))
	for i, s := range t.Subtypes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

func (t *UnionType) Copy() Type {
	c := *t
	c.Subtypes = append([]Type(nil), t.Subtypes...)
	return &c
}
