package types

import (
	"github.com/typecore-lang/typecore/internal/config"
	"github.com/typecore-lang/typecore/internal/set"
)

// InheritanceChain is the sequence of base-class links walked to prove
// derivation, ancestor-most link last, consumed by the assignability
// engine's type-argument check along the chain.
type InheritanceChain []*ClassType

// IsDerivedFrom reports whether child is ancestor or inherits from it,
// walking BaseClasses depth-first in declared order and skipping metaclass links (a
// metaclass base describes what the class itself is an instance of, not
// what it derives from). Returns the chain of classes walked when found.
// Past limits.RecursionBound the walk gives up and reports true, matching
// the rest of this package's fail-safe-permissive stance on cyclic types.
func IsDerivedFrom(child, ancestor *ClassType, recursionLevel int, limits config.Limits) (InheritanceChain, bool) {
	if child == nil || ancestor == nil {
		return nil, false
	}
	if limits.Exceeded(recursionLevel) {
		return InheritanceChain{child}, true
	}
	if child.Name == ancestor.Name {
		return InheritanceChain{child}, true
	}
	for _, base := range child.BaseClasses {
		if base.IsMetaclass {
			continue
		}
		baseClass, ok := base.Type.(*ClassType)
		if !ok {
			continue
		}
		if chain, ok := IsDerivedFrom(baseClass, ancestor, recursionLevel+1, limits); ok {
			return append(InheritanceChain{child}, chain...), true
		}
	}
	return nil, false
}

// MRO linearizes a class's ancestors depth-first, left-to-right, base
// classes before the class itself's later bases, deduplicating so each
// ancestor appears once at its first-encountered position. This is the
// walk order member lookup follows: not C3 linearization, just
// declaration-order depth-first search.
func MRO(class *ClassType, recursionLevel int, limits config.Limits) []*ClassType {
	if limits.Exceeded(recursionLevel) {
		return nil
	}
	seen := set.NewSet[string]()
	var order []*ClassType
	var walk func(*ClassType, int)
	walk = func(c *ClassType, level int) {
		if limits.Exceeded(level) || seen.Contains(c.Name) {
			return
		}
		seen.Add(c.Name)
		order = append(order, c)
		for _, base := range c.BaseClasses {
			if base.IsMetaclass {
				continue
			}
			if baseClass, ok := base.Type.(*ClassType); ok {
				walk(baseClass, level+1)
			}
		}
	}
	walk(class, recursionLevel)
	return order
}
