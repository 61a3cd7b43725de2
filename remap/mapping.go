// Package remap computes and applies collision-free placements of song
// entities between documents. Given a source song, a destination song and a
// set of root chains, Create walks every entity transitively reachable from
// the roots (including references hidden in version-dependent effect
// commands), deduplicates against what the destination already holds, and
// allocates free slots for the rest. The resulting Remapper is an immutable
// plan; Apply copies the planned entities into a second document and
// Renumber relocates them within a single one. Plans either come out whole
// or not at all: all allocation failures happen in Create, and the commit
// operations cannot fail.
package remap

import "fmt"

// MoveKind enumerates the entity namespaces a plan can move entries in.
type MoveKind uint8

const (
	MoveEQ MoveKind = iota
	MoveInstrument
	MoveTable
	MovePhrase
	MoveChain
)

func (k MoveKind) String() string {
	switch k {
	case MoveEQ:
		return "EQ"
	case MoveInstrument:
		return "instrument"
	case MoveTable:
		return "table"
	case MovePhrase:
		return "phrase"
	case MoveChain:
		return "chain"
	}
	return "unknown"
}

// DescriptorBuilder receives one Moved callback per moved entity when a
// plan is described, in the fixed order EQ, instrument, table, phrase,
// chain.
type DescriptorBuilder interface {
	Moved(kind MoveKind, from, to int)
}

// ExhaustedError is returned by Create when an entity cannot be placed
// because the destination namespace has no free slot left. There is
// nothing to retry: it is a capacity fact about the destination document.
type ExhaustedError struct {
	Kind  MoveKind
	Index int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no more available %v slots for %v 0x%02X", e.Kind, e.Kind, e.Index)
}

// Mapping is the index translation for one entity namespace. Dest[i] is
// the destination slot of source index i, identity for entities the plan
// never touched. ToMove lists the source indices whose entity must be
// materialized in the destination during commit; a deduplicated entity
// gets a Dest entry but no ToMove entry.
type Mapping struct {
	Dest   []uint8
	ToMove []uint8
}

// identityMapping returns a Mapping where every index maps to itself.
func identityMapping(n int) Mapping {
	dest := make([]uint8, n)
	for i := range dest {
		dest[i] = uint8(i)
	}
	return Mapping{Dest: dest}
}

// move records that the entity at source index from must be materialized
// at destination index to.
func (m *Mapping) move(from, to int) {
	m.Dest[from] = uint8(to)
	m.ToMove = append(m.ToMove, uint8(from))
}

// out returns the destination index of a source index, identity when the
// index is outside the mapped namespace.
func (m *Mapping) out(i int) int {
	if i < 0 || i >= len(m.Dest) {
		return i
	}
	return int(m.Dest[i])
}

func (m *Mapping) describe(kind MoveKind, builder DescriptorBuilder) {
	for _, ix := range m.ToMove {
		builder.Moved(kind, int(ix), int(m.Dest[ix]))
	}
}
