package remap

import (
	"fmt"
	"strings"

	"github.com/m8tools/m8"
)

// Remapper is an immutable placement plan for the five entity namespaces,
// produced by Create and consumed by Apply or Renumber.
type Remapper struct {
	EQs         Mapping
	Instruments Mapping
	Tables      Mapping
	Phrases     Mapping
	Chains      Mapping

	refs m8.FXRefs
}

// Create computes the placement of every entity transitively reachable
// from the given root chains of the from song into free slots of the to
// song. Neither document is mutated; on the first namespace that runs out
// of free slots an ExhaustedError is returned and no plan.
//
// Discovery runs in three passes over the roots, in dependency order:
// instruments, tables and EQs first (following the instrument column and
// the reference-carrying commands of every reachable phrase), then
// phrases, then chains. Phrases and chains have to wait until the earlier
// mappings are final, because their destination-side deduplication
// compares the remapped entity, not the source one.
func Create(from, to *m8.Song, chains []int) (*Remapper, error) {
	state := newAllocatorState(from, to)

	for _, chainID := range chains {
		if chainID < 0 || chainID >= m8.NumChains {
			continue
		}
		for _, chainStep := range from.Chains[chainID].Steps {
			phraseID := int(chainStep.Phrase)
			if phraseID >= m8.NumPhrases {
				continue
			}
			phrase := &from.Phrases[phraseID]
			for i := range phrase.Steps {
				if err := state.touchInstrument(int(phrase.Steps[i].Instrument)); err != nil {
					return nil, err
				}
				for _, fx := range phrase.Steps[i].FX {
					if err := state.touchFX(fx); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	phrases, err := allocatePhrases(from, to, state, chains)
	if err != nil {
		return nil, err
	}
	chainMapping, err := allocateChains(from, to, &phrases, chains)
	if err != nil {
		return nil, err
	}

	return &Remapper{
		EQs:         state.eqs,
		Instruments: state.instruments,
		Tables:      state.tables,
		Phrases:     phrases,
		Chains:      chainMapping,
		refs:        state.refs,
	}, nil
}

// allocatePhrases places every phrase referenced by the root chains,
// deduplicating on the remapped copy.
func allocatePhrases(from, to *m8.Song, state *allocatorState, chains []int) (Mapping, error) {
	allocated := referencedPhrases(to)
	var seen [m8.NumPhrases]bool
	mapping := identityMapping(m8.NumPhrases)

	for _, chainID := range chains {
		if chainID < 0 || chainID >= m8.NumChains {
			continue
		}
		for _, chainStep := range from.Chains[chainID].Steps {
			phraseIx := int(chainStep.Phrase)
			if phraseIx >= m8.NumPhrases || seen[phraseIx] {
				continue
			}
			seen[phraseIx] = true

			phrase := from.Phrases[phraseIx].Remap(state.refs,
				state.instruments.Dest, state.tables.Dest, state.eqs.Dest)

			if known, ok := findPhrase(to, phrase); ok {
				mapping.Dest[phraseIx] = uint8(known)
				continue
			}
			slot, ok := allocateForward(allocated, phraseIx)
			if !ok {
				return Mapping{}, &ExhaustedError{Kind: MovePhrase, Index: phraseIx}
			}
			allocated[slot] = true
			mapping.move(phraseIx, slot)
		}
	}
	return mapping, nil
}

// allocateChains places the root chains themselves, deduplicating on the
// remapped copy.
func allocateChains(from, to *m8.Song, phrases *Mapping, chains []int) (Mapping, error) {
	allocated := referencedChains(to)
	var seen [m8.NumChains]bool
	mapping := identityMapping(m8.NumChains)

	for _, chainID := range chains {
		if chainID < 0 || chainID >= m8.NumChains || seen[chainID] {
			continue
		}
		seen[chainID] = true

		chain := from.Chains[chainID].Remap(phrases.Dest)

		if known, ok := findChain(to, chain); ok {
			mapping.Dest[chainID] = uint8(known)
			continue
		}
		slot, ok := allocateForward(allocated, chainID)
		if !ok {
			return Mapping{}, &ExhaustedError{Kind: MoveChain, Index: chainID}
		}
		allocated[slot] = true
		mapping.move(chainID, slot)
	}
	return mapping, nil
}

func findPhrase(song *m8.Song, phrase m8.Phrase) (int, bool) {
	for i := range song.Phrases {
		if song.Phrases[i] == phrase {
			return i, true
		}
	}
	return 0, false
}

func findChain(song *m8.Song, chain m8.Chain) (int, bool) {
	for i := range song.Chains {
		if song.Chains[i] == chain {
			return i, true
		}
	}
	return 0, false
}

// Apply copies every planned entity from the from song into its allocated
// slot of the to song, references rewritten through the plan. Slot
// availability was already proven by Create, so Apply cannot fail; from is
// never mutated.
func (r *Remapper) Apply(from, to *m8.Song) {
	for _, ix := range r.EQs.ToMove {
		to.EQs[r.EQs.Dest[ix]] = from.EQs[ix]
	}

	for _, ix := range r.Instruments.ToMove {
		instr := from.Instruments[ix]
		if equ, ok := instr.Equ(); ok {
			if int(equ) < to.EQCount() && int(equ) < len(r.EQs.Dest) {
				instr.SetEQ(r.EQs.Dest[equ])
			}
		}
		toIx := r.Instruments.Dest[ix]
		// the bound table travels with its instrument
		to.Tables[toIx] = from.Tables[ix].Remap(r.refs,
			r.Instruments.Dest, r.Tables.Dest, r.EQs.Dest)
		to.Instruments[toIx] = instr
	}

	for _, ix := range r.Tables.ToMove {
		to.Tables[r.Tables.Dest[ix]] = from.Tables[ix].Remap(r.refs,
			r.Instruments.Dest, r.Tables.Dest, r.EQs.Dest)
	}

	for _, ix := range r.Phrases.ToMove {
		to.Phrases[r.Phrases.Dest[ix]] = from.Phrases[ix].Remap(r.refs,
			r.Instruments.Dest, r.Tables.Dest, r.EQs.Dest)
	}

	for _, ix := range r.Chains.ToMove {
		to.Chains[r.Chains.Dest[ix]] = from.Chains[ix].Remap(r.Phrases.Dest)
	}
}

// Renumber relocates the planned entities within a single song: each moved
// entity is copied to its new slot and the old slot is cleared. Afterwards
// the references inside every entity, moved or not, are rewritten through
// the plan, so the document stays internally consistent no matter which
// subset of entities changed location. Like Apply, it cannot fail.
func (r *Remapper) Renumber(song *m8.Song) {
	for _, ix := range r.EQs.ToMove {
		to := r.EQs.Dest[ix]
		if int(to) == int(ix) {
			continue
		}
		song.EQs[to] = song.EQs[ix]
		song.EQs[ix].Clear()
	}

	for _, ix := range r.Instruments.ToMove {
		to := r.Instruments.Dest[ix]
		if int(to) == int(ix) {
			continue
		}
		song.Tables[to] = song.Tables[ix]
		song.Instruments[to] = song.Instruments[ix]
		song.Instruments[ix].Clear()
	}

	// unlike phrases and chains, moved tables get no global rewrite pass
	// below, so an identity move still rewrites the references in place
	for _, ix := range r.Tables.ToMove {
		to := r.Tables.Dest[ix]
		song.Tables[to] = song.Tables[ix].Remap(r.refs,
			r.Instruments.Dest, r.Tables.Dest, r.EQs.Dest)
		if int(to) != int(ix) {
			song.Tables[ix].Clear()
		}
	}

	// rewrite the EQ reference of every instrument, moved or not; the
	// internal EQs at the top of the table never relocate
	eqCount := song.InstrumentEQCount()
	for i := range song.Instruments {
		if equ, ok := song.Instruments[i].Equ(); ok {
			if int(equ) < eqCount && int(equ) < len(r.EQs.Dest) {
				song.Instruments[i].SetEQ(r.EQs.Dest[equ])
			}
		}
	}

	for _, ix := range r.Phrases.ToMove {
		to := r.Phrases.Dest[ix]
		if int(to) == int(ix) {
			continue
		}
		song.Phrases[to] = song.Phrases[ix]
		song.Phrases[ix].Clear()
	}
	for i := range song.Phrases {
		song.Phrases[i] = song.Phrases[i].Remap(r.refs,
			r.Instruments.Dest, r.Tables.Dest, r.EQs.Dest)
	}

	for _, ix := range r.Chains.ToMove {
		to := r.Chains.Dest[ix]
		if int(to) == int(ix) {
			continue
		}
		song.Chains[to] = song.Chains[ix]
		song.Chains[ix].Clear()
	}
	for i := range song.Chains {
		song.Chains[i] = song.Chains[i].Remap(r.Phrases.Dest)
	}
}

// Describe replays the plan's moves through the builder, one callback per
// moved entity, in the fixed order EQ, instrument, table, phrase, chain.
func (r *Remapper) Describe(builder DescriptorBuilder) {
	r.EQs.describe(MoveEQ, builder)
	r.Instruments.describe(MoveInstrument, builder)
	r.Tables.describe(MoveTable, builder)
	r.Phrases.describe(MovePhrase, builder)
	r.Chains.describe(MoveChain, builder)
}

// OutChain returns the destination index of a root chain, identity if the
// chain was never moved.
func (r *Remapper) OutChain(chainID int) int {
	return r.Chains.out(chainID)
}

type stringBuilder struct {
	b strings.Builder
}

func (s *stringBuilder) Moved(kind MoveKind, from, to int) {
	fmt.Fprintf(&s.b, " %v %02X => %02X\n", kind, from, to)
}

// String dumps the plan's moves, one line per moved entity.
func (r *Remapper) String() string {
	var s stringBuilder
	r.Describe(&s)
	return s.b.String()
}
