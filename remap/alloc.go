package remap

import "github.com/m8tools/m8"

// The two slot-search strategies. Both take the destination occupancy of
// one namespace and the source index as a hint, and return a free slot;
// the caller marks the slot occupied. Forward allocation keeps entities at
// or just above their old numbers; backward allocation packs entities
// towards the top of the table, which keeps the low EQ slots free for the
// instrument-aligned heuristic.

// allocateForward returns the hint slot if free, else the first free slot
// above it, else the first free slot anywhere.
func allocateForward(used []bool, hint int) (int, bool) {
	if hint >= 0 && hint < len(used) && !used[hint] {
		return hint, true
	}
	for i := max(hint, 0); i < len(used); i++ {
		if !used[i] {
			return i, true
		}
	}
	for i := 0; i < len(used); i++ {
		if !used[i] {
			return i, true
		}
	}
	return 0, false
}

// allocateBackward returns the highest free slot at or above the hint,
// else the highest free slot anywhere.
func allocateBackward(used []bool, hint int) (int, bool) {
	for i := len(used) - 1; i >= hint && i >= 0; i-- {
		if !used[i] {
			return i, true
		}
	}
	for i := len(used) - 1; i >= 0; i-- {
		if !used[i] {
			return i, true
		}
	}
	return 0, false
}

// The occupancy scans below flag the destination slots that are already
// taken, either by holding a non-empty entity or by being referenced from
// somewhere; a referenced-but-empty slot still must not be reallocated.

// referencedEQs flags every EQ slot some instrument refers to.
func referencedEQs(song *m8.Song) []bool {
	used := make([]bool, song.EQCount())
	for i := range song.Instruments {
		if eq, ok := song.Instruments[i].Equ(); ok && int(eq) < len(used) {
			used[eq] = true
		}
	}
	return used
}

// allocatedInstruments flags every non-empty instrument slot.
func allocatedInstruments(song *m8.Song) []bool {
	used := make([]bool, m8.NumInstruments)
	for i := range song.Instruments {
		used[i] = !song.Instruments[i].IsEmpty()
	}
	return used
}

// allocatedTables flags every taken table slot. The first NumInstruments
// slots are bound 1:1 to instruments and are never up for grabs.
func allocatedTables(song *m8.Song) []bool {
	used := make([]bool, m8.NumTables)
	for i := range song.Tables {
		used[i] = i < m8.NumInstruments || !song.Tables[i].IsEmpty()
	}
	return used
}

// referencedPhrases flags every phrase slot that is non-empty or referenced
// from some chain.
func referencedPhrases(song *m8.Song) []bool {
	used := make([]bool, m8.NumPhrases)
	for i := range song.Chains {
		for _, step := range song.Chains[i].Steps {
			if int(step.Phrase) < len(used) {
				used[step.Phrase] = true
			}
		}
	}
	for i := range song.Phrases {
		if !song.Phrases[i].IsEmpty() {
			used[i] = true
		}
	}
	return used
}

// referencedChains flags every chain slot that is non-empty or referenced
// from the play-order grid.
func referencedChains(song *m8.Song) []bool {
	used := make([]bool, m8.NumChains)
	for _, row := range song.Steps {
		for _, chain := range row {
			if int(chain) < len(used) {
				used[chain] = true
			}
		}
	}
	for i := range song.Chains {
		if !song.Chains[i].IsEmpty() {
			used[i] = true
		}
	}
	return used
}
