package remap

import "github.com/m8tools/m8"

// Command names whose value column is an index into another entity table.
// The byte codes behind these names shift between firmware revisions, so
// they are resolved against the source document's command table once per
// plan.
var (
	instrumentTrackingCommands = []string{"INS", "NXT"}
	tableTrackingCommands      = []string{"TBX", "TBL"}
	eqTrackingCommands         = []string{"EQI", "EQM"}
)

// allocatorState is the transient working state of one Create call: the
// two documents, the resolved command classification, per-kind visitation
// flags and cycle guards, the destination occupancy, and the three
// mappings under construction. It is built, used and discarded inside
// Create; the mappings are the only thing that survives.
type allocatorState struct {
	from *m8.Song
	to   *m8.Song
	refs m8.FXRefs

	// cycle guards: entity indices currently on the recursion stack.
	// Instruments can reference instruments via NXT and tables can
	// reference tables via TBX, so the walk must tolerate cycles.
	onStackInstruments [m8.NumInstruments]bool
	onStackTables      [m8.NumTables]bool

	// permanently processed entities of the source document
	doneInstruments [m8.NumInstruments]bool
	doneTables      [m8.NumTables]bool
	doneEQs         []bool

	// destination occupancy
	allocatedEQs         []bool
	allocatedInstruments []bool
	allocatedTables      []bool

	eqs         Mapping
	instruments Mapping
	tables      Mapping
}

func newAllocatorState(from, to *m8.Song) *allocatorState {
	names := m8.FXCommandNames(from.Version)
	return &allocatorState{
		from: from,
		to:   to,
		refs: m8.FXRefs{
			Instrument: names.FindIndices(instrumentTrackingCommands),
			Table:      names.FindIndices(tableTrackingCommands),
			EQ:         names.FindIndices(eqTrackingCommands),
		},
		doneEQs:              make([]bool, from.EQCount()),
		allocatedEQs:         referencedEQs(to),
		allocatedInstruments: allocatedInstruments(to),
		allocatedTables:      allocatedTables(to),
		eqs:                  identityMapping(from.EQCount()),
		instruments:          identityMapping(m8.NumInstruments),
		tables:               identityMapping(m8.NumTables),
	}
}

// allocateEQ finds a destination slot for the source EQ at eqIx.
// isInstrumentEQ is true when the EQ is an instrument's own EQ at the same
// numeric index, in which case the same destination index is reserved when
// still free, keeping the EQ numerically aligned with its instrument.
func (a *allocatorState) allocateEQ(eqIx int, isInstrumentEQ bool) error {
	a.doneEQs[eqIx] = true
	fromEQ := a.from.EQs[eqIx]

	if isInstrumentEQ &&
		eqIx < len(a.allocatedEQs) && !a.allocatedEQs[eqIx] &&
		eqIx < len(a.allocatedInstruments) && !a.allocatedInstruments[eqIx] {
		a.allocatedEQs[eqIx] = true
		a.eqs.move(eqIx, eqIx)
		return nil
	}

	// reuse an identical EQ the destination already has; the internal
	// slots at the top of the 4.1+ table are never reusable
	for toIx := 0; toIx < a.to.InstrumentEQCount(); toIx++ {
		if a.to.EQs[toIx] == fromEQ {
			a.eqs.Dest[eqIx] = uint8(toIx)
			return nil
		}
	}

	slot, ok := allocateBackward(a.allocatedEQs, eqIx)
	if !ok {
		return &ExhaustedError{Kind: MoveEQ, Index: eqIx}
	}
	a.allocatedEQs[slot] = true
	a.eqs.move(eqIx, slot)
	return nil
}

// touchEQ processes the source EQ at eqIx once; repeat touches and indices
// outside the source table are no-ops. EQs form a flat namespace, so no
// cycle guard is needed.
func (a *allocatorState) touchEQ(eqIx int, isInstrumentEQ bool) error {
	if eqIx < 0 || eqIx >= len(a.doneEQs) || a.doneEQs[eqIx] {
		return nil
	}
	return a.allocateEQ(eqIx, isInstrumentEQ)
}

// touchFX follows whatever entity reference the command carries, if any.
func (a *allocatorState) touchFX(fx m8.FX) error {
	if a.refs.Instrument.Contains(fx.Command) {
		if err := a.touchInstrument(int(fx.Value)); err != nil {
			return err
		}
	}
	if a.refs.Table.Contains(fx.Command) {
		if err := a.touchTable(int(fx.Value)); err != nil {
			return err
		}
	}
	if a.refs.EQ.Contains(fx.Command) {
		if err := a.touchEQ(int(fx.Value), false); err != nil {
			return err
		}
	}
	return nil
}

// touchTable processes the source table at tableIx: follows every entity
// reference in its commands, then allocates a destination slot if the
// table is not implicitly bound to an instrument. Cycles via TBX simply do
// not re-descend.
func (a *allocatorState) touchTable(tableIx int) error {
	if tableIx < 0 || tableIx >= m8.NumTables || a.doneTables[tableIx] {
		return nil
	}
	if a.onStackTables[tableIx] {
		return nil
	}
	a.onStackTables[tableIx] = true

	table := &a.from.Tables[tableIx]
	for i := range table.Steps {
		for _, fx := range table.Steps[i].FX {
			if err := a.touchFX(fx); err != nil {
				return err
			}
		}
	}

	a.doneTables[tableIx] = true

	// tables below NumInstruments inherit their instrument's slot and are
	// never separately allocated
	if tableIx >= m8.NumInstruments {
		if err := a.allocateStandaloneTable(tableIx); err != nil {
			return err
		}
	}

	a.onStackTables[tableIx] = false
	return nil
}

// allocateStandaloneTable finds a destination slot for the standalone source
// table at tableIx, reusing a structurally equal destination table when one
// exists. The dedup compares the table as it will land, references rewritten
// through the in-progress mappings, and only searches the standalone range so
// a command reference can never silently bind to some instrument's table.
func (a *allocatorState) allocateStandaloneTable(tableIx int) error {
	remapped := a.from.Tables[tableIx].Remap(a.refs,
		a.instruments.Dest, a.tables.Dest, a.eqs.Dest)
	for toIx := m8.NumInstruments; toIx < m8.NumTables; toIx++ {
		if a.to.Tables[toIx] == remapped {
			a.tables.Dest[tableIx] = uint8(toIx)
			return nil
		}
	}
	slot, ok := allocateForward(a.allocatedTables, tableIx)
	if !ok {
		return &ExhaustedError{Kind: MoveTable, Index: tableIx}
	}
	a.allocatedTables[slot] = true
	a.tables.move(tableIx, slot)
	return nil
}

// touchInstrument processes the source instrument at instrIx: allocates
// its EQ, walks the table bound to the same index, then either reuses an
// identical destination instrument or allocates a fresh slot. Cycles via
// NXT/INS simply do not re-descend.
func (a *allocatorState) touchInstrument(instrIx int) error {
	if instrIx < 0 || instrIx >= m8.NumInstruments || a.doneInstruments[instrIx] {
		return nil
	}
	if a.onStackInstruments[instrIx] {
		return nil
	}
	a.onStackInstruments[instrIx] = true

	instr := a.from.Instruments[instrIx]

	if equ, ok := instr.Equ(); ok {
		eqIx := int(equ)
		if eqIx < len(a.doneEQs) && !a.doneEQs[eqIx] {
			// before the 128-EQ firmware there were only 32 shared EQs, so
			// keeping them aligned with instrument numbers makes no sense
			isInstrumentEQ := a.from.Version.After(m8.Firmware4_1) && eqIx == instrIx
			if err := a.allocateEQ(eqIx, isInstrumentEQ); err != nil {
				return err
			}
		}
		// the dedup search below must compare the instrument as it will
		// land in the destination, EQ field included
		if eqIx < len(a.eqs.Dest) {
			instr.SetEQ(a.eqs.Dest[eqIx])
		}
	}

	if err := a.touchTable(instrIx); err != nil {
		return err
	}

	a.doneInstruments[instrIx] = true

	for toIx := range a.to.Instruments {
		if a.to.Instruments[toIx] == instr {
			a.instruments.Dest[instrIx] = uint8(toIx)
			a.onStackInstruments[instrIx] = false
			return nil
		}
	}

	slot, ok := allocateForward(a.allocatedInstruments, instrIx)
	if !ok {
		return &ExhaustedError{Kind: MoveInstrument, Index: instrIx}
	}
	a.allocatedInstruments[slot] = true
	a.instruments.move(instrIx, slot)

	a.onStackInstruments[instrIx] = false
	return nil
}
