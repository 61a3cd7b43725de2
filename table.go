package m8

// TableStep is one row of a table: a transpose/velocity pair and up to
// NumFX commands.
type TableStep struct {
	Transpose uint8 `yaml:",omitempty"`
	Velocity  uint8
	FX        [NumFX]FX `yaml:",flow"`
}

// Table is a secondary step sequence. Tables with an index below
// NumInstruments are implicitly bound to the instrument at the same index;
// higher ones stand alone and are addressed via the TBX/TBL commands.
type Table struct {
	Steps [NumSteps]TableStep `yaml:",flow"`
}

// NoVelocity means the step does not change the velocity.
const NoVelocity uint8 = 0xFF

var emptyTableStep = TableStep{Velocity: NoVelocity, FX: [NumFX]FX{emptyFX, emptyFX, emptyFX}}

var emptyTable = func() Table {
	var t Table
	for i := range t.Steps {
		t.Steps[i] = emptyTableStep
	}
	return t
}()

// IsEmpty returns true if no step of the table carries any data.
func (t *Table) IsEmpty() bool {
	return *t == emptyTable
}

// Clear resets every step of the table.
func (t *Table) Clear() {
	*t = emptyTable
}

// Remap returns a copy of the table with every instrument, table and EQ
// reference carried by its commands rewritten through the given index
// maps. Values out of a map's range pass through unchanged, matching how
// the sequencer treats dangling references.
func (t Table) Remap(refs FXRefs, instr, table, eq []uint8) Table {
	for i := range t.Steps {
		for j, fx := range t.Steps[i].FX {
			t.Steps[i].FX[j] = fx.remap(refs, instr, table, eq)
		}
	}
	return t
}

func (f FX) remap(refs FXRefs, instr, table, eq []uint8) FX {
	if f.IsEmpty() {
		return f
	}
	switch {
	case refs.Instrument.Contains(f.Command):
		if int(f.Value) < len(instr) {
			f.Value = instr[f.Value]
		}
	case refs.Table.Contains(f.Command):
		if int(f.Value) < len(table) {
			f.Value = table[f.Value]
		}
	case refs.EQ.Contains(f.Command):
		if int(f.Value) < len(eq) {
			f.Value = eq[f.Value]
		}
	}
	return f
}
