package m8

// NoNote and NoInstrument mark unused step columns.
const (
	NoNote       uint8 = 0xFF
	NoInstrument uint8 = 0xFF
)

// PhraseStep is one row of a phrase: note, velocity, instrument and up to
// NumFX commands.
type PhraseStep struct {
	Note       uint8
	Velocity   uint8
	Instrument uint8
	FX         [NumFX]FX `yaml:",flow"`
}

// Phrase is an ordered sequence of note steps, referenced from chain steps
// by index.
type Phrase struct {
	Steps [NumSteps]PhraseStep `yaml:",flow"`
}

var emptyPhraseStep = PhraseStep{
	Note:       NoNote,
	Velocity:   NoVelocity,
	Instrument: NoInstrument,
	FX:         [NumFX]FX{emptyFX, emptyFX, emptyFX},
}

var emptyPhrase = func() Phrase {
	var p Phrase
	for i := range p.Steps {
		p.Steps[i] = emptyPhraseStep
	}
	return p
}()

// IsEmpty returns true if no step of the phrase carries any data.
func (p *Phrase) IsEmpty() bool {
	return *p == emptyPhrase
}

// Clear resets every step of the phrase.
func (p *Phrase) Clear() {
	*p = emptyPhrase
}

// Remap returns a copy of the phrase with the instrument column and every
// instrument, table and EQ reference carried by its commands rewritten
// through the given index maps.
func (p Phrase) Remap(refs FXRefs, instr, table, eq []uint8) Phrase {
	for i := range p.Steps {
		if int(p.Steps[i].Instrument) < len(instr) {
			p.Steps[i].Instrument = instr[p.Steps[i].Instrument]
		}
		for j, fx := range p.Steps[i].FX {
			p.Steps[i].FX[j] = fx.remap(refs, instr, table, eq)
		}
	}
	return p
}
