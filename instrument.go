package m8

// InstrumentKind tags the synth engine variant of an instrument. The values
// are the wire tags of the song format; KindNone (an unused instrument
// slot) is 0xFF on the wire, which is why NewSong has to initialize the
// instrument table instead of relying on zero values.
type InstrumentKind uint8

const (
	KindWavSynth   InstrumentKind = 0x00
	KindMacroSynth InstrumentKind = 0x01
	KindSampler    InstrumentKind = 0x02
	KindMIDIOut    InstrumentKind = 0x03
	KindFMSynth    InstrumentKind = 0x04
	KindHyperSynth InstrumentKind = 0x05
	KindExternal   InstrumentKind = 0x06
	KindNone       InstrumentKind = 0xFF
)

// NoEQ in the EQ field means the instrument has no EQ of its own.
const NoEQ uint8 = 0xFF

func (k InstrumentKind) String() string {
	switch k {
	case KindWavSynth:
		return "WAVSYNTH"
	case KindMacroSynth:
		return "MACROSYN"
	case KindSampler:
		return "SAMPLER"
	case KindMIDIOut:
		return "MIDI OUT"
	case KindFMSynth:
		return "FMSYNTH"
	case KindHyperSynth:
		return "HYPERSYN"
	case KindExternal:
		return "EXTERNAL"
	case KindNone:
		return "NONE"
	}
	return "UNKNOWN"
}

// Instrument is one slot of the instrument table: a kind tag, the settings
// shared by all kinds, and the raw kind-specific parameter block. The
// per-kind field layouts are the codec's business; keeping the block as
// plain bytes keeps the struct comparable, which is what the remapping
// engine needs for structural-equality deduplication.
type Instrument struct {
	Kind      InstrumentKind
	Name      string `yaml:",omitempty"`
	Transpose bool   `yaml:",omitempty"`
	TableTick uint8  `yaml:",omitempty"`

	// EQ is the index of the instrument's associated EQ, or NoEQ.
	EQ uint8

	// Params is the kind-specific parameter block: synth, filter, amp and
	// modulation bytes in wire order.
	Params [24]uint8 `yaml:",flow"`
}

// emptyInstrument is the canonical unused slot.
var emptyInstrument = Instrument{Kind: KindNone, EQ: NoEQ}

// IsEmpty returns true if the slot holds no instrument.
func (i *Instrument) IsEmpty() bool {
	return i.Kind == KindNone
}

// Clear resets the slot to an unused instrument.
func (i *Instrument) Clear() {
	*i = emptyInstrument
}

// Equ returns the index of the instrument's associated EQ, if it has one.
// MIDI out instruments have no EQ stage at all.
func (i *Instrument) Equ() (uint8, bool) {
	if i.Kind == KindNone || i.Kind == KindMIDIOut || i.EQ == NoEQ {
		return 0, false
	}
	return i.EQ, true
}

// SetEQ rewrites the associated EQ index.
func (i *Instrument) SetEQ(eq uint8) {
	i.EQ = eq
}
