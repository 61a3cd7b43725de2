// Package m8 models decoded song documents of the M8 hardware tracker: a
// closed set of fixed-capacity entity tables (EQs, instruments, tables,
// phrases, chains) connected by numeric index references, plus the
// play-order grid and the firmware version that wrote the file. The binary
// codec lives elsewhere; this package only represents, compares and
// rewrites the decoded model, and the remap subpackage moves entities
// between documents.
package m8

import "slices"

// Capacities of the entity namespaces. These are fixed by the hardware;
// only the EQ table size depends on the firmware version.
const (
	NumInstruments = 128
	NumTables      = 256
	NumPhrases     = 255
	NumChains      = 255
	NumSongRows    = 256
	NumTracks      = 8
	NumSteps       = 16
	NumFX          = 3

	// NumEQs is the shared EQ pool of firmware 4.0; NumInstrumentEQs is the
	// per-instrument pool of firmware 4.1 and later, which additionally
	// carries numInternalEQs fixed slots at the top of the table.
	NumEQs           = 32
	NumInstrumentEQs = 128
	numInternalEQs   = 4
)

// NoChain marks an unused cell of the play-order grid.
const NoChain uint8 = 0xFF

// Song is a fully decoded song document. All entity tables have fixed
// capacity; unused slots hold the canonical empty entity, so structural
// comparison over slots is always meaningful.
type Song struct {
	Version Version
	Name    string `yaml:",omitempty"`

	Tempo     float32 `yaml:",omitempty"`
	Transpose uint8   `yaml:",omitempty"`
	Quantize  uint8   `yaml:",omitempty"`
	Key       uint8   `yaml:",omitempty"`

	// Steps is the play-order grid: NumSongRows rows of one chain index
	// (or NoChain) per track.
	Steps [NumSongRows][NumTracks]uint8 `yaml:",flow"`

	// EQs has 0, NumEQs or NumInstrumentEQs+4 entries depending on
	// Version; use NewSong to get the right size.
	EQs []EQ

	Instruments [NumInstruments]Instrument
	Tables      [NumTables]Table
	Phrases     [NumPhrases]Phrase
	Chains      [NumChains]Chain
}

// NewSong returns an empty song document for the given firmware version,
// with every table slot initialized to its canonical empty entity and the
// EQ table sized for the version.
func NewSong(version Version) *Song {
	s := &Song{Version: version}
	switch {
	case version.After(Firmware4_1):
		s.EQs = make([]EQ, NumInstrumentEQs+numInternalEQs)
	case version.After(Firmware4_0):
		s.EQs = make([]EQ, NumEQs)
	}
	for i := range s.Steps {
		for j := range s.Steps[i] {
			s.Steps[i][j] = NoChain
		}
	}
	for i := range s.Instruments {
		s.Instruments[i] = emptyInstrument
	}
	for i := range s.Tables {
		s.Tables[i] = emptyTable
	}
	for i := range s.Phrases {
		s.Phrases[i] = emptyPhrase
	}
	for i := range s.Chains {
		s.Chains[i] = emptyChain
	}
	return s
}

// EQCount returns the size of the song's EQ table, internal slots included.
func (s *Song) EQCount() int {
	return len(s.EQs)
}

// InstrumentEQCount returns the number of EQ slots instruments may refer
// to, excluding the internal slots at the top of the 4.1+ table.
func (s *Song) InstrumentEQCount() int {
	if s.Version.After(Firmware4_1) {
		return len(s.EQs) - numInternalEQs
	}
	return len(s.EQs)
}

// Copy makes a deep copy of the song.
func (s *Song) Copy() Song {
	c := *s
	c.EQs = append([]EQ(nil), s.EQs...)
	return c
}

// Equal compares two songs structurally, field by field.
func (s *Song) Equal(other *Song) bool {
	if s.Version != other.Version || s.Name != other.Name ||
		s.Tempo != other.Tempo || s.Transpose != other.Transpose ||
		s.Quantize != other.Quantize || s.Key != other.Key {
		return false
	}
	return s.Steps == other.Steps &&
		slices.Equal(s.EQs, other.EQs) &&
		s.Instruments == other.Instruments &&
		s.Tables == other.Tables &&
		s.Phrases == other.Phrases &&
		s.Chains == other.Chains
}
