package m8

// EQBand is one band of a 3-band EQ: filter mode, center/corner frequency,
// gain and bandwidth. The values are the raw byte parameters of the
// hardware; this package never interprets them, it only compares and moves
// them around.
type EQBand struct {
	Mode  uint8 `yaml:",omitempty"`
	Freq  uint8 `yaml:",omitempty"`
	Level uint8 `yaml:",omitempty"`
	Q     uint8 `yaml:",omitempty"`
}

// EQ is a 3-band filter parameter block, optionally shared between several
// instruments and addressable from phrases via the EQI/EQM commands.
type EQ struct {
	Low  EQBand
	Mid  EQBand
	High EQBand
}

// IsEmpty returns true if every band is still at its zero defaults.
func (e EQ) IsEmpty() bool {
	return e == EQ{}
}

// Clear resets every band to its zero defaults.
func (e *EQ) Clear() {
	*e = EQ{}
}
