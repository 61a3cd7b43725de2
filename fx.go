package m8

// FX is a single effect command/value pair in a phrase or table step.
// Command is a byte code into the version-dependent command table; Value is
// the command argument, which for a handful of commands is an index into
// another entity table (see FindIndices and the remap package).
type FX struct {
	Command uint8
	Value   uint8 `yaml:",omitempty"`
}

// FXNone marks an unused command slot.
const FXNone uint8 = 0xFF

var emptyFX = FX{Command: FXNone}

// IsEmpty returns true if the command slot is unused.
func (f FX) IsEmpty() bool {
	return f.Command == FXNone
}

// CommandNames is the ordered command-name table of one firmware version:
// the byte code of a command is simply its position in the table.
type CommandNames []string

// CommandSet is a set of command byte codes, typically all the codes that
// carry one particular reference semantic ("these commands name an
// instrument"). The sets are tiny so a slice beats an actual set.
type CommandSet []uint8

// Contains returns true if the byte code is in the set.
func (c CommandSet) Contains(cmd uint8) bool {
	for _, v := range c {
		if v == cmd {
			return true
		}
	}
	return false
}

// FindIndices returns the byte codes of the given command names, in code
// order. Names not present in the table are silently skipped, as not every
// command exists in every firmware version.
func (c CommandNames) FindIndices(names []string) CommandSet {
	var set CommandSet
	for i, have := range c {
		for _, want := range names {
			if have == want {
				set = append(set, uint8(i))
				break
			}
		}
	}
	return set
}

// FXRefs is the classification of the reference-carrying commands of one
// firmware version: which byte codes name an instrument, a table or an EQ.
// It is resolved once per document version and passed around, since the
// codes of the same commands shift between firmware revisions.
type FXRefs struct {
	Instrument CommandSet
	Table      CommandSet
	EQ         CommandSet
}

// The command tables below grow strictly by insertion and appending between
// firmware revisions; the relative order of the surviving commands never
// changes. Keep the blocks vertical, the position of every name is a wire
// byte code.

var seqCommandNames = [...]string{
	"ARP",
	"CHA",
	"DEL",
	"GRV",
	"HOP",
	"KIL",
	"RAN",
	"RET",
	"REP",
	"NTH",
	"PSL",
	"PBN",
	"PVB",
	"PVX",
	"SCA",
	"SCG",
	"SED",
	"SNG",
	"TBX",
	"TIC",
	"TPO",
	"TSP",
}

var mixerCommandNames = [...]string{
	"VMV",
	"XCM",
	"XCF",
	"XCW",
	"XCR",
	"XDT",
	"XDF",
	"XDW",
	"XDR",
	"XRS",
	"XRD",
	"XRM",
	"XRF",
	"XRW",
	"XRZ",
	"VCH",
	"VCD",
	"VRE",
	"VT1",
	"VT2",
	"VT3",
	"VT4",
	"VT5",
	"VT6",
	"VT7",
	"VT8",
	"DJF",
	"IVO",
	"ICH",
	"IDE",
	"IRE",
	"USB",
}

var instCommandNames = [...]string{
	"VOL",
	"PIT",
	"FIN",
	"FLT",
	"CUT",
	"RES",
	"AMP",
	"LIM",
	"PAN",
	"DRY",
	"SCH",
	"SDL",
	"SRV",
	"INS",
	"NXT",
	"TBL",
}

// FXCommandNames returns the full ordered command-name table of the given
// firmware version: sequencer commands, then mixer commands, then the
// commands shared by all instrument kinds. Firmware 6.0 inserted RNL in the
// middle of the sequencer block, which is why every later code shifts and
// the table must be re-resolved per document version.
func FXCommandNames(v Version) CommandNames {
	names := make(CommandNames, 0, len(seqCommandNames)+len(mixerCommandNames)+len(instCommandNames)+4)
	for _, n := range seqCommandNames {
		names = append(names, n)
		if n == "RAN" && v.AtLeast(6, 0) {
			names = append(names, "RNL")
		}
	}
	names = append(names, mixerCommandNames[:]...)
	names = append(names, instCommandNames[:]...)
	if v.After(Firmware4_0) {
		names = append(names, "EQI", "EQM")
	}
	if v.AtLeast(6, 1) {
		names = append(names, "OTT")
	}
	return names
}
