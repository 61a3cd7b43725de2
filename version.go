package m8

import "fmt"

// Version is the firmware version a song document was written by. It gates
// both the field layout of the entities (most notably the size of the EQ
// table) and the byte codes of several sequencer commands, so it has to be
// consulted before decoding fields or classifying commands.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// Firmware versions at which the song format changed in a way this package
// cares about. The minor/major numbers follow the song file versions, which
// lag slightly behind the firmware marketing versions.
var (
	Firmware3_0 = Version{Major: 3}

	// Firmware4_0 introduced the 3-band EQs.
	Firmware4_0 = Version{Major: 4}

	// Firmware4_1 grew the EQ table from 32 shared entries to one per
	// instrument, plus a few internal EQs at the top of the table.
	Firmware4_1 = Version{Major: 4, Minor: 1}

	Firmware6_0 = Version{Major: 6}

	// Firmware6_1 revised the sequencer command table once more.
	Firmware6_1 = Version{Major: 6, Minor: 1}
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast returns true if the version is major.minor or anything newer.
func (v Version) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// After returns true if the version is other or anything newer. The patch
// number never changes the song format so it is ignored.
func (v Version) After(other Version) bool {
	return v.AtLeast(other.Major, other.Minor)
}
