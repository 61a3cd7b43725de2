package remap

import (
	"testing"

	"github.com/m8tools/m8"
)

// A moved table whose destination equals its source index must still get
// its references rewritten, since tables have no global rewrite pass.
func TestRenumberRewritesIdentityMovedTable(t *testing.T) {
	song := m8.NewSong(m8.Firmware4_0)
	names := m8.FXCommandNames(song.Version)
	refs := m8.FXRefs{
		Instrument: names.FindIndices(instrumentTrackingCommands),
		Table:      names.FindIndices(tableTrackingCommands),
		EQ:         names.FindIndices(eqTrackingCommands),
	}
	song.Tables[0x81].Steps[0].FX[0] = m8.FX{Command: refs.Instrument[0], Value: 3}

	r := &Remapper{
		EQs:         identityMapping(song.EQCount()),
		Instruments: identityMapping(m8.NumInstruments),
		Tables:      identityMapping(m8.NumTables),
		Phrases:     identityMapping(m8.NumPhrases),
		Chains:      identityMapping(m8.NumChains),
		refs:        refs,
	}
	r.Instruments.move(3, 9)
	r.Tables.move(0x81, 0x81)

	r.Renumber(song)
	if got := song.Tables[0x81].Steps[0].FX[0].Value; got != 9 {
		t.Fatalf("reference in the identity-moved table not rewritten, got %v", got)
	}
	if song.Tables[0x81].IsEmpty() {
		t.Fatalf("an identity-moved table must not be cleared")
	}
}
