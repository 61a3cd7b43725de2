package m8_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/m8tools/m8"
)

func TestNewSongEQTableSize(t *testing.T) {
	tests := []struct {
		version  m8.Version
		eqs      int
		instrEQs int
	}{
		{m8.Firmware3_0, 0, 0},
		{m8.Firmware4_0, 32, 32},
		{m8.Firmware4_1, 132, 128},
		{m8.Firmware6_1, 132, 128},
	}
	for _, test := range tests {
		song := m8.NewSong(test.version)
		if song.EQCount() != test.eqs {
			t.Errorf("%v: EQCount %v, expected %v", test.version, song.EQCount(), test.eqs)
		}
		if song.InstrumentEQCount() != test.instrEQs {
			t.Errorf("%v: InstrumentEQCount %v, expected %v", test.version, song.InstrumentEQCount(), test.instrEQs)
		}
	}
}

func TestNewSongStartsEmpty(t *testing.T) {
	song := m8.NewSong(m8.Firmware6_1)
	for i := range song.Instruments {
		if !song.Instruments[i].IsEmpty() {
			t.Fatalf("instrument %v should start empty", i)
		}
	}
	for i := range song.Tables {
		if !song.Tables[i].IsEmpty() {
			t.Fatalf("table %v should start empty", i)
		}
	}
	for i := range song.Phrases {
		if !song.Phrases[i].IsEmpty() {
			t.Fatalf("phrase %v should start empty", i)
		}
	}
	for i := range song.Chains {
		if !song.Chains[i].IsEmpty() {
			t.Fatalf("chain %v should start empty", i)
		}
	}
	for i := range song.Steps {
		for j, chain := range song.Steps[i] {
			if chain != m8.NoChain {
				t.Fatalf("song step %v/%v should start unused", i, j)
			}
		}
	}
}

func TestSongCopyIsIndependent(t *testing.T) {
	song := m8.NewSong(m8.Firmware4_1)
	song.EQs[3].Low.Level = 0x10
	copied := song.Copy()
	song.EQs[3].Low.Level = 0x20
	if copied.EQs[3].Low.Level != 0x10 {
		t.Fatalf("mutating the original leaked into the copy")
	}
	if song.Equal(&copied) {
		t.Fatalf("songs should now differ")
	}
}

func TestSongEqual(t *testing.T) {
	a := m8.NewSong(m8.Firmware4_0)
	b := m8.NewSong(m8.Firmware4_0)
	if !a.Equal(b) {
		t.Fatalf("two fresh songs should be equal")
	}
	b.Phrases[7].Steps[0].Note = 0x40
	if a.Equal(b) {
		t.Fatalf("songs with different phrases should not be equal")
	}
}

func TestSongYAMLRoundTrip(t *testing.T) {
	song := m8.NewSong(m8.Firmware4_0)
	song.Name = "DEMO"
	song.Tempo = 128
	song.Instruments[2] = m8.Instrument{Kind: m8.KindMacroSynth, Name: "BASS", EQ: 0x01}
	song.Phrases[0].Steps[0].Note = 0x30
	song.Chains[0].Steps[0].Phrase = 0
	song.Steps[0][0] = 0

	contents, err := yaml.Marshal(song)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var read m8.Song
	if err := yaml.Unmarshal(contents, &read); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !song.Equal(&read) {
		t.Fatalf("song changed in the yaml round trip")
	}
}
