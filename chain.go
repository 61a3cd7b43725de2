package m8

// NoPhrase marks an unused chain step.
const NoPhrase uint8 = 0xFF

// ChainStep is one row of a chain: which phrase to play, transposed by how
// many semitones.
type ChainStep struct {
	Phrase    uint8
	Transpose uint8 `yaml:",omitempty"`
}

// Chain is an ordered sequence of (phrase, transpose) steps; the play-order
// grid of the song references chains by index, and chains are what the
// remapping engine takes as its roots.
type Chain struct {
	Steps [NumSteps]ChainStep `yaml:",flow"`
}

var emptyChain = func() Chain {
	var c Chain
	for i := range c.Steps {
		c.Steps[i] = ChainStep{Phrase: NoPhrase}
	}
	return c
}()

// IsEmpty returns true if no step of the chain references a phrase.
func (c *Chain) IsEmpty() bool {
	return *c == emptyChain
}

// Clear resets every step of the chain.
func (c *Chain) Clear() {
	*c = emptyChain
}

// Remap returns a copy of the chain with every phrase reference rewritten
// through the given index map.
func (c Chain) Remap(phrase []uint8) Chain {
	for i := range c.Steps {
		if int(c.Steps[i].Phrase) < len(phrase) {
			c.Steps[i].Phrase = phrase[c.Steps[i].Phrase]
		}
	}
	return c
}
