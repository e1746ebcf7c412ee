// Package sequencer generates commit identifiers.
//
// An identifier is a fixed-width string over an ordered alphabet of symbols.
// Successive identifiers behave like a counter in a non-standard base: the
// rightmost position is least significant, and a position holding the last
// symbol of the alphabet carries into its left neighbour.
package sequencer

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAlphabet is the rotation order 0 -> 6 -> 1 used for new repositories.
const DefaultAlphabet = "061"

// LegacyAlphabet reproduces the original rotation table (0 -> 6 -> 1 -> c).
// In that table every other symbol resets to '0' and carries, which makes 'c'
// the fourth and maximum symbol of an ordinary counter.
const LegacyAlphabet = "061c"

// DefaultWidth is the number of symbols in a commit id.
const DefaultWidth = 40

// ErrOverflow is returned when every position already holds the maximum symbol.
var ErrOverflow = errors.New("commit id space exhausted")

// ErrInvalidID is returned for ids of the wrong width or with foreign symbols.
var ErrInvalidID = errors.New("invalid commit id")

// Sequencer produces commit ids of a fixed width over an ordered alphabet.
// The zero value is not usable; construct with New.
type Sequencer struct {
	alphabet string
	width    int
	rank     map[byte]int
}

// New creates a Sequencer. The alphabet must hold at least two distinct
// single-byte symbols; width must be positive.
func New(alphabet string, width int) (*Sequencer, error) {
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("alphabet %q: need at least two symbols", alphabet)
	}
	if width <= 0 {
		return nil, fmt.Errorf("id width %d: must be positive", width)
	}

	rank := make(map[byte]int, len(alphabet))
	for i := range len(alphabet) {
		sym := alphabet[i]
		if sym <= ' ' || sym > '~' || sym == '/' || sym == '\\' || sym == '.' {
			return nil, fmt.Errorf("alphabet %q: symbol %q is not allowed in a directory name", alphabet, sym)
		}
		if _, dup := rank[sym]; dup {
			return nil, fmt.Errorf("alphabet %q: duplicate symbol %q", alphabet, sym)
		}
		rank[sym] = i
	}

	return &Sequencer{alphabet: alphabet, width: width, rank: rank}, nil
}

// Default returns the sequencer for DefaultAlphabet and DefaultWidth.
func Default() *Sequencer {
	seq, err := New(DefaultAlphabet, DefaultWidth)
	if err != nil {
		panic(err)
	}
	return seq
}

// Alphabet returns the ordered symbol set.
func (s *Sequencer) Alphabet() string {
	return s.alphabet
}

// Width returns the fixed id length.
func (s *Sequencer) Width() int {
	return s.width
}

// Sentinel returns the all-minimum id that marks "no commits yet".
func (s *Sequencer) Sentinel() string {
	return strings.Repeat(s.alphabet[:1], s.width)
}

// IsSentinel reports whether id is the sentinel.
func (s *Sequencer) IsSentinel(id string) bool {
	return id == s.Sentinel()
}

// Validate returns ErrInvalidID if id is not a well-formed id for this sequencer.
func (s *Sequencer) Validate(id string) error {
	if len(id) != s.width {
		return fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidID, id, len(id), s.width)
	}
	for i := range len(id) {
		if _, ok := s.rank[id[i]]; !ok {
			return fmt.Errorf("%w: %q has symbol %q outside alphabet %q", ErrInvalidID, id, id[i], s.alphabet)
		}
	}
	return nil
}

// Next returns the id that follows current.
func (s *Sequencer) Next(current string) (string, error) {
	if err := s.Validate(current); err != nil {
		return "", err
	}

	maxRank := len(s.alphabet) - 1
	next := []byte(current)
	for i := len(next) - 1; i >= 0; i-- {
		r := s.rank[next[i]]
		if r < maxRank {
			next[i] = s.alphabet[r+1]
			return string(next), nil
		}
		next[i] = s.alphabet[0]
	}
	return "", fmt.Errorf("%w: %q is the last id of width %d", ErrOverflow, current, s.width)
}

// Compare orders two valid ids by sequence position. It returns -1, 0 or +1.
func (s *Sequencer) Compare(a, b string) int {
	for i := range min(len(a), len(b)) {
		ra, rb := s.rank[a[i]], s.rank[b[i]]
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
