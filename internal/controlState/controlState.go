package controlState

import "strings"

// ControlState is the set of player controls a front-end should offer.
type ControlState uint64

const (
	GuessHigher ControlState = 1 << iota
	GuessLower
	PlayAgain
)

const None ControlState = 0

var controlNames = []struct {
	state ControlState
	name  string
}{
	{GuessHigher, "higher"},
	{GuessLower, "lower"},
	{PlayAgain, "play again"},
}

// For returns the enabled controls for a game in the given condition.
// Guessing needs a settled round with a face-up card; play again is only
// offered once the game has ended.
func For(gameOver, revealing, hasCard bool) ControlState {
	if gameOver {
		return PlayAgain
	}
	if revealing || !hasCard {
		return None
	}

	return GuessHigher | GuessLower
}

func (cs ControlState) Has(flag ControlState) bool {
	return cs&flag == flag
}

func (cs ControlState) String() string {
	if cs == None {
		return "none"
	}

	names := make([]string, 0, len(controlNames))
	for _, c := range controlNames {
		if cs.Has(c.state) {
			names = append(names, c.name)
		}
	}

	return strings.Join(names, "|")
}
