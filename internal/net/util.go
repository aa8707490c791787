package net

import (
	"github.com/bkazemi/gohilo/internal/round"
)

var netActionToGuess map[NetAction]round.Guess

func init() {
	netActionToGuess = map[NetAction]round.Guess{
		NetDataGuessHigher: round.GuessHigher,
		NetDataGuessLower:  round.GuessLower,
	}
}

func NetActionToGuess(netAction NetAction) (round.Guess, bool) {
	guess, ok := netActionToGuess[netAction]

	return guess, ok
}

func GuessToNetAction(guess round.Guess) NetAction {
	for action, g := range netActionToGuess {
		if g == guess {
			return action
		}
	}

	return 0
}
