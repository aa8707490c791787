package round

import (
	"fmt"
	"strings"

	"github.com/bkazemi/gohilo/internal/hilo"
)

const (
	DefaultMessage    = "Guess Higher or Lower!"
	DrawingMessage    = "Drawing next card..."
	WinMessage        = "Correct! Keep going!"
	LoseMessage       = "Wrong guess! Game Over."
	EmptyDeckMessage  = "No more cards! Deck shuffled for a new game."
	InitErrorMessage  = "Error: Could not create initial deck."
	RoundErrorMessage = "An error occurred. Please restart."
)

type Guess uint8

const (
	GuessHigher Guess = iota + 1
	GuessLower
)

func (g Guess) String() string {
	switch g {
	case GuessHigher:
		return "higher"
	case GuessLower:
		return "lower"
	}
	return "invalid"
}

func (g Guess) valid() bool {
	return g == GuessHigher || g == GuessLower
}

func ParseGuess(s string) (Guess, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "higher", "high", "h":
		return GuessHigher, nil
	case "lower", "low", "l":
		return GuessLower, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadGuess, s)
}

// Correct reports whether guess holds for drawn against current. Equal
// values lose in both directions.
func Correct(guess Guess, current, drawn *hilo.Card) bool {
	switch guess {
	case GuessHigher:
		return drawn.NumValue > current.NumValue
	case GuessLower:
		return drawn.NumValue < current.NumValue
	}
	return false
}

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAwaitingGuess
	PhaseRevealing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingGuess:
		return "awaiting guess"
	case PhaseRevealing:
		return "revealing"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// State is everything a game session knows. The zero value is an idle
// session that has not been dealt yet.
type State struct {
	Deck        hilo.Cards
	CurrentCard *hilo.Card
	NextCard    *hilo.Card // only set while a drawn card is on show
	Score       int
	HighScore   int
	Message     string
	GameOver    bool
	Revealing   bool
}

func (s *State) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Revealing:
		return PhaseRevealing
	case s.CurrentCard != nil:
		return PhaseAwaitingGuess
	}
	return PhaseIdle
}

// Reset deals a new game from deck. HighScore is kept.
func (s *State) Reset(deck hilo.Cards) {
	first := hilo.Pop(&deck)
	if first == nil {
		s.Message = InitErrorMessage
		s.GameOver = true
		s.Revealing = false
		return
	}

	s.Deck = deck
	s.CurrentCard = first
	s.NextCard = nil
	s.Score = 0
	s.Message = DefaultMessage
	s.GameOver = false
	s.Revealing = false
}

// DrawNextCard pops the tail card of the deck. On an empty deck the game
// ends, both card slots are cleared and nil is returned.
func (s *State) DrawNextCard() *hilo.Card {
	if len(s.Deck) == 0 {
		s.endEmptyDeck()
		return nil
	}

	return hilo.Pop(&s.Deck)
}

func (s *State) endEmptyDeck() {
	s.Message = EmptyDeckMessage
	s.GameOver = true
	s.Revealing = false
	s.CurrentCard = nil
	s.NextCard = nil
}

// CanGuess returns the reason a guess would be ignored right now, if any.
func (s *State) CanGuess() error {
	switch {
	case s.GameOver:
		return ErrGameOver
	case s.Revealing:
		return ErrRevealing
	case s.CurrentCard == nil:
		return ErrNoCard
	}
	return nil
}

// raiseHighScore lifts HighScore to Score and reports whether it moved.
func (s *State) raiseHighScore() bool {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		return true
	}
	return false
}

// clone copies s so callers can't reach the live deck.
func (s *State) clone() State {
	c := *s
	c.Deck = make(hilo.Cards, len(s.Deck))
	copy(c.Deck, s.Deck)
	return c
}
