package round

import (
	"github.com/bkazemi/gohilo/internal/controlState"
	"github.com/bkazemi/gohilo/internal/hilo"
)

// CardFace is one card slot as a front-end should draw it.
type CardFace struct {
	Card   *hilo.Card
	FaceUp bool
}

// Label is the card name, or "?" for a face-down or empty slot.
func (f CardFace) Label() string {
	if !f.FaceUp || f.Card == nil {
		return "?"
	}
	return f.Card.Name
}

// View is the read-only picture of a session handed to front-ends.
type View struct {
	Phase     Phase
	Score     int
	HighScore int
	Remaining int
	Message   string
	Current   CardFace
	Next      CardFace
	Controls  controlState.ControlState
}

func (s *State) View() View {
	return View{
		Phase:     s.Phase(),
		Score:     s.Score,
		HighScore: s.HighScore,
		Remaining: len(s.Deck),
		Message:   s.Message,
		Current: CardFace{
			Card:   s.CurrentCard,
			FaceUp: s.CurrentCard != nil,
		},
		Next: CardFace{
			Card:   s.NextCard,
			FaceUp: s.NextCard != nil && (s.Revealing || s.GameOver),
		},
		Controls: controlState.For(s.GameOver, s.Revealing, s.CurrentCard != nil),
	}
}
