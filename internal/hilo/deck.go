package hilo

import math_rand "math/rand"

const DeckSize = 52 // 52 cards in a standard deck

// NewDeck returns all 52 suit/rank pairs, suit-major and rank-minor.
func NewDeck() Cards {
	deck := make(Cards, 0, DeckSize)

	for suit := SuitHeart; suit <= SuitSpade; suit <<= 1 {
		for rank := RankTwo; rank <= RankAce; rank++ {
			deck = append(deck, MustCard(suit, rank))
		}
	}

	return deck
}

// Shuffle returns a Fisher-Yates permutation of deck. deck itself is left
// untouched.
func Shuffle(deck Cards, rng *math_rand.Rand) Cards {
	shuffled := make(Cards, len(deck))
	copy(shuffled, deck)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		// swap
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// NewShuffledDeck is Shuffle(NewDeck(), rng).
func NewShuffledDeck(rng *math_rand.Rand) Cards {
	return Shuffle(NewDeck(), rng)
}

// Pop removes the last card of the deck and returns it. nil is returned
// for an empty deck.
func Pop(deck *Cards) *Card {
	n := len(*deck)
	if n == 0 {
		return nil
	}

	card := (*deck)[n-1]
	*deck = (*deck)[:n-1]

	return card
}
