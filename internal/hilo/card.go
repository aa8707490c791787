package hilo

import "fmt"

// suits
type Suit uint8

const (
	SuitHeart Suit = 1 << iota
	SuitDiamond
	SuitClub
	SuitSpade
)

// ranks, in ascending order
type Rank uint8

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

// CardVal is the comparison value of a card, 2 through 14.
type CardVal uint8

type Card struct {
	Name     string
	FullName string
	Suit     Suit
	Rank     Rank
	NumValue CardVal // numeric value of card
}

type Cards []*Card

var rankValueMap = map[Rank]CardVal{
	RankTwo:   2,
	RankThree: 3,
	RankFour:  4,
	RankFive:  5,
	RankSix:   6,
	RankSeven: 7,
	RankEight: 8,
	RankNine:  9,
	RankTen:   10,
	RankJack:  11,
	RankQueen: 12,
	RankKing:  13,
	RankAce:   14,
}

var rankNameMap = map[Rank]string{
	RankTwo:   "2",
	RankThree: "3",
	RankFour:  "4",
	RankFive:  "5",
	RankSix:   "6",
	RankSeven: "7",
	RankEight: "8",
	RankNine:  "9",
	RankTen:   "10",
	RankJack:  "J",
	RankQueen: "Q",
	RankKing:  "K",
	RankAce:   "A",
}

var suitNameMap = map[Suit][]string{
	SuitHeart:   {"♥", "hearts"},
	SuitDiamond: {"♦", "diamonds"},
	SuitClub:    {"♣", "clubs"},
	SuitSpade:   {"♠", "spades"},
}

// RankValue returns the fixed comparison value for rank, or 0 for an
// unknown rank.
func RankValue(rank Rank) CardVal {
	return rankValueMap[rank]
}

// NewCard builds a card with its value and display names filled in.
func NewCard(suit Suit, rank Rank) (*Card, error) {
	card := &Card{Suit: suit, Rank: rank}
	if err := fillCardInfo(card); err != nil {
		return nil, err
	}

	return card, nil
}

// MustCard is NewCard for suit/rank pairs known to be valid.
func MustCard(suit Suit, rank Rank) *Card {
	card, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}

	return card
}

func fillCardInfo(card *Card) error {
	value := RankValue(card.Rank)
	if value == 0 {
		return fmt.Errorf("fillCardInfo: bad rank %d", card.Rank)
	}

	if _, ok := suitNameMap[card.Suit]; !ok {
		return fmt.Errorf("fillCardInfo: bad suit %d", card.Suit)
	}

	name := card.Rank.String()

	card.NumValue = value
	card.Name = name + " " + card.Suit.String()
	card.FullName = name + " of " + card.Suit.Word()

	return nil
}

func (card *Card) Value() int {
	return int(card.NumValue)
}

// IsRed reports whether the card is a heart or a diamond.
func (card *Card) IsRed() bool {
	return card.Suit == SuitHeart || card.Suit == SuitDiamond
}

func (card *Card) String() string {
	if card == nil {
		return "<none>"
	}

	return card.Name
}

func (rank Rank) String() string {
	if name, ok := rankNameMap[rank]; ok {
		return name
	}

	return "?"
}

func (suit Suit) String() string {
	if name, ok := suitNameMap[suit]; ok {
		return name[0]
	}

	return "?"
}

// Word returns the plural English name of the suit, e.g. "hearts".
func (suit Suit) Word() string {
	if name, ok := suitNameMap[suit]; ok {
		return name[1]
	}

	return "?"
}
