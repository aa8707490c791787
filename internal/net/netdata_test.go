package net

import (
	"errors"
	"testing"

	"github.com/bkazemi/gohilo/internal/controlState"
	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/round"
)

func TestAction(t *testing.T) {
	tests := []struct {
		netData NetData
		want    NetAction
	}{
		{NetData{Request: NetDataGuessLower}, NetDataGuessLower},
		{NetData{Intent: "higher"}, NetDataGuessHigher},
		{NetData{Intent: "lower"}, NetDataGuessLower},
		{NetData{Intent: "playAgain"}, NetDataPlayAgain},
		{NetData{Request: NetDataPlayAgain, Intent: "higher"}, NetDataPlayAgain},
		{NetData{Intent: "h"}, NetDataGuessHigher},
		{NetData{Intent: " LOWER "}, NetDataGuessLower},
		{NetData{Intent: "bogus"}, 0},
		{NetData{}, 0},
	}

	for _, tt := range tests {
		if got := tt.netData.Action(); got != tt.want {
			t.Errorf("%+v.Action() = %v, want %v", tt.netData, got, tt.want)
		}
	}
}

func TestNetActionToGuess(t *testing.T) {
	if g, ok := NetActionToGuess(NetDataGuessHigher); !ok || g != round.GuessHigher {
		t.Errorf("GuessHigher => %v, %v", g, ok)
	}
	if g, ok := NetActionToGuess(NetDataGuessLower); !ok || g != round.GuessLower {
		t.Errorf("GuessLower => %v, %v", g, ok)
	}
	if _, ok := NetActionToGuess(NetDataPlayAgain); ok {
		t.Error("PlayAgain is not a guess")
	}
}

func TestNewViewData(t *testing.T) {
	queen := hilo.MustCard(hilo.SuitDiamond, hilo.RankQueen)
	two := hilo.MustCard(hilo.SuitSpade, hilo.RankTwo)

	view := round.View{
		Phase:     round.PhaseRevealing,
		Score:     3,
		HighScore: 7,
		Remaining: 40,
		Message:   round.DrawingMessage,
		Current:   round.CardFace{Card: queen, FaceUp: true},
		Next:      round.CardFace{Card: two, FaceUp: false},
		Controls:  controlState.None,
	}

	data := NewViewData(view)

	if data.Phase != "revealing" || data.Score != 3 || data.HighScore != 7 || data.Remaining != 40 {
		t.Errorf("data = %+v", data)
	}
	if data.Current != (CardData{Label: queen.Name, Rank: "Q", Suit: "♦", Red: true, FaceUp: true}) {
		t.Errorf("Current = %+v", data.Current)
	}
	if data.Next != (CardData{Label: "?"}) {
		t.Errorf("hidden card leaked: %+v", data.Next)
	}
	if len(data.Controls) != 0 {
		t.Errorf("Controls = %v, want none", data.Controls)
	}
}

func TestNetActionToString(t *testing.T) {
	if s := (&NetData{Response: NetDataServerClosed}).NetActionToString(); s != "NetDataServerClosed" {
		t.Errorf("got %q", s)
	}
	if s := (&NetData{Request: NetDataGuessHigher, Response: NetDataView}).NetActionToString(); s != "NetDataGuessHigher" {
		t.Errorf("request should win, got %q", s)
	}
	var nilData *NetData
	if s := nilData.NetActionToString(); s != "netData == nil" {
		t.Errorf("got %q", s)
	}
}

func TestNeedsView(t *testing.T) {
	if !(&NetData{Response: NetDataView}).NeedsView() {
		t.Error("View frames carry a view")
	}
	if (&NetData{Response: NetDataServerMsg}).NeedsView() {
		t.Error("ServerMsg frames carry no view")
	}
}

func TestGuessToNetAction(t *testing.T) {
	for _, guess := range []round.Guess{round.GuessHigher, round.GuessLower} {
		action := GuessToNetAction(guess)
		if back, ok := NetActionToGuess(action); !ok || back != guess {
			t.Errorf("%s => %v => %v, %v", guess, action, back, ok)
		}
	}
	if GuessToNetAction(round.Guess(0)) != 0 {
		t.Error("invalid guess should map to no action")
	}
}

func TestEncodeRejectsViewlessFrames(t *testing.T) {
	for _, res := range []NetAction{NetDataNewConn, NetDataView} {
		if _, err := (&NetData{Response: res}).Encode(); !errors.Is(err, errMissingView) {
			t.Errorf("%v without view: err = %v, want errMissingView", res, err)
		}
	}

	withView := &NetData{Response: NetDataView, View: NewViewData(round.View{})}
	b, err := withView.Encode()
	if err != nil {
		t.Fatalf("Encode err: %v", err)
	}
	back, err := DecodeNetData(b)
	if err != nil || back.View == nil || back.View.Phase != "idle" {
		t.Fatalf("decoded %+v, %v", back, err)
	}

	if _, err := (&NetData{Response: NetDataServerMsg, Msg: "hi"}).Encode(); err != nil {
		t.Fatalf("ServerMsg needs no view, got %v", err)
	}
}
