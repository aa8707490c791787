package net

import (
	"errors"
	"fmt"

	"github.com/bkazemi/gohilo/internal/controlState"
	"github.com/bkazemi/gohilo/internal/round"

	"github.com/vmihailenco/msgpack/v5"
)

// requests/responses sent between the browser and the server
type NetAction uint64

const (
	NetDataClose NetAction = 1 << iota
	NetDataNewConn
	NetDataClientExited

	NetDataView

	NetDataGuessHigher
	NetDataGuessLower
	NetDataPlayAgain

	NetDataServerMsg
	NetDataServerClosed
	NetDataBadRequest
)

const NetActionNeedsViewBitMask = (NetDataNewConn | NetDataView)

const NetActionIntentBitMask = (NetDataGuessHigher | NetDataGuessLower | NetDataPlayAgain)

var netActionStringMap = map[NetAction]string{
	NetDataClose:        "NetDataClose",
	NetDataNewConn:      "NetDataNewConn",
	NetDataClientExited: "NetDataClientExited",

	NetDataView: "NetDataView",

	NetDataGuessHigher: "NetDataGuessHigher",
	NetDataGuessLower:  "NetDataGuessLower",
	NetDataPlayAgain:   "NetDataPlayAgain",

	NetDataServerMsg:    "NetDataServerMsg",
	NetDataServerClosed: "NetDataServerClosed",
	NetDataBadRequest:   "NetDataBadRequest",
}

// the only string intent that is not a guess
const intentPlayAgain = "playAgain"

// CardData is a card slot as the page draws it.
type CardData struct {
	Label  string `msgpack:"label"`
	Rank   string `msgpack:"rank"`
	Suit   string `msgpack:"suit"`
	Red    bool   `msgpack:"red"`
	FaceUp bool   `msgpack:"faceUp"`
}

// ViewData is the wire form of a round.View.
type ViewData struct {
	Phase     string   `msgpack:"phase"`
	Score     int      `msgpack:"score"`
	HighScore int      `msgpack:"highScore"`
	Remaining int      `msgpack:"remaining"`
	Message   string   `msgpack:"message"`
	Current   CardData `msgpack:"current"`
	Next      CardData `msgpack:"next"`
	Controls  []string `msgpack:"controls"`
}

// data that gets sent between the browser and the server
type NetData struct {
	Request  NetAction `msgpack:"request"`
	Response NetAction `msgpack:"response"`
	Intent   string    `msgpack:"intent,omitempty"` // alternative to Request for intents
	Msg      string    `msgpack:"msg,omitempty"`

	View *ViewData `msgpack:"view,omitempty"`
}

func cardData(face round.CardFace) CardData {
	data := CardData{
		Label:  face.Label(),
		FaceUp: face.FaceUp && face.Card != nil,
	}

	if data.FaceUp {
		data.Rank = face.Card.Rank.String()
		data.Suit = face.Card.Suit.String()
		data.Red = face.Card.IsRed()
	}

	return data
}

func NewViewData(view round.View) *ViewData {
	controls := make([]string, 0, 3)
	for _, flag := range []struct {
		cs   controlState.ControlState
		name string
	}{
		{controlState.GuessHigher, "higher"},
		{controlState.GuessLower, "lower"},
		{controlState.PlayAgain, intentPlayAgain},
	} {
		if view.Controls.Has(flag.cs) {
			controls = append(controls, flag.name)
		}
	}

	return &ViewData{
		Phase:     view.Phase.String(),
		Score:     view.Score,
		HighScore: view.HighScore,
		Remaining: view.Remaining,
		Message:   view.Message,
		Current:   cardData(view.Current),
		Next:      cardData(view.Next),
		Controls:  controls,
	}
}

// NeedsView reports whether the response must carry a view.
func (netData *NetData) NeedsView() bool {
	return netData.Response&NetActionNeedsViewBitMask != 0
}

// Action is the request the client made, resolving a string intent when
// no numeric request was sent.
func (netData *NetData) Action() NetAction {
	if netData.Request != 0 {
		return netData.Request
	}

	if netData.Intent == intentPlayAgain {
		return NetDataPlayAgain
	}

	if guess, err := round.ParseGuess(netData.Intent); err == nil {
		return GuessToNetAction(guess)
	}

	return 0
}

// return the string representation of a NetAction
func (netData *NetData) NetActionToString() string {
	if netData == nil {
		return "netData == nil"
	}

	var reqOrRes NetAction
	if netData.Request != 0 {
		reqOrRes = netData.Request
	} else {
		reqOrRes = netData.Response
	}

	if netDataStr, ok := netActionStringMap[reqOrRes]; ok {
		return netDataStr
	}

	return fmt.Sprintf("invalid NetData request: %v", reqOrRes)
}

var errMissingView = errors.New("view frame without a view")

// Encode packs netData for the wire. Responses that must carry a view are
// rejected without one.
func (netData *NetData) Encode() ([]byte, error) {
	if netData.NeedsView() && netData.View == nil {
		return nil, fmt.Errorf("%s: %w", netData.NetActionToString(), errMissingView)
	}

	return msgpack.Marshal(netData)
}

func DecodeNetData(b []byte) (NetData, error) {
	var netData NetData

	err := msgpack.Unmarshal(b, &netData)

	return netData, err
}
