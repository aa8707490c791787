// game graphical user interface

package gui

import (
	"errors"
	"image/color"

	"github.com/bkazemi/gohilo/internal/controlState"
	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/logger"
	"github.com/bkazemi/gohilo/internal/round"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth, screenHeight = 640, 400

	cardWidth, cardHeight = 120, 170
	cardY                 = 110
	currentX              = 150
	nextX                 = screenWidth - currentX - cardWidth
)

var (
	feltColor     = color.RGBA{0x0b, 0x5d, 0x1e, 0xff}
	redCardColor  = color.RGBA{0xc0, 0x39, 0x2b, 0xff}
	darkCardColor = color.RGBA{0x22, 0x22, 0x22, 0xff}
	backColor     = color.RGBA{0x2c, 0x3e, 0x50, 0xff}
)

// returned from Update to leave RunGame
var errQuit = errors.New("quit")

var printer = message.NewPrinter(language.English)

type GUI struct {
	game *round.Game
	log  *logger.Logger

	view    round.View
	hasView bool

	inputChan chan round.View
	finish    chan error
}

func New(log *logger.Logger) *GUI {
	if log == nil {
		log = logger.Discard()
	}

	return &GUI{log: log}
}

func (gui *GUI) Init(game *round.Game) error {
	gui.game = game
	gui.inputChan = make(chan round.View, 64)
	gui.finish = make(chan error, 1)

	return nil
}

func (gui *GUI) InputChan() chan round.View {
	return gui.inputChan
}

func (gui *GUI) Finish() chan error {
	return gui.finish
}

// drain keeps only the newest queued view.
func (gui *GUI) drain() {
	for {
		select {
		case view := <-gui.inputChan:
			gui.view = view
			gui.hasView = true
		default:
			return
		}
	}
}

func (gui *GUI) handleKeys() error {
	pressed := func(keys ...ebiten.Key) bool {
		for _, key := range keys {
			if inpututil.IsKeyJustPressed(key) {
				return true
			}
		}
		return false
	}

	var err error

	switch {
	case pressed(ebiten.KeyEscape, ebiten.KeyQ):
		return errQuit
	case pressed(ebiten.KeyUp, ebiten.KeyH):
		if gui.view.Controls.Has(controlState.GuessHigher) {
			err = gui.game.SubmitGuess(round.GuessHigher)
		}
	case pressed(ebiten.KeyDown, ebiten.KeyL):
		if gui.view.Controls.Has(controlState.GuessLower) {
			err = gui.game.SubmitGuess(round.GuessLower)
		}
	case pressed(ebiten.KeyEnter, ebiten.KeyR):
		if gui.view.Controls.Has(controlState.PlayAgain) {
			err = gui.game.PlayAgain()
		}
	}

	if err != nil {
		// the view we acted on was already stale
		gui.log.Logf("ignored key: %v", err)
	}

	return nil
}

func (gui *GUI) Update() error {
	select {
	case err := <-gui.finish:
		return err
	default:
	}

	gui.drain()

	return gui.handleKeys()
}

func drawCard(screen *ebiten.Image, face round.CardFace, x float64) {
	if !face.FaceUp || face.Card == nil {
		ebitenutil.DrawRect(screen, x, cardY, cardWidth, cardHeight, backColor)
		ebitenutil.DebugPrintAt(screen, "?", int(x)+cardWidth/2-3, cardY+cardHeight/2-8)

		return
	}

	card := face.Card
	clr := darkCardColor
	if card.IsRed() {
		clr = redCardColor
	}

	ebitenutil.DrawRect(screen, x, cardY, cardWidth, cardHeight, clr)

	// the debug font is ASCII only, so suits are spelled out
	rank := card.Rank.String()
	ebitenutil.DebugPrintAt(screen, rank, int(x)+8, cardY+6)
	ebitenutil.DebugPrintAt(screen, hilo.FillLeft(rank, 2), int(x)+cardWidth-20, cardY+cardHeight-22)
	ebitenutil.DebugPrintAt(screen, card.FullName, int(x)+8, cardY+cardHeight/2-8)
}

func (gui *GUI) Draw(screen *ebiten.Image) {
	screen.Fill(feltColor)

	if !gui.hasView {
		ebitenutil.DebugPrintAt(screen, "dealing...", 10, 10)
		return
	}

	view := gui.view

	ebitenutil.DebugPrintAt(screen, "Higher or Lower", screenWidth/2-45, 10)
	ebitenutil.DebugPrintAt(screen,
		printer.Sprintf("Score: %d    High Score: %d", view.Score, view.HighScore), 10, 40)
	ebitenutil.DebugPrintAt(screen, view.Message, 10, 70)

	drawCard(screen, view.Current, currentX)
	ebitenutil.DebugPrintAt(screen, "vs", screenWidth/2-6, cardY+cardHeight/2-8)
	drawCard(screen, view.Next, nextX)

	help := "[Up/H] higher  [Down/L] lower  [Esc/Q] quit"
	if view.Controls.Has(controlState.PlayAgain) {
		help = "[Enter/R] play again  [Esc/Q] quit"
	}
	ebitenutil.DebugPrintAt(screen, help, 10, screenHeight-50)
	ebitenutil.DebugPrintAt(screen,
		printer.Sprintf("Cards remaining: %d", view.Remaining), 10, screenHeight-25)
}

func (gui *GUI) Layout(ow, oh int) (int, int) {
	return screenWidth, screenHeight
}

func (gui *GUI) Run() error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("gohilo")

	if err := ebiten.RunGame(gui); err != nil && !errors.Is(err, errQuit) {
		return err
	}

	return nil
}
