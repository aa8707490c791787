package cli

import (
	"errors"
	"strings"

	"github.com/bkazemi/gohilo/internal/controlState"
	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/logger"
	"github.com/bkazemi/gohilo/internal/round"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var printer *message.Printer

func init() {
	printer = message.NewPrinter(language.English)
}

const (
	btnHigher    = "higher"
	btnLower     = "lower"
	btnPlayAgain = "play again"
	btnQuit      = "quit"
)

type CLI struct {
	app      *tview.Application
	pages    *tview.Pages
	gameGrid *tview.Grid

	pagesToPrimFocus map[string]tview.Primitive

	game *round.Game
	log  *logger.Logger

	scoreView,
	messageView,
	currentView,
	vsView,
	nextView,
	footerView *tview.TextView

	actionsForm *tview.Form
	controls    controlState.ControlState

	exitModal,
	errorModal *tview.Modal

	inputChan chan round.View

	finish chan error
	done   chan struct{}
}

func New(log *logger.Logger) *CLI {
	if log == nil {
		log = logger.Discard()
	}

	return &CLI{log: log}
}

func (cli *CLI) switchToPage(page string) {
	cli.pages.SwitchToPage(page)
	cli.app.SetFocus(cli.pagesToPrimFocus[page])
}

func (cli *CLI) eventHandler(eventKey *tcell.EventKey) *tcell.EventKey {
	// first of two universal keys is esc to quit the game
	if eventKey.Key() == tcell.KeyEscape {
		cli.switchToPage("exit")
	}

	// the second is Ctrl-R to refresh the screen in case something writes
	// to std{out,err}
	if eventKey.Key() == tcell.KeyCtrlR {
		focusedPrim := cli.app.GetFocus()
		cli.app.SetRoot(cli.pages, true)
		cli.app.SetFocus(focusedPrim)
	}

	return eventKey
}

func (cli *CLI) handleButton(btn string) {
	var err error

	switch btn {
	case btnHigher:
		err = cli.game.SubmitGuess(round.GuessHigher)
	case btnLower:
		err = cli.game.SubmitGuess(round.GuessLower)
	case btnPlayAgain:
		err = cli.game.PlayAgain()
	case btnQuit:
		cli.switchToPage("exit")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, round.ErrRevealing), errors.Is(err, round.ErrGameOver),
		errors.Is(err, round.ErrNoCard), errors.Is(err, round.ErrNotOver):
		// control pressed in the wrong phase; nothing to do
		cli.log.Logf("ignored %s: %v", btn, err)
	default:
		cli.errorModal.SetText(err.Error())
		cli.switchToPage("error")
	}
}

// syncButtons makes the action buttons match the enabled controls.
func (cli *CLI) syncButtons(controls controlState.ControlState) {
	if controls == cli.controls && cli.actionsForm.GetButtonCount() > 0 {
		return
	}
	cli.controls = controls

	cli.actionsForm.ClearButtons()

	if controls.Has(controlState.GuessHigher) {
		cli.actionsForm.AddButton(btnHigher, func() {
			cli.handleButton(btnHigher)
		})
	}
	if controls.Has(controlState.GuessLower) {
		cli.actionsForm.AddButton(btnLower, func() {
			cli.handleButton(btnLower)
		})
	}
	if controls.Has(controlState.PlayAgain) {
		cli.actionsForm.AddButton(btnPlayAgain, func() {
			cli.handleButton(btnPlayAgain)
		})
	}
	cli.actionsForm.AddButton(btnQuit, func() {
		cli.handleButton(btnQuit)
	})

	cli.actionsForm.SetFocus(0)
}

func (cli *CLI) render(view round.View) {
	cli.scoreView.SetText(printer.Sprintf("Score: [yellow]%d[-]    High Score: [green]%d[-]",
		view.Score, view.HighScore))
	cli.messageView.SetText(tview.Escape(view.Message))
	cli.currentView.SetText(cardFace2String(view.Current))
	cli.nextView.SetText(cardFace2String(view.Next))
	cli.footerView.SetText(printer.Sprintf("Cards remaining: %d", view.Remaining))

	cli.syncButtons(view.Controls)
}

// cardFace2String draws a card slot as a small box. Face-down and empty
// slots show a question mark.
func cardFace2String(face round.CardFace) string {
	const width = 5

	var top, mid, bot string

	if !face.FaceUp || face.Card == nil {
		top = hilo.FillRight("", width)
		mid = hilo.FillLeft("?", 3) + hilo.FillRight("", width-3)
		bot = top
	} else {
		card := face.Card
		color := "white"
		if card.IsRed() {
			color = "red"
		}
		rank, suit := card.Rank.String(), card.Suit.String()

		top = "[" + color + "]" + hilo.FillRight(rank, width) + "[-]"
		mid = "[" + color + "]" + hilo.FillLeft(suit, 3) + hilo.FillRight("", width-3) + "[-]"
		bot = "[" + color + "]" + hilo.FillLeft(rank, width) + "[-]"
	}

	var sb strings.Builder
	sb.WriteString("\n┌───────┐\n")
	sb.WriteString("│ " + top + " │\n")
	sb.WriteString("│ " + mid + " │\n")
	sb.WriteString("│ " + bot + " │\n")
	sb.WriteString("└───────┘\n")

	return sb.String()
}

func (cli *CLI) Init(game *round.Game) error {
	cli.game = game

	cli.app = tview.NewApplication()
	cli.pages = tview.NewPages()
	cli.gameGrid = tview.NewGrid()
	cli.exitModal = tview.NewModal()
	cli.errorModal = tview.NewModal()

	cli.inputChan = make(chan round.View, 64)
	cli.finish = make(chan error, 1)
	cli.done = make(chan struct{})

	newTextView := func(title string, border bool) *tview.TextView {
		ret := tview.NewTextView().SetTextAlign(tview.AlignCenter).
			SetDynamicColors(true)

		ret.SetTitle(title)

		if border {
			ret.SetBorder(true)
		}

		return ret
	}

	cli.scoreView = newTextView("", false)
	cli.messageView = newTextView("", true)
	cli.currentView = newTextView("Current", true)
	cli.nextView = newTextView("Next", true)
	cli.vsView = newTextView("", false)
	cli.vsView.SetText("\n\n\nvs")
	cli.footerView = newTextView("", false)

	cli.actionsForm = tview.NewForm().SetHorizontal(true).
		SetButtonsAlign(tview.AlignCenter)
	cli.actionsForm.SetBorder(true).SetTitle("Actions").
		SetInputCapture(func(eventKey *tcell.EventKey) *tcell.EventKey {
			switch eventKey.Key() {
			case tcell.KeyLeft:
				_, idx := cli.actionsForm.GetFocusedItemIndex()

				if idx <= 0 {
					idx = cli.actionsForm.GetButtonCount() - 1
				} else {
					idx--
				}

				cli.actionsForm.SetFocus(idx)
				cli.app.SetFocus(cli.actionsForm)
				return nil
			case tcell.KeyRight:
				_, idx := cli.actionsForm.GetFocusedItemIndex()

				if idx >= cli.actionsForm.GetButtonCount()-1 {
					idx = 0
				} else {
					idx++
				}

				cli.actionsForm.SetFocus(idx)
				cli.app.SetFocus(cli.actionsForm)
				return nil
			}

			return eventKey
		})
	cli.syncButtons(controlState.None)

	cardsFlex := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(cli.currentView, 13, 0, false).
		AddItem(cli.vsView, 6, 0, false).
		AddItem(cli.nextView, 13, 0, false).
		AddItem(nil, 0, 1, false)

	cli.gameGrid.
		SetRows(1, 3, 9, 3, 1).
		SetColumns(0).
		AddItem(cli.scoreView, 0, 0, 1, 1, 0, 0, false).
		AddItem(cli.messageView, 1, 0, 1, 1, 0, 0, false).
		AddItem(cardsFlex, 2, 0, 1, 1, 0, 0, false).
		AddItem(cli.actionsForm, 3, 0, 1, 1, 0, 0, true).
		AddItem(cli.footerView, 4, 0, 1, 1, 0, 0, false)
	cli.gameGrid.SetBorder(true).SetTitle("Higher or Lower")
	cli.gameGrid.
		SetInputCapture(func(eventKey *tcell.EventKey) *tcell.EventKey {
			keyToActionsButtonLabel := map[rune]string{
				'h': btnHigher,
				'k': btnHigher,
				'l': btnLower,
				'j': btnLower,
				'r': btnPlayAgain,
				'q': btnQuit,
			}

			if label, ok := keyToActionsButtonLabel[eventKey.Rune()]; ok {
				cli.handleButton(label)
				return nil
			}

			return eventKey
		})

	cli.exitModal.SetText("do you want to quit the game?").
		AddButtons([]string{"quit", "cancel"}).
		SetDoneFunc(func(btnIdx int, btnLabel string) {
			switch btnLabel {
			case "quit":
				cli.app.Stop()
			case "cancel":
				cli.switchToPage("game")
			}
		})

	cli.errorModal.
		AddButtons([]string{"close"}).
		SetDoneFunc(func(_ int, btnLabel string) {
			switch btnLabel {
			case "close":
				cli.switchToPage("game")
				cli.errorModal.SetText("")
			}
		})

	cli.pages.AddPage("game", cli.gameGrid, true, true)
	cli.pages.AddPage("exit", cli.exitModal, true, false)
	cli.pages.AddPage("error", cli.errorModal, true, false)

	cli.pagesToPrimFocus = map[string]tview.Primitive{
		"game":  cli.actionsForm,
		"exit":  cli.exitModal,
		"error": cli.errorModal,
	}

	cli.app.SetInputCapture(cli.eventHandler)

	return nil
}

func (cli *CLI) InputChan() chan round.View {
	return cli.inputChan
}

func (cli *CLI) Finish() chan error {
	return cli.finish
}

func cliInputLoop(cli *CLI) {
	for {
		select {
		case view := <-cli.inputChan:
			cli.app.QueueUpdateDraw(func() {
				cli.render(view)
			})
		case err := <-cli.finish:
			if err != nil {
				cli.app.QueueUpdateDraw(func() {
					cli.errorModal.SetText("backend error: " + err.Error())
					cli.switchToPage("error")
				})
			}
		case <-cli.done:
			return
		}
	}
}

func (cli *CLI) Run() (err error) {
	go cliInputLoop(cli)
	defer close(cli.done)

	defer func() {
		if r := recover(); r != nil {
			if cli.app != nil {
				cli.app.Stop()
			}
			err = hilo.PanicRetToError(r)
		}
	}()

	if err := cli.app.SetRoot(cli.pages, true).SetFocus(cli.actionsForm).Run(); err != nil {
		return err
	}

	return nil
}
