package round

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/logger"
	"github.com/bkazemi/gohilo/internal/store"
)

const storeTimeout = 3 * time.Second

type Option func(*Game)

func WithClock(clock Clock) Option {
	return func(g *Game) { g.clock = clock }
}

func WithLogger(l *logger.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithDeckSource replaces the shuffled 52-card deck dealt on every new
// game. Cards are drawn from the end of the returned slice.
func WithDeckSource(newDeck func() hilo.Cards) Option {
	return func(g *Game) { g.newDeck = newDeck }
}

// Game runs one Higher or Lower session. All methods are safe for
// concurrent use.
type Game struct {
	cfg     Config
	rng     *rand.Rand
	clock   Clock
	store   store.Port
	log     *logger.Logger
	newDeck func() hilo.Cards

	mu        sync.Mutex
	state     State
	session   context.Context // nil until Start
	cancel    context.CancelFunc
	listeners []func(View)

	inflight sync.WaitGroup
}

func NewGame(cfg Config, port store.Port, opts ...Option) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if port == nil {
		port = store.NewMemoryStore()
	}

	g := &Game{
		cfg:   cfg,
		rng:   hilo.NewRand(cfg.Seed),
		clock: WallClock(),
		store: port,
		log:   logger.Discard(),
	}
	g.newDeck = func() hilo.Cards {
		return hilo.NewShuffledDeck(g.rng)
	}
	for _, opt := range opts {
		opt(g)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	highScore, err := store.ReadHighScore(ctx, port)
	if err != nil {
		g.log.Logf("using high score 0: %v", err)
	}
	g.state.HighScore = highScore

	return g, nil
}

// Subscribe registers fn to receive a View after every state change. fn is
// called with the game locked and must not call back into the Game.
func (g *Game) Subscribe(fn func(View)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.listeners = append(g.listeners, fn)
}

// Start opens the session and deals the first game. The session ends when
// ctx is done or Close is called.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		if g.session.Err() != nil {
			return ErrSessionClosed
		}
		return ErrStarted
	}

	g.session, g.cancel = context.WithCancel(ctx)
	g.initializeLocked()

	return nil
}

// Close ends the session. A round still resolving drops its remaining
// writes, and every later call is rejected with ErrSessionClosed.
func (g *Game) Close() {
	g.mu.Lock()
	if g.cancel != nil {
		g.cancel()
	}
	g.mu.Unlock()

	g.inflight.Wait()
}

// Wait blocks until the round being resolved, if any, has finished.
func (g *Game) Wait() {
	g.inflight.Wait()
}

func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.clone()
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.View()
}

// liveLocked returns the session context, or an error if there is no
// running session.
func (g *Game) liveLocked() (context.Context, error) {
	if g.session == nil {
		return nil, ErrNotStarted
	}
	if g.session.Err() != nil {
		return nil, ErrSessionClosed
	}
	return g.session, nil
}

// SubmitGuess starts resolving guess against the current card and returns
// straight away. It is a no-op returning the reason when the game is over,
// a guess is already being revealed, or there is no current card.
func (g *Game) SubmitGuess(guess Guess) error {
	if !guess.valid() {
		return ErrBadGuess
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ctx, err := g.liveLocked()
	if err != nil {
		return err
	}
	if err := g.state.CanGuess(); err != nil {
		return err
	}

	current := g.state.CurrentCard
	g.state.Revealing = true
	g.state.Message = DrawingMessage
	g.afterWriteLocked()

	g.log.Logf("guess %s on %s (%d left)", guess, current.FullName, len(g.state.Deck))

	g.inflight.Add(1)
	go g.resolve(ctx, guess, current)

	return nil
}

// PlayAgain deals a fresh game after a game over. HighScore is kept.
func (g *Game) PlayAgain() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.liveLocked(); err != nil {
		return err
	}
	if !g.state.GameOver {
		return ErrNotOver
	}

	g.initializeLocked()

	return nil
}

func (g *Game) initializeLocked() {
	g.state.Reset(g.newDeck())
	if g.state.GameOver {
		g.log.Logf("deal failed: %s", g.state.Message)
	}
	g.afterWriteLocked()
}

// resolve runs the timed part of a round on its own goroutine. ctx is the
// session the guess was made in; every write is dropped once it is done.
func (g *Game) resolve(ctx context.Context, guess Guess, current *hilo.Card) {
	defer g.inflight.Done()

	if err := g.clock.Wait(ctx, WaitSuspense, g.cfg.Timings.Suspense); err != nil {
		return
	}

	var drawn *hilo.Card
	if !g.update(ctx, func(s *State) {
		drawn = s.DrawNextCard()
		if drawn == nil {
			return
		}
		s.NextCard = drawn
	}) || drawn == nil {
		return
	}

	if err := g.clock.Wait(ctx, WaitReveal, g.cfg.Timings.Reveal); err != nil {
		return
	}

	var correct bool
	applied := g.update(ctx, func(s *State) {
		// SubmitGuess only starts a round with a current card, so this is
		// unreachable through the public API. It stays as a guard for
		// resolve being handed a nil card.
		if current == nil {
			s.Message = RoundErrorMessage
			s.GameOver = true
			s.Revealing = false
			return
		}

		correct = Correct(guess, current, drawn)
		if correct {
			s.Score++
			s.Message = WinMessage
			return
		}

		s.Message = LoseMessage
		s.GameOver = true
		s.Revealing = false
	})
	if !applied {
		return
	}
	if !correct {
		g.log.Logf("%s on %s lost to %s", guess, current, drawn)
		return
	}

	if err := g.clock.Wait(ctx, WaitPause, g.cfg.Timings.Pause); err != nil {
		return
	}

	g.update(ctx, func(s *State) {
		if len(s.Deck) == 0 {
			s.endEmptyDeck()
			return
		}

		s.CurrentCard = drawn
		s.NextCard = nil
		s.Message = DefaultMessage
		s.Revealing = false
	})
}

// update applies fn if the session is still live and reports whether it
// did.
func (g *Game) update(ctx context.Context, fn func(s *State)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}

	fn(&g.state)
	g.afterWriteLocked()

	return true
}

// afterWriteLocked keeps the high score in step with the score and tells
// the listeners.
func (g *Game) afterWriteLocked() {
	if g.state.raiseHighScore() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := store.WriteHighScore(ctx, g.store, g.state.HighScore); err != nil {
			g.log.Logf("persisting high score %d failed: %v", g.state.HighScore, err)
		}
		cancel()
	}

	if len(g.listeners) == 0 {
		return
	}

	view := g.state.View()
	for _, fn := range g.listeners {
		fn(view)
	}
}
