package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bkazemi/gohilo/internal/cli"
	"github.com/bkazemi/gohilo/internal/config"
	"github.com/bkazemi/gohilo/internal/gui"
	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/logger"
	"github.com/bkazemi/gohilo/internal/net"
	"github.com/bkazemi/gohilo/internal/round"
	"github.com/bkazemi/gohilo/internal/store"
)

type FrontEnd interface {
	InputChan() chan round.View
	Init(game *round.Game) error
	Run() error
	Finish() chan error
}

type options struct {
	configPath string
	gui        bool
	webAddr    string
	storeMode  string
	dbPath     string
	dsn        string
	seed       int64
	logFile    string

	// flags given explicitly on the command line
	set map[string]bool
}

// applyFlags lays explicitly set flags over the loaded config.
func (opts *options) applyFlags(cfg *config.GameConfig) {
	if opts.set["store"] {
		cfg.Store.Mode = opts.storeMode
	}
	if opts.set["db"] {
		cfg.Store.Path = opts.dbPath
	}
	if opts.set["dsn"] {
		cfg.Store.DSN = opts.dsn
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["log"] {
		cfg.LogFile = opts.logFile
	}
	if opts.set["w"] && opts.webAddr != "" {
		cfg.WebAddr = opts.webAddr
	}
}

func newLogger(cfg *config.GameConfig, isTerminal bool) (*logger.Logger, func(), error) {
	if cfg.LogFile == "" {
		if isTerminal {
			return logger.Discard(), func() {}, nil
		}

		return logger.NewLogger("gohilo"), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return logger.NewLoggerTo("gohilo", f), func() { f.Close() }, nil
}

func runGame(opts *options) (err error) {
	cfg, err := config.Load(opts.configPath, opts.applyFlags)
	if err != nil {
		return err
	}

	isWeb := opts.set["w"]

	log, closeLog, err := newLogger(cfg, !opts.gui && !isWeb)
	if err != nil {
		return err
	}
	defer closeLog()

	port, mode, err := store.Open(cfg.Store.Mode, cfg.Store.Path, cfg.Store.DSN)
	if err != nil {
		// play on without persistence rather than refusing to start
		fmt.Fprintf(os.Stderr, "high score store %s unavailable, not saving scores: %v\n", mode, err)
		port, mode = store.NewMemoryStore(), store.ModeMemory
	}
	defer port.Close()
	log.Logf("using %s high score store", mode)

	game, err := round.NewGame(cfg.Round(), port, round.WithLogger(log.With("round")))
	if err != nil {
		return err
	}
	defer game.Close()

	var frontEnd FrontEnd
	switch {
	case isWeb:
		frontEnd = net.NewServer(cfg.WebAddr, log.With("net"))
	case opts.gui:
		frontEnd = gui.New(log.With("gui"))
	default: // CLI mode
		frontEnd = cli.New(log.With("cli"))
	}

	if err := frontEnd.Init(game); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	game.Subscribe(func(view round.View) {
		select {
		case frontEnd.InputChan() <- view:
		case <-done:
		}
	})

	defer func() {
		if r := recover(); r != nil {
			err = hilo.PanicRetToError(r)
		}
	}()

	if err := game.Start(context.Background()); err != nil {
		return err
	}

	return frontEnd.Run()
}

func main() {
	processName, err := os.Executable()
	if err != nil {
		processName = "gohilo"
	}

	usage := "usage: " + processName + " [options]"

	opts := &options{set: make(map[string]bool)}

	flag.Usage = func() {
		fmt.Println(usage)
		flag.PrintDefaults()
	}

	flag.StringVar(&opts.configPath, "c", "", "path to a JSON game config")
	flag.BoolVar(&opts.gui, "g", false, "run with a GUI")
	flag.StringVar(&opts.webAddr, "w", "", "serve the game to a browser on <addr> (config web_addr if empty)")
	flag.StringVar(&opts.storeMode, "store", "", "high score store: memory, sqlite or postgres")
	flag.StringVar(&opts.dbPath, "db", "", "sqlite database file")
	flag.StringVar(&opts.dsn, "dsn", "", "postgres connection string")
	flag.Int64Var(&opts.seed, "seed", 0, "shuffle seed (0 picks a random one)")
	flag.StringVar(&opts.logFile, "log", "", "write logs to <file>")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if err := runGame(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
