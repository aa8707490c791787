package net

import (
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bkazemi/gohilo/internal/hilo"
	"github.com/bkazemi/gohilo/internal/logger"
	"github.com/bkazemi/gohilo/internal/round"
	"github.com/bkazemi/gohilo/web"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var printer = message.NewPrinter(language.English)

// Server is the browser front-end. It serves the page, pushes a view frame
// to every connected socket after each state change and forwards the
// intents it receives to the game.
type Server struct {
	game *round.Game
	log  *logger.Logger

	MaxConnBytes int64

	router *mux.Router

	http     *http.Server
	upgrader websocket.Upgrader

	clients  map[*Client]struct{}
	nextID   uint64
	lastView *ViewData // last view pushed to the clients

	inputChan chan round.View
	finish    chan error
	sigChan   chan os.Signal
	errChan   chan error
	done      chan struct{}
	doneOnce  sync.Once

	mtx sync.Mutex
}

func NewServer(addr string, log *logger.Logger) *Server {
	const (
		MaxConnBytes = 10e3
		IdleTimeout  = 0
		ReadTimeout  = 0
	)

	if log == nil {
		log = logger.Discard()
	}

	router := mux.NewRouter()

	server := &Server{
		log: log,

		MaxConnBytes: MaxConnBytes,

		upgrader: websocket.Upgrader{
			EnableCompression: true,
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
		},

		router: router,

		http: &http.Server{
			Addr:        addr,
			IdleTimeout: IdleTimeout,
			ReadTimeout: ReadTimeout,
			Handler:     router,
		},

		clients: make(map[*Client]struct{}),

		inputChan: make(chan round.View, 64),
		finish:    make(chan error, 1),
		sigChan:   make(chan os.Signal, 1),
		errChan:   make(chan error, 1),
		done:      make(chan struct{}),
	}

	server.http.SetKeepAlivesEnabled(true)
	router.Handle("/", web.Handler()).Methods("GET")
	router.HandleFunc("/status", server.status).Methods("GET")
	router.HandleFunc("/ws", server.WSClient).Methods("GET")

	return server
}

func (server *Server) Init(game *round.Game) error {
	if game == nil {
		return errors.New("Server.Init(): game == nil")
	}

	server.game = game

	server.mtx.Lock()
	server.lastView = NewViewData(game.View())
	server.mtx.Unlock()

	return nil
}

func (server *Server) InputChan() chan round.View {
	return server.inputChan
}

func (server *Server) Finish() chan error {
	return server.finish
}

// Handler exposes the router, mainly for tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

type statusResponse struct {
	Status      string `json:"status"`
	Phase       string `json:"phase"`
	Score       int    `json:"score"`
	HighScore   int    `json:"highScore"`
	Remaining   int    `json:"remaining"`
	Message     string `json:"message"`
	Clients     int    `json:"clients"`
	ScoreLine   string `json:"scoreLine"`
	RemainsLine string `json:"remainingLine"`
}

func (server *Server) status(w http.ResponseWriter, req *http.Request) {
	res := statusResponse{Status: "running"}

	if server.game != nil {
		view := server.game.View()

		res.Phase = view.Phase.String()
		res.Score = view.Score
		res.HighScore = view.HighScore
		res.Remaining = view.Remaining
		res.Message = view.Message
		res.ScoreLine = printer.Sprintf("Score: %d  High Score: %d", view.Score, view.HighScore)
		res.RemainsLine = printer.Sprintf("Cards remaining: %d", view.Remaining)
	}

	server.mtx.Lock()
	res.Clients = len(server.clients)
	server.mtx.Unlock()

	jsonBody, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}

func (server *Server) addClient(conn *websocket.Conn) *Client {
	server.mtx.Lock()
	defer server.mtx.Unlock()

	server.nextID++
	client := NewClient(fmt.Sprintf("c%d", server.nextID), conn)
	server.clients[client] = struct{}{}

	// the first frame carries the current view so a late page is in sync
	server.sendTo(client, &NetData{
		Response: NetDataNewConn,
		Msg:      client.ID,
		View:     server.lastView,
	})

	return client
}

func (server *Server) removeClient(client *Client) {
	server.mtx.Lock()
	defer server.mtx.Unlock()

	if _, found := server.clients[client]; found {
		delete(server.clients, client)
		client.close()

		server.log.Logf("<%s> removed, %d client(s) left", client.ID, len(server.clients))
	}
}

// NOTE: caller needs to handle server locking
func (server *Server) sendTo(client *Client, netData *NetData) {
	frame, err := netData.Encode()
	if err != nil {
		server.log.Logf("problem encoding %s: %v", netData.NetActionToString(), err)

		return
	}

	if !client.queue(frame) {
		server.log.Logf("<%s> is not keeping up, dropping client", client.ID)

		delete(server.clients, client)
		client.close()
	}
}

func (server *Server) send(client *Client, netData *NetData) {
	server.mtx.Lock()
	defer server.mtx.Unlock()

	if _, found := server.clients[client]; found {
		server.sendTo(client, netData)
	}
}

func (server *Server) sendResponseToAll(netData *NetData) {
	frame, err := netData.Encode()
	if err != nil {
		server.log.Logf("problem encoding %s: %v", netData.NetActionToString(), err)

		return
	}

	server.mtx.Lock()
	defer server.mtx.Unlock()

	if netData.View != nil {
		server.lastView = netData.View
	}

	for client := range server.clients {
		if !client.queue(frame) {
			server.log.Logf("<%s> is not keeping up, dropping client", client.ID)

			delete(server.clients, client)
			client.close()
		}
	}
}

func (server *Server) currentView() *ViewData {
	server.mtx.Lock()
	defer server.mtx.Unlock()

	return server.lastView
}

func (server *Server) broadcastLoop() {
	for {
		select {
		case view := <-server.inputChan:
			server.sendResponseToAll(&NetData{
				Response: NetDataView,
				View:     NewViewData(view),
			})
		case <-server.done:
			return
		}
	}
}

// handleRequest runs one decoded request from client. It returns false once
// the client has asked to leave.
func (server *Server) handleRequest(client *Client, netData NetData) bool {
	action := netData.Action()

	server.log.Logf("<%s> request %s", client.ID, (&NetData{Request: action}).NetActionToString())

	var err error

	switch {
	case action == NetDataClientExited || action == NetDataClose:
		return false
	case action&NetActionIntentBitMask == 0 || server.game == nil:
		server.send(client, &NetData{
			Response: NetDataBadRequest,
			Msg:      fmt.Sprintf("bad request %v", netData.NetActionToString()),
		})

		return true
	case action == NetDataPlayAgain:
		err = server.game.PlayAgain()
	default:
		guess, ok := NetActionToGuess(action)
		if !ok {
			server.send(client, &NetData{
				Response: NetDataBadRequest,
				Msg:      fmt.Sprintf("bad request %v", netData.NetActionToString()),
			})

			return true
		}

		err = server.game.SubmitGuess(guess)
	}

	if err != nil {
		server.send(client, &NetData{Response: NetDataServerMsg, Msg: err.Error()})
	}

	return true
}

func (server *Server) WSClient(w http.ResponseWriter, req *http.Request) {
	conn, err := server.upgrader.Upgrade(w, req, nil)
	if err != nil {
		server.log.Logf("WS upgrade err %s", err.Error())

		return
	}

	conn.SetReadLimit(server.MaxConnBytes)
	conn.EnableWriteCompression(true)
	conn.SetCompressionLevel(flate.BestCompression)

	client := server.addClient(conn)
	go client.writeLoop()

	server.log.Logf("<%s> => new conn from %s", client.ID, conn.RemoteAddr().String())

	defer func() {
		if err := recover(); err != nil {
			server.log.Logf("<%s> handler panicked: %v", client.ID, hilo.PanicRetToError(err))
		}

		server.removeClient(client)
	}()

	for {
		_, rawData, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				server.log.Logf("<%s> readConn() err: %v", client.ID, err)
			}

			return
		}

		netData, err := DecodeNetData(rawData)
		if err != nil {
			server.log.Logf("<%s> had a problem decoding msgpack stream: %s", client.ID, err.Error())
			server.send(client, &NetData{Response: NetDataBadRequest, Msg: "could not decode request"})

			continue
		}

		if !server.handleRequest(client, netData) {
			return
		}
	}
}

func (server *Server) shutdown() error {
	server.doneOnce.Do(func() { close(server.done) })

	server.sendResponseToAll(&NetData{Response: NetDataServerClosed})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.http.Shutdown(ctx); err != nil {
		server.log.Logf("server.http.Shutdown(): %s", err.Error())
		return err
	}

	server.mtx.Lock()
	for client := range server.clients {
		delete(server.clients, client)
		client.close()
	}
	server.mtx.Unlock()

	return nil
}

func (server *Server) Run() error {
	server.log.Logf("starting server on %v", server.http.Addr)

	signal.Notify(server.sigChan, os.Interrupt)
	defer signal.Stop(server.sigChan)

	go server.broadcastLoop()

	go func() {
		if err := server.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.errChan <- err
		}
	}()

	fmt.Printf("serving Higher or Lower on http://%s\n", server.http.Addr)

	select {
	case sig := <-server.sigChan:
		server.log.Logf("received signal: %s", sig.String())

		return server.shutdown()
	case err := <-server.finish:
		if shutdownErr := server.shutdown(); err == nil {
			err = shutdownErr
		}

		return err
	case err := <-server.errChan:
		server.log.Logf("irrecoverable server error: %s", err.Error())

		server.shutdown()

		return err
	}
}
