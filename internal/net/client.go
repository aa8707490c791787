package net

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientSendQueueLen = 32
	writeWait          = 10 * time.Second
	pingPeriod         = 10 * time.Second
)

// Client is one browser connected to the socket.
type Client struct {
	ID string

	conn *websocket.Conn
	send chan []byte

	mtx    sync.Mutex
	closed bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan []byte, clientSendQueueLen),
	}
}

// queue hands a frame to the write loop without blocking. It reports false
// when the client is closed or too far behind.
func (client *Client) queue(frame []byte) bool {
	client.mtx.Lock()
	defer client.mtx.Unlock()

	if client.closed {
		return false
	}

	select {
	case client.send <- frame:
		return true
	default:
		return false
	}
}

func (client *Client) close() {
	client.mtx.Lock()
	defer client.mtx.Unlock()

	if !client.closed {
		client.closed = true
		close(client.send)
	}
}

// writeLoop drains the send queue and keeps the connection alive with pings.
func (client *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := client.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := client.conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}
