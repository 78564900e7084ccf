package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Heartbeat settings used to detect disconnected clients.
	pingInterval = 10 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	maxMessageSize = 8 << 10
)

// StreamMessage is pushed to websocket clients after every state change.
type StreamMessage struct {
	Type    string         `json:"type"` // "state" or "error"
	Applied int            `json:"applied,omitempty"`
	State   *StateResponse `json:"state,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// stream upgrades to a websocket that accepts command batches and pushes
// every resulting state. While a jump is animating the server ticks the
// session itself.
func (sc *SessionController) stream(ctx *gin.Context) {
	id, ok := sc.sessionID(ctx)
	if !ok {
		return
	}

	snap, err := sc.manager.Get(ctx, id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	conn, err := sc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// The upgrader has already replied.
		sc.logger.Warning(fmt.Sprintf("upgrading stream of session %s: %s", id, err))
		return
	}

	client := &streamClient{
		conn:       conn,
		id:         id,
		manager:    sc.manager,
		logger:     sc.logger,
		interval:   sc.tickInterval,
		cmds:       make(chan []game.Command, 16),
		send:       make(chan StreamMessage, 64),
		done:       make(chan struct{}),
		writerGone: make(chan struct{}),
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.Request.Context()))
	defer cancel()
	go client.writePump()
	go client.loop(loopCtx, snap)
	client.readPump()
}

// streamClient is one websocket connection to a session.
type streamClient struct {
	conn       *websocket.Conn
	id         uuid.UUID
	manager    i.SessionManager
	logger     i.Logger
	interval   time.Duration
	cmds       chan []game.Command
	send       chan StreamMessage
	done       chan struct{} // closed by readPump
	writerGone chan struct{} // closed by writePump
}

// readPump reads command batches until the connection fails, then signals
// the other goroutines to stop.
func (c *streamClient) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var request CommandsRequest
		if err := c.conn.ReadJSON(&request); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.offer(StreamMessage{Type: "error", Error: "malformed message: " + err.Error()})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warning(fmt.Sprintf("stream of session %s closed: %s", c.id, err))
			}
			return
		}

		cmds := make([]game.Command, len(request.Commands))
		for n, cmd := range request.Commands {
			cmds[n] = game.Command(cmd)
		}
		select {
		case c.cmds <- cmds:
		case <-c.writerGone:
			return
		}
	}
}

// loop applies commands and drives animation ticks. It is the only goroutine
// that talks to the session manager for this connection.
func (c *streamClient) loop(ctx context.Context, initial *game.Snapshot) {
	var ticker *time.Ticker
	var ticks <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	state := newStateResponse(initial)
	c.push(StreamMessage{Type: "state", State: &state})
	animating := initial.Mode.Animating()

	for {
		if animating && ticker == nil {
			ticker = time.NewTicker(c.interval)
			ticks = ticker.C
		} else if !animating && ticker != nil {
			ticker.Stop()
			ticker, ticks = nil, nil
		}

		var cmds []game.Command
		select {
		case <-c.done:
			return
		case <-c.writerGone:
			return
		case cmds = <-c.cmds:
		case <-ticks:
			cmds = []game.Command{game.CmdTick}
		}

		applied, snap, err := c.manager.Apply(ctx, c.id, cmds...)
		if err != nil {
			c.push(StreamMessage{Type: "error", Error: streamError(err)})
			if !errors.Is(err, service.ErrInvalidCommand) && !errors.Is(err, service.ErrTooManyCommands) {
				c.logger.Error(fmt.Sprintf("stream of session %s: %s", c.id, err))
			}
			continue
		}

		animating = snap.Mode.Animating()
		if applied == 0 {
			continue
		}
		state := newStateResponse(snap)
		c.push(StreamMessage{Type: "state", Applied: applied, State: &state})
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		close(c.writerGone)
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// push queues msg, giving up once either pump has stopped.
func (c *streamClient) push(msg StreamMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	case <-c.writerGone:
	}
}

// offer queues msg only if there is room. The read pump uses it so that a
// stalled writer cannot block reading.
func (c *streamClient) offer(msg StreamMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func streamError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCommand), errors.Is(err, service.ErrTooManyCommands):
		return err.Error()
	}
	return http.StatusText(http.StatusInternalServerError)
}
