package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	defaultSendBuffer     = 256
	defaultMaxMessageSize = 512 * 1024
)

// ClientMessageHandler handles the events the client does not process
// itself. A returned error is reported back to this client only.
type ClientMessageHandler interface {
	HandleMessage(client *Client, msg *Message) error
}

type ClientOptions struct {
	SendBuffer     int
	MaxMessageSize int64
}

// Client is one live connection. It is the Subscriber the Hub fans out to.
type Client struct {
	id   uuid.UUID
	conn *websocket.Conn
	hub  *Hub
	log  *slog.Logger

	membership     Membership
	maxMessageSize int64

	mu     sync.RWMutex
	send   chan []byte
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, opts ClientOptions) *Client {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = defaultMaxMessageSize
	}

	id := uuid.New()
	return &Client{
		id:             id,
		conn:           conn,
		hub:            hub,
		log:            hub.log.With("client_id", id),
		maxMessageSize: opts.MaxMessageSize,
		send:           make(chan []byte, opts.SendBuffer),
	}
}

func (c *Client) ID() uuid.UUID {
	return c.id
}

// Room returns the room the client is joined to, or "".
func (c *Client) Room() string {
	_, room := c.membership.Current()
	return room
}

// Join subscribes the client to room, leaving the room it was in before.
func (c *Client) Join(room string) error {
	left, err := c.membership.Join(room)
	if err != nil {
		return err
	}
	if left != "" && left != room {
		c.hub.Unsubscribe(left, c)
	}
	c.hub.Subscribe(room, c)
	c.log.Debug("joined room", "room", room, "left", left)
	return nil
}

func (c *Client) Leave() {
	if left := c.membership.Leave(); left != "" {
		c.hub.Unsubscribe(left, c)
		c.log.Debug("left room", "room", left)
	}
}

// ReadPump читает сообщения от клиента
func (c *Client) ReadPump(handler ClientMessageHandler) {
	defer c.hub.Unregister(c)

	c.conn.SetReadLimit(c.maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.SendError(ErrInvalidMessage.Error())
			continue
		}

		switch msg.Type {
		case TypeJoinRoom:
			room, err := msg.roomName()
			if err == nil {
				err = c.Join(room)
			}
			if err != nil {
				c.SendError("Missing room name")
			}
			continue

		case TypeLeaveRoom:
			c.Leave()
			continue
		}

		if handler != nil {
			if err := handler.HandleMessage(c, &msg); err != nil {
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет сообщения клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConn()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues an event for this client without blocking. It fails
// when the queue is full or the client is closed.
func (c *Client) SendMessage(msgType MessageType, data interface{}) error {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = jsonData
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- msgData:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	if err := c.SendMessage(TypeError, map[string]string{"error": errorMsg}); err != nil {
		c.log.Debug("error event dropped", "error", err)
	}
}

// close stops the outbound queue; WritePump then closes the socket.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) closeConn() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
