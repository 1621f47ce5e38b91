package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Subscriber is a live connection handle the Hub can push events to.
type Subscriber interface {
	ID() uuid.UUID
	SendMessage(msgType MessageType, data interface{}) error
}

// Hub is the room directory: which live connections are subscribed to which
// room. It is runtime state only and starts empty on every process start.
type Hub struct {
	mu sync.RWMutex

	clients map[uuid.UUID]*Client

	// room name -> subscribers
	rooms map[string]map[uuid.UUID]Subscriber

	// subscriber -> room names, so a disconnect is one pass
	joined map[uuid.UUID]map[string]struct{}

	log *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		rooms:   make(map[string]map[uuid.UUID]Subscriber),
		joined:  make(map[uuid.UUID]map[string]struct{}),
		log:     log,
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID()] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Info("client registered", "client_id", client.ID(), "clients", total)
}

// Unregister drops the client from the directory and closes it. Safe to call
// more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID()]
	delete(h.clients, client.ID())
	rooms := h.unsubscribeAllLocked(client.ID())
	total := len(h.clients)
	h.mu.Unlock()

	client.membership.Close()
	client.close()

	if ok {
		h.log.Info("client unregistered", "client_id", client.ID(), "rooms_left", rooms, "clients", total)
	}
}

// Subscribe adds s to the room, creating the room entry when absent.
func (h *Hub) Subscribe(roomName string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomName]
	if !ok {
		subs = make(map[uuid.UUID]Subscriber)
		h.rooms[roomName] = subs
	}
	subs[s.ID()] = s

	rooms, ok := h.joined[s.ID()]
	if !ok {
		rooms = make(map[string]struct{})
		h.joined[s.ID()] = rooms
	}
	rooms[roomName] = struct{}{}
}

// Unsubscribe removes s from the room. Removing a non-member is a no-op.
func (h *Hub) Unsubscribe(roomName string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(roomName, s.ID())
}

// UnsubscribeAll removes s from every room and returns how many it left.
func (h *Hub) UnsubscribeAll(s Subscriber) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.unsubscribeAllLocked(s.ID())
}

// SubscribersOf returns a snapshot of the room's subscribers. The snapshot
// may be stale by the time it is used.
func (h *Hub) SubscribersOf(roomName string) []Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return lo.Values(h.rooms[roomName])
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every registered connection. Their read pumps then
// unregister them.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := lo.Values(h.clients)
	h.mu.RUnlock()

	for _, c := range clients {
		c.closeConn()
	}
	h.log.Info("hub shut down", "clients", len(clients))
}

func (h *Hub) unsubscribeAllLocked(id uuid.UUID) int {
	rooms := h.joined[id]
	n := len(rooms)
	for roomName := range rooms {
		h.removeLocked(roomName, id)
	}
	return n
}

func (h *Hub) removeLocked(roomName string, id uuid.UUID) {
	if subs, ok := h.rooms[roomName]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.rooms, roomName)
		}
	}
	if rooms, ok := h.joined[id]; ok {
		delete(rooms, roomName)
		if len(rooms) == 0 {
			delete(h.joined, id)
		}
	}
}
