package websocket

import "sync"

// State of one connection with respect to room membership.
type State int

const (
	StateUnjoined State = iota
	StateJoined
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnjoined:
		return "unjoined"
	case StateJoined:
		return "joined"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Membership tracks the single room a connection is joined to. Joining a
// second room replaces the first; callers unsubscribe from the returned
// previous room. Closed is terminal.
type Membership struct {
	mu    sync.Mutex
	state State
	room  string
}

// Join moves to JoinedTo(room) and returns the room that was left, if any.
func (m *Membership) Join(room string) (left string, err error) {
	if room == "" {
		return "", ErrInvalidMessage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateClosed:
		return "", ErrClientClosed
	case StateJoined:
		left = m.room
	}
	m.state = StateJoined
	m.room = room
	return left, nil
}

// Leave moves back to Unjoined and returns the room that was left.
func (m *Membership) Leave() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateJoined {
		return ""
	}
	left := m.room
	m.state = StateUnjoined
	m.room = ""
	return left
}

// Close terminates the membership and returns the room that was left.
func (m *Membership) Close() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	left := m.room
	m.state = StateClosed
	m.room = ""
	return left
}

func (m *Membership) Current() (State, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.room
}
