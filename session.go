package cardsort

import (
	"errors"
	"sync"

	"golang.org/x/net/websocket"
)

// Session is the deck owned by one websocket connection.
type Session struct {
	conn *websocket.Conn

	mu   sync.Mutex
	deck *Deck
}

func NewSession(conn *websocket.Conn, r Source) (*Session, error) {
	if conn == nil {
		return nil, errors.New("invalid connection")
	}

	return &Session{conn: conn, deck: NewStandardDeck(r)}, nil
}

func (s *Session) Reset(r Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deck = NewStandardDeck(r)
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(d *Deck) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.deck)
}

func (s *Session) Do(fn func(d *Deck)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.deck)
}

func (s *Session) Send(msg *Message) error {
	return websocket.JSON.Send(s.conn, msg)
}
