package cardsort

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/net/websocket"
)

const maxDeal = 52

type Manager struct {
	cfg *Config

	sessionsMu sync.Mutex
	sessions   map[*websocket.Conn]*Session
}

func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{SuitOrder: DefaultSuitOrder}
	}
	return &Manager{cfg: cfg, sessions: make(map[*websocket.Conn]*Session)}
}

// Serve reads messages from conn until it fails, replying with an "error"
// message to every request that can't be handled.
func (m *Manager) Serve(conn *websocket.Conn) {
	defer func() {
		m.Leave(conn)
		conn.Close()
	}()

	for {
		var msg Message
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			return
		}

		if err := m.Handle(conn, &msg); err != nil {
			errMsg := MakeMessage("error", ErrorMessage(err.Error()))
			if err := websocket.JSON.Send(conn, errMsg); err != nil {
				return
			}
		}
	}
}

func (m *Manager) Handle(conn *websocket.Conn, msg *Message) error {
	switch msg.Type {
	case "new_deck":
		var data NewDeckMessage
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return m.NewDeck(conn, data)
	case "shuffle":
		return m.Shuffle(conn)
	case "sort":
		var data SortMessage
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return m.Sort(conn, data)
	case "render":
		var data RenderMessage
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return m.Render(conn, data)
	case "deal":
		var data DealMessage
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return m.Deal(conn, data)
	case "leave":
		m.Leave(conn)
		return nil
	}
	return errors.New("unknown message type")
}

func unmarshalData(msg *Message, v interface{}) error {
	if len(msg.Data) == 0 {
		return nil
	}
	return json.Unmarshal(msg.Data, v)
}

func (m *Manager) session(conn *websocket.Conn) (*Session, error) {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()

	if s, ok := m.sessions[conn]; ok {
		return s, nil
	}

	s, err := NewSession(conn, m.cfg.Source())
	if err != nil {
		return nil, err
	}
	m.sessions[conn] = s
	return s, nil
}

func (m *Manager) NewDeck(conn *websocket.Conn, msg NewDeckMessage) error {
	s, err := m.session(conn)
	if err != nil {
		return err
	}

	log.Printf("%s: new_deck (%s)", remoteAddr(conn), msg)

	var src Source
	if msg.Seed != nil {
		src = rand.New(rand.NewSource(*msg.Seed))
	} else {
		src = m.cfg.Source()
	}
	s.Reset(src)

	return sendDeck(s)
}

func (m *Manager) Shuffle(conn *websocket.Conn) error {
	s, err := m.session(conn)
	if err != nil {
		return err
	}

	log.Printf("%s: shuffle", remoteAddr(conn))

	s.Do(func(d *Deck) {
		d.Shuffle()
	})

	return sendDeck(s)
}

func (m *Manager) Sort(conn *websocket.Conn, msg SortMessage) error {
	s, err := m.session(conn)
	if err != nil {
		return err
	}

	log.Printf("%s: sort (%+v)", remoteAddr(conn), msg)

	err = s.With(func(d *Deck) error {
		if strings.EqualFold(msg.By, "suit") {
			d.SortFunc(CompareBySuit)
			return nil
		}

		strategy, err := ParseSortStrategy(msg.Aces)
		if err != nil {
			return err
		}
		suits := strings.ToUpper(strings.TrimSpace(msg.Suits))
		if suits == "" {
			suits = m.cfg.SuitOrder
		}
		return d.SortAscending(strategy, suits)
	})
	if err != nil {
		return err
	}

	return sendDeck(s)
}

func (m *Manager) Render(conn *websocket.Conn, msg RenderMessage) error {
	s, err := m.session(conn)
	if err != nil {
		return err
	}

	var text string
	s.Do(func(d *Deck) {
		text = d.Render(msg.Fancy)
	})

	return s.Send(MakeMessage("render", RenderedMessage{Text: text}))
}

func (m *Manager) Deal(conn *websocket.Conn, msg DealMessage) error {
	if msg.Count < 1 || msg.Count > maxDeal {
		return errors.New("deal count should be between 1 and 52")
	}

	s, err := m.session(conn)
	if err != nil {
		return err
	}

	log.Printf("%s: deal (%d)", remoteAddr(conn), msg.Count)

	var res CardsMessage
	s.Do(func(d *Deck) {
		res.Cards = d.Deal(msg.Count)
		res.Left = d.Size()
	})

	return s.Send(MakeMessage("cards", res))
}

func (m *Manager) Leave(conn *websocket.Conn) {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()

	if _, ok := m.sessions[conn]; ok {
		delete(m.sessions, conn)
		log.Printf("%s: leave", remoteAddr(conn))
	}
}

func (m *Manager) SessionCount() int {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()

	return len(m.sessions)
}

func sendDeck(s *Session) error {
	var res DeckMessage
	s.Do(func(d *Deck) {
		res.Cards = d.Cards()
		res.Size = d.Size()
	})
	return s.Send(MakeMessage("deck", res))
}

func remoteAddr(conn *websocket.Conn) string {
	if req := conn.Request(); req != nil {
		return req.RemoteAddr
	}
	return conn.RemoteAddr().String()
}
