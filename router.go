package cardsort

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/net/websocket"
)

// NewRouter serves decks over plain HTTP and hands /ws connections to m.
func NewRouter(cfg *Config, m *Manager) *httprouter.Router {
	if cfg == nil {
		cfg = &Config{SuitOrder: DefaultSuitOrder}
	}
	if m == nil {
		m = NewManager(cfg)
	}
	h := &handler{cfg: cfg, manager: m}

	r := httprouter.New()
	r.GET("/deck", h.deckText)
	r.GET("/deck.json", h.deckJSON)
	r.GET("/card/:card", h.card)
	r.GET("/ws", h.ws)
	return r
}

type handler struct {
	cfg     *Config
	manager *Manager
}

type deckQuery struct {
	order    string
	strategy SortStrategy
	suits    string
	seed     *int64
	plain    bool
}

func parseDeckQuery(q url.Values, cfg *Config) (deckQuery, error) {
	dq := deckQuery{
		order: strings.ToLower(q.Get("order")),
		suits: cfg.SuitOrder,
		plain: cfg.Plain,
	}

	strategy, err := ParseSortStrategy(q.Get("aces"))
	if err != nil {
		return dq, err
	}
	dq.strategy = strategy

	if suits := q.Get("suits"); suits != "" {
		dq.suits = strings.ToUpper(suits)
	}
	if err := ValidateSuitOrder(dq.suits); err != nil {
		return dq, err
	}

	if seedStr := q.Get("seed"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return dq, err
		}
		dq.seed = &seed
	} else {
		dq.seed = cfg.Seed
	}

	if plainStr := q.Get("plain"); plainStr != "" {
		plain, err := strconv.ParseBool(plainStr)
		if err != nil {
			return dq, err
		}
		dq.plain = plain
	}

	return dq, nil
}

func (dq deckQuery) build() (*Deck, error) {
	var src Source
	if dq.seed != nil {
		src = rand.New(rand.NewSource(*dq.seed))
	}
	d := NewStandardDeck(src)

	switch dq.order {
	case "", "sorted":
		if err := d.SortAscending(dq.strategy, dq.suits); err != nil {
			return nil, err
		}
	case "random":
		d.Shuffle()
	case "suit":
		d.SortFunc(CompareBySuit)
	default:
		return nil, errUnknownOrder(dq.order)
	}
	return d, nil
}

type errUnknownOrder string

func (e errUnknownOrder) Error() string {
	return "unknown order " + strconv.Quote(string(e))
}

func (h *handler) buildDeck(w http.ResponseWriter, r *http.Request) (*Deck, deckQuery, bool) {
	dq, err := parseDeckQuery(r.URL.Query(), h.cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, dq, false
	}

	d, err := dq.build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, dq, false
	}

	log.Printf("%s: %s (order=%s aces=%s suits=%s)",
		r.RemoteAddr, r.URL.Path, dq.order, dq.strategy, dq.suits)

	return d, dq, true
}

func (h *handler) deckText(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	d, dq, ok := h.buildDeck(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := d.Print(w, !dq.plain); err != nil {
		log.Printf("%s: %s: %v", r.RemoteAddr, r.URL.Path, err)
	}
}

func (h *handler) deckJSON(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	d, _, ok := h.buildDeck(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, d.Cards())
}

type cardResponse struct {
	Card  Card   `json:"card"`
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Face  bool   `json:"face"`
	Plain string `json:"plain"`
	Fancy string `json:"fancy"`
}

func (h *handler) card(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, err := ParseCard(ps.ByName("card"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, cardResponse{
		Card:  c,
		Suit:  c.Suit().String(),
		Rank:  c.Rank().String(),
		Face:  c.IsFaceCard(),
		Plain: c.String(),
		Fancy: c.FancyString(),
	})
}

func (h *handler) ws(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	websocket.Handler(h.manager.Serve).ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}
