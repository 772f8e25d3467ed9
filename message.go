package cardsort

import (
	"encoding/json"
	"strconv"
)

type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type ErrorMessage string

type NewDeckMessage struct {
	Seed *int64 `json:"seed"`
}

func (m NewDeckMessage) String() string {
	if m.Seed == nil {
		return "seed=none"
	}
	return "seed=" + strconv.FormatInt(*m.Seed, 10)
}

type SortMessage struct {
	Aces  string `json:"aces"`
	Suits string `json:"suits"`
	By    string `json:"by"`
}

type RenderMessage struct {
	Fancy bool `json:"fancy"`
}

type DealMessage struct {
	Count int `json:"count"`
}

type DeckMessage struct {
	Size  int    `json:"size"`
	Cards []Card `json:"cards"`
}

type RenderedMessage struct {
	Text string `json:"text"`
}

type CardsMessage struct {
	Cards []Card `json:"cards"`
	Left  int    `json:"left"`
}

func MakeMessage(typ string, data interface{}) *Message {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	return &Message{typ, b}
}
