package cardsort

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

const DefaultSuitOrder = "CDHS"

var ErrInvalidSuitOrder = errors.New("invalid suit order")

// Source is the randomness a Deck shuffles with. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type SortStrategy int

const (
	AcesHigh SortStrategy = iota
	AcesLow
)

func (s SortStrategy) String() string {
	if s == AcesLow {
		return "low"
	}
	return "high"
}

func ParseSortStrategy(s string) (SortStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "high", "aces-high":
		return AcesHigh, nil
	case "low", "aces-low":
		return AcesLow, nil
	}
	return AcesHigh, fmt.Errorf("unknown sort strategy %q", s)
}

type Deck struct {
	cards []Card
	rand  Source
}

// NewDeck returns a deck holding cards in the given order. A nil source is
// replaced by a time-seeded one.
func NewDeck(r Source, cards ...Card) *Deck {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Deck{cards: append([]Card(nil), cards...), rand: r}
}

// NewStandardDeck returns all 52 cards sorted ace-high.
func NewStandardDeck(r Source) *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range AllSuits() {
		for _, rk := range AllRanks() {
			cards = append(cards, NewCard(s, rk))
		}
	}
	d := NewDeck(r, cards...)
	d.SortFunc(CompareAcesHigh)
	return d
}

func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the deck's current order.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Deal removes up to n cards from the top of the deck.
func (d *Deck) Deal(n int) []Card {
	if n < 0 {
		n = 0
	}
	if n > len(d.cards) {
		n = len(d.cards)
	}
	dealt := append([]Card(nil), d.cards[:n]...)
	d.cards = d.cards[n:]
	return dealt
}

// Shuffle is the modern Fisher-Yates: each position i up to n-2 is swapped
// with a uniformly drawn position in [i, n-1].
func (d *Deck) Shuffle() {
	n := len(d.cards)
	for i := 0; i <= n-2; i++ {
		j := i + d.rand.Intn(n-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// SortAscending orders by rank, with ties broken by the position of the suit
// letter in suitOrder, which must be a permutation of "CDHS".
func (d *Deck) SortAscending(strategy SortStrategy, suitOrder string) error {
	cmpFn, err := RankComparator(strategy, suitOrder)
	if err != nil {
		return err
	}
	d.SortFunc(cmpFn)
	return nil
}

// SortFunc stably sorts the deck with a caller-supplied ordering.
func (d *Deck) SortFunc(cmpFn func(a, b Card) int) {
	slices.SortStableFunc(d.cards, cmpFn)
}

func (d *Deck) String() string {
	return d.Render(false)
}

func (d *Deck) FancyString() string {
	return d.Render(true)
}

// Render writes every card followed by "|", breaking the line after every
// fourth card and once more at the end.
func (d *Deck) Render(fancy bool) string {
	var b strings.Builder
	for i, c := range d.cards {
		b.WriteString(c.Format(fancy))
		b.WriteByte('|')
		if i%4 == 3 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (d *Deck) Print(w io.Writer, fancy bool) error {
	_, err := io.WriteString(w, d.Render(fancy))
	return err
}

// ValidateSuitOrder checks that order is some arrangement of "CDHS".
func ValidateSuitOrder(order string) error {
	got := []rune(order)
	slices.Sort(got)
	if string(got) != DefaultSuitOrder {
		return fmt.Errorf("%w: %q", ErrInvalidSuitOrder, order)
	}
	return nil
}

// RankComparator builds the ordering used by SortAscending.
func RankComparator(strategy SortStrategy, suitOrder string) (func(a, b Card) int, error) {
	if err := ValidateSuitOrder(suitOrder); err != nil {
		return nil, err
	}
	return func(a, b Card) int {
		if c := cmp.Compare(adjustedRank(a.rank, strategy), adjustedRank(b.rank, strategy)); c != 0 {
			return c
		}
		return cmp.Compare(suitIndex(suitOrder, a.suit), suitIndex(suitOrder, b.suit))
	}, nil
}

func adjustedRank(r Rank, strategy SortStrategy) int {
	if r == RankAce && strategy == AcesLow {
		return 1
	}
	return int(r)
}

// Unknown suits sort before every known one.
func suitIndex(order string, s Suit) int {
	ch, err := s.Char()
	if err != nil {
		return -1
	}
	return strings.IndexRune(order, ch)
}

var (
	CompareAcesHigh = mustRankComparator(AcesHigh, DefaultSuitOrder)
	CompareAcesLow  = mustRankComparator(AcesLow, DefaultSuitOrder)
)

func mustRankComparator(strategy SortStrategy, suitOrder string) func(a, b Card) int {
	cmpFn, err := RankComparator(strategy, suitOrder)
	if err != nil {
		panic(err)
	}
	return cmpFn
}

// CompareBySuit groups cards by suit in declaration order, then by natural
// rank within each suit.
func CompareBySuit(a, b Card) int {
	if c := cmp.Compare(a.suit, b.suit); c != 0 {
		return c
	}
	return cmp.Compare(a.rank, b.rank)
}
