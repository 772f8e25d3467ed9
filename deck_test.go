package cardsort

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastSource always picks the highest index it is offered.
type lastSource struct{}

func (lastSource) Intn(n int) int { return n - 1 }

type recordingSource struct {
	calls []int
}

func (r *recordingSource) Intn(n int) int {
	r.calls = append(r.calls, n)
	return 0
}

func assertStandard(t *testing.T, d *Deck) {
	t.Helper()

	cards := d.Cards()
	assert.Len(t, cards, 52)

	ranks := make(map[Rank]bool)
	suits := make(map[Suit]bool)
	seen := make(map[Card]bool)
	for _, c := range cards {
		ranks[c.Rank()] = true
		suits[c.Suit()] = true
		seen[c] = true
	}
	assert.Len(t, ranks, 13)
	assert.Len(t, suits, 4)
	assert.Len(t, seen, 52)
}

func TestDeckBasics(t *testing.T) {
	d := NewStandardDeck(rand.New(rand.NewSource(1)))
	assertStandard(t, d)

	require.NoError(t, d.SortAscending(AcesLow, DefaultSuitOrder))
	assertStandard(t, d)

	d.Shuffle()
	assertStandard(t, d)

	d.SortFunc(CompareBySuit)
	assertStandard(t, d)
}

func TestNewStandardDeckIsSorted(t *testing.T) {
	cards := NewStandardDeck(nil).Cards()
	assert.Equal(t, MustParseCard("(♣) 2"), cards[0])
	assert.Equal(t, MustParseCard("(♦) 2"), cards[1])
	assert.Equal(t, MustParseCard("(♥) A"), cards[50])
	assert.Equal(t, MustParseCard("(♠) A"), cards[51])
}

func TestSortAscending(t *testing.T) {
	testCases := []struct {
		strategy  SortStrategy
		suitOrder string
		first     Card
		second    Card
		last      Card
	}{
		{
			strategy:  AcesHigh,
			suitOrder: "CDHS",
			first:     NewCard(SuitClubs, RankTwo),
			second:    NewCard(SuitDiamonds, RankTwo),
			last:      NewCard(SuitSpades, RankAce),
		},
		{
			strategy:  AcesLow,
			suitOrder: "CDHS",
			first:     NewCard(SuitClubs, RankAce),
			second:    NewCard(SuitDiamonds, RankAce),
			last:      NewCard(SuitSpades, RankKing),
		},
		{
			strategy:  AcesHigh,
			suitOrder: "SHDC",
			first:     NewCard(SuitSpades, RankTwo),
			second:    NewCard(SuitHearts, RankTwo),
			last:      NewCard(SuitClubs, RankAce),
		},
		{
			strategy:  AcesLow,
			suitOrder: "HCSD",
			first:     NewCard(SuitHearts, RankAce),
			second:    NewCard(SuitClubs, RankAce),
			last:      NewCard(SuitDiamonds, RankKing),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.strategy.String()+"/"+testCase.suitOrder, func(t *testing.T) {
			d := NewStandardDeck(nil)
			d.Shuffle()
			require.NoError(t, d.SortAscending(testCase.strategy, testCase.suitOrder))

			cards := d.Cards()
			assert.Equal(t, testCase.first, cards[0])
			assert.Equal(t, testCase.second, cards[1])
			assert.Equal(t, testCase.last, cards[len(cards)-1])
		})
	}
}

func TestSortAscendingInvalidSuitOrder(t *testing.T) {
	for _, order := range []string{"", "XXXX", "CDH", "CDHSS", "CCDH", "cdhs"} {
		d := NewStandardDeck(nil)
		before := d.Cards()

		err := d.SortAscending(AcesLow, order)
		assert.True(t, errors.Is(err, ErrInvalidSuitOrder), order)
		assert.Equal(t, before, d.Cards(), order)
	}
}

func TestSortFunc(t *testing.T) {
	d := NewStandardDeck(nil)
	d.SortFunc(CompareBySuit)

	cards := d.Cards()
	for i := 0; i < 13; i++ {
		assert.Equal(t, SuitClubs, cards[i].Suit())
		assert.Equal(t, SuitSpades, cards[len(cards)-(i+1)].Suit())
	}
	assert.Equal(t, NewCard(SuitClubs, RankTwo), cards[0])
	assert.Equal(t, NewCard(SuitClubs, RankAce), cards[12])
}

func TestShuffleDrawsFromCurrentIndex(t *testing.T) {
	src := &recordingSource{}
	d := NewStandardDeck(src)
	before := d.Cards()

	d.Shuffle()

	var want []int
	for n := 52; n >= 2; n-- {
		want = append(want, n)
	}
	assert.Equal(t, want, src.calls)
	assert.Equal(t, before, d.Cards())
}

func TestShuffleVector(t *testing.T) {
	d := NewStandardDeck(lastSource{})
	d.Shuffle()

	cards := d.Cards()
	assert.Equal(t, MustParseCard("(♠) A"), cards[0])
	assert.Equal(t, MustParseCard("(♣) 2"), cards[1])
	assert.Equal(t, MustParseCard("(♥) A"), cards[51])
}

func TestShuffleSeeded(t *testing.T) {
	d1 := NewStandardDeck(rand.New(rand.NewSource(5)))
	d2 := NewStandardDeck(rand.New(rand.NewSource(5)))

	d1.Shuffle()
	d2.Shuffle()
	first := d1.Cards()
	assert.Equal(t, first, d2.Cards())
	assert.Equal(t, MustParseCard("(♥) Q"), first[0])
	assert.Equal(t, MustParseCard("(♠) 5"), first[51])
	assert.NotEqual(t, NewStandardDeck(nil).Cards(), first)

	d1.Shuffle()
	assert.NotEqual(t, first, d1.Cards())
	assertStandard(t, d1)
}

func TestShuffleSmallDecks(t *testing.T) {
	d := NewDeck(lastSource{})
	d.Shuffle()
	assert.Equal(t, 0, d.Size())

	c := NewCard(SuitHearts, RankQueen)
	d = NewDeck(lastSource{}, c)
	d.Shuffle()
	assert.Equal(t, []Card{c}, d.Cards())
}

func TestRender(t *testing.T) {
	var cards []Card
	for _, r := range []Rank{RankTwo, RankThree, RankFour, RankFive, RankSix} {
		cards = append(cards, NewCard(SuitClubs, r))
	}
	d := NewDeck(nil, cards...)

	assert.Equal(t, " 2 (C)| 3 (C)| 4 (C)| 5 (C)|\n 6 (C)|\n", d.Render(false))
	assert.Equal(t, " 2 (♣)| 3 (♣)| 4 (♣)| 5 (♣)|\n 6 (♣)|\n", d.Render(true))
	assert.Equal(t, d.Render(false), d.String())
	assert.Equal(t, d.Render(true), d.FancyString())

	d = NewDeck(nil, cards[:4]...)
	assert.Equal(t, " 2 (C)| 3 (C)| 4 (C)| 5 (C)|\n\n", d.Render(false))

	assert.Equal(t, "\n", NewDeck(nil).Render(false))
}

func TestRenderStandardDeck(t *testing.T) {
	text := NewStandardDeck(nil).Render(true)
	lines := strings.Split(text, "\n")

	assert.Equal(t, 14, strings.Count(text, "\n"))
	assert.Equal(t, " 2 (♣)| 2 (♦)| 2 (♥)| 2 (♠)|", lines[0])
	assert.Equal(t, "10 (♣)|10 (♦)|10 (♥)|10 (♠)|", lines[8])
	assert.Equal(t, " A (♣)| A (♦)| A (♥)| A (♠)|", lines[12])
}

func TestPrint(t *testing.T) {
	d := NewStandardDeck(nil)

	var buf bytes.Buffer
	require.NoError(t, d.Print(&buf, false))
	assert.Equal(t, d.Render(false), buf.String())
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintError(t *testing.T) {
	err := NewStandardDeck(nil).Print(errWriter{}, true)
	assert.EqualError(t, err, "disk full")
}

func TestDeal(t *testing.T) {
	d := NewStandardDeck(nil)
	top := d.Cards()[:5]

	assert.Equal(t, top, d.Deal(5))
	assert.Equal(t, 47, d.Size())

	assert.Empty(t, d.Deal(-1))
	assert.Equal(t, 47, d.Size())

	rest := d.Deal(100)
	assert.Len(t, rest, 47)
	assert.Equal(t, 0, d.Size())
	assert.Empty(t, d.Deal(1))
}

func TestNewDeckCopiesCards(t *testing.T) {
	cards := []Card{NewCard(SuitHearts, RankTwo), NewCard(SuitSpades, RankThree)}
	d := NewDeck(nil, cards...)
	cards[0] = NewCard(SuitClubs, RankAce)

	assert.Equal(t, NewCard(SuitHearts, RankTwo), d.Cards()[0])

	out := d.Cards()
	out[1] = NewCard(SuitClubs, RankAce)
	assert.Equal(t, NewCard(SuitSpades, RankThree), d.Cards()[1])
}

func TestParseSortStrategy(t *testing.T) {
	testCases := []struct {
		input    string
		strategy SortStrategy
		err      bool
	}{
		{"", AcesHigh, false},
		{"high", AcesHigh, false},
		{"Aces-High", AcesHigh, false},
		{"low", AcesLow, false},
		{" LOW ", AcesLow, false},
		{"middle", AcesHigh, true},
	}

	for _, testCase := range testCases {
		strategy, err := ParseSortStrategy(testCase.input)
		if testCase.err {
			assert.Error(t, err, testCase.input)
			continue
		}
		assert.NoError(t, err, testCase.input)
		assert.Equal(t, testCase.strategy, strategy, testCase.input)
	}
}
