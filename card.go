package cardsort

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat = errors.New("invalid card string")
	ErrInvalidSuit   = errors.New("invalid suit")
	ErrInvalidRank   = errors.New("invalid rank")
)

type Suit int

const (
	SuitUnknown  Suit = 0
	SuitClubs    Suit = 1
	SuitDiamonds Suit = 2
	SuitHearts   Suit = 3
	SuitSpades   Suit = 4
)

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "Clubs"
	case SuitDiamonds:
		return "Diamonds"
	case SuitHearts:
		return "Hearts"
	case SuitSpades:
		return "Spades"
	}
	return "Unknown"
}

// Char returns the single-letter code of the suit (C, D, H or S).
func (s Suit) Char() (rune, error) {
	switch s {
	case SuitClubs:
		return 'C', nil
	case SuitDiamonds:
		return 'D', nil
	case SuitHearts:
		return 'H', nil
	case SuitSpades:
		return 'S', nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidSuit, int(s))
}

// Symbol returns the unicode glyph of the suit.
func (s Suit) Symbol() (rune, error) {
	switch s {
	case SuitClubs:
		return '♣', nil
	case SuitDiamonds:
		return '♦', nil
	case SuitHearts:
		return '♥', nil
	case SuitSpades:
		return '♠', nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidSuit, int(s))
}

// AllSuits returns the suits in display order.
func AllSuits() []Suit {
	return []Suit{
		SuitClubs,
		SuitDiamonds,
		SuitHearts,
		SuitSpades,
	}
}

func suitFromRune(r rune) (Suit, bool) {
	switch r {
	case 'C', 'c', '♣':
		return SuitClubs, true
	case 'D', 'd', '♦':
		return SuitDiamonds, true
	case 'H', 'h', '♥':
		return SuitHearts, true
	case 'S', 's', '♠':
		return SuitSpades, true
	}
	return SuitUnknown, false
}

type Rank int

const (
	RankUnknown Rank = 0
	RankTwo     Rank = 2
	RankThree   Rank = 3
	RankFour    Rank = 4
	RankFive    Rank = 5
	RankSix     Rank = 6
	RankSeven   Rank = 7
	RankEight   Rank = 8
	RankNine    Rank = 9
	RankTen     Rank = 10
	RankJack    Rank = 11
	RankQueen   Rank = 12
	RankKing    Rank = 13
	RankAce     Rank = 14
)

func (r Rank) String() string {
	switch r {
	case RankTwo:
		return "Two"
	case RankThree:
		return "Three"
	case RankFour:
		return "Four"
	case RankFive:
		return "Five"
	case RankSix:
		return "Six"
	case RankSeven:
		return "Seven"
	case RankEight:
		return "Eight"
	case RankNine:
		return "Nine"
	case RankTen:
		return "Ten"
	case RankJack:
		return "Jack"
	case RankQueen:
		return "Queen"
	case RankKing:
		return "King"
	case RankAce:
		return "Ace"
	}
	return "Unknown"
}

func (r Rank) Valid() bool {
	return r >= RankTwo && r <= RankAce
}

// IsFace reports whether r is a Jack or higher. Aces count.
func (r Rank) IsFace() bool {
	return r >= RankJack
}

// Token is the rank as it appears in a card string: the numeral for 2 to 10,
// otherwise the first letter of the rank's name.
func (r Rank) Token() string {
	if !r.Valid() {
		return "?"
	}
	if r.IsFace() {
		return r.String()[:1]
	}
	return strconv.Itoa(int(r))
}

func AllRanks() []Rank {
	return []Rank{
		RankTwo,
		RankThree,
		RankFour,
		RankFive,
		RankSix,
		RankSeven,
		RankEight,
		RankNine,
		RankTen,
		RankJack,
		RankQueen,
		RankKing,
		RankAce,
	}
}

func rankFromToken(tok string) (Rank, bool) {
	if isDigits(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return RankUnknown, false
		}
		r := Rank(n)
		if r < RankTwo || r > RankTen {
			return RankUnknown, false
		}
		return r, true
	}
	switch tok {
	case "A":
		return RankAce, true
	case "K":
		return RankKing, true
	case "Q":
		return RankQueen, true
	case "J":
		return RankJack, true
	}
	return RankUnknown, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type Card struct {
	suit Suit
	rank Rank
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{suit, rank}
}

// CardFromInt builds a card from a raw rank value, rejecting anything
// outside 2..14.
func CardFromInt(suit Suit, rank int) (Card, error) {
	r := Rank(rank)
	if !r.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	return Card{suit, r}, nil
}

func (c Card) Suit() Suit {
	return c.suit
}

func (c Card) Rank() Rank {
	return c.rank
}

func (c Card) IsFaceCard() bool {
	return c.rank.IsFace()
}

// String renders the card with its suit letter, e.g. " 5 (S)" or "10 (D)".
func (c Card) String() string {
	return c.Format(false)
}

// FancyString renders the card with its suit glyph, e.g. " K (♥)".
func (c Card) FancyString() string {
	return c.Format(true)
}

// Format is Text with '?' standing in for an unknown suit or rank.
func (c Card) Format(fancy bool) string {
	if s, err := c.Text(fancy); err == nil {
		return s
	}
	ind := '?'
	if r, err := c.suitIndicator(fancy); err == nil {
		ind = r
	}
	return fmt.Sprintf("%2s (%c)", c.rank.Token(), ind)
}

// Text renders the card, failing on a suit or rank outside the known set.
func (c Card) Text(fancy bool) (string, error) {
	ind, err := c.suitIndicator(fancy)
	if err != nil {
		return "", err
	}
	if !c.rank.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidRank, int(c.rank))
	}
	return fmt.Sprintf("%2s (%c)", c.rank.Token(), ind), nil
}

func (c Card) suitIndicator(fancy bool) (rune, error) {
	if fancy {
		return c.suit.Symbol()
	}
	return c.suit.Char()
}

var (
	suitFirstRe = regexp.MustCompile(`^\((.)\)\s*(\S{1,2})$`)
	rankFirstRe = regexp.MustCompile(`^(\S{1,2})\s*\((.)\)$`)
)

// ParseCard reads a card in the "(S) R" form, where S is a suit letter
// (any case) or glyph and R is 2-10, A, K, Q or J. The "R (S)" form produced
// by Format is accepted as well.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)

	var suitTok, rankTok string
	if m := suitFirstRe.FindStringSubmatch(s); m != nil {
		suitTok, rankTok = m[1], m[2]
	} else if m := rankFirstRe.FindStringSubmatch(s); m != nil {
		rankTok, suitTok = m[1], m[2]
	} else {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	suit, ok := suitFromRune([]rune(suitTok)[0])
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidFormat, suitTok, s)
	}
	rank, ok := rankFromToken(rankTok)
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidFormat, rankTok, s)
	}

	return Card{suit, rank}, nil
}

func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) MarshalJSON() ([]byte, error) {
	s, err := c.Text(false)
	if err != nil {
		return nil, err
	}
	return json.Marshal(strings.TrimSpace(s))
}

func (c *Card) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	card, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
