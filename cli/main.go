package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/neilgarb/cardsort"
)

const usage = "Please enter --sorted or --random to print out a sorted or a randomized deck respectively."

const fancyNotice = "Printing deck with fancy unicode characters, if this doesn't work on windows add the --plain flag"

func main() {
	cfg, err := cardsort.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	os.Exit(run(os.Args[1:], cfg, os.Stdout, os.Stderr))
}

func run(args []string, cfg *cardsort.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cardsort", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		help    = fs.Bool("help", false, "print usage")
		sorted  = fs.Bool("sorted", false, "print the deck sorted ascending")
		random  = fs.Bool("random", false, "print the deck shuffled")
		plain   = fs.Bool("plain", cfg.Plain, "use suit letters instead of unicode glyphs")
		acesLow = fs.Bool("aces-low", false, "sort aces below twos")
		suits   = fs.String("suits", cfg.SuitOrder, "suit tie-break order, a permutation of CDHS")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if len(args) == 0 || *help {
		fmt.Fprintln(stdout, usage)
		return 1
	}

	deck := cardsort.NewStandardDeck(cfg.Source())

	switch {
	case *random:
		deck.Shuffle()
	case *sorted:
		strategy := cardsort.AcesHigh
		if *acesLow {
			strategy = cardsort.AcesLow
		}
		if err := deck.SortAscending(strategy, strings.ToUpper(*suits)); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	if !*plain {
		fmt.Fprintln(stdout, fancyNotice)
	}
	if err := deck.Print(stdout, !*plain); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
