package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/neilgarb/cardsort"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides CARDSORT_ADDR)")
	flag.Parse()

	cfg, err := cardsort.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	r := cardsort.NewRouter(cfg, cardsort.NewManager(cfg))

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
