package cardsort

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	Seed      *int64
	SuitOrder string
	Plain     bool
}

// LoadConfig reads an optional .env file and then the CARDSORT_* variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:      ":8080",
		SuitOrder: DefaultSuitOrder,
	}

	if addr := strings.TrimSpace(os.Getenv("CARDSORT_ADDR")); addr != "" {
		cfg.Addr = addr
	}

	if seedStr := strings.TrimSpace(os.Getenv("CARDSORT_SEED")); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CARDSORT_SEED: %w", err)
		}
		cfg.Seed = &seed
	}

	if order := strings.TrimSpace(os.Getenv("CARDSORT_SUIT_ORDER")); order != "" {
		if err := ValidateSuitOrder(strings.ToUpper(order)); err != nil {
			return nil, fmt.Errorf("invalid CARDSORT_SUIT_ORDER: %w", err)
		}
		cfg.SuitOrder = strings.ToUpper(order)
	}

	if plainStr := strings.TrimSpace(os.Getenv("CARDSORT_PLAIN")); plainStr != "" {
		plain, err := strconv.ParseBool(plainStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CARDSORT_PLAIN: %w", err)
		}
		cfg.Plain = plain
	}

	return cfg, nil
}

// Source returns a seeded source when a seed is configured and nil otherwise,
// which NewDeck turns into a time-seeded one.
func (c *Config) Source() Source {
	if c == nil || c.Seed == nil {
		return nil
	}
	return rand.New(rand.NewSource(*c.Seed))
}
