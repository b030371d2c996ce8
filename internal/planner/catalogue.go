package planner

import (
	"fmt"
	"sort"
)

// Product describes a nicotine product the wizard can plan for.
type Product struct {
	Key          string
	Name         string
	Unit         string
	DefaultDaily int
	Min          int
	Max          int
	Tip          string
}

var catalogue = map[string]Product{
	"cigarettes": {
		Key: "cigarettes", Name: "Cigarettes", Unit: "cigarettes",
		DefaultDaily: 20, Min: 1, Max: 100,
		Tip: "A pack holds 20 cigarettes",
	},
	"iqos": {
		Key: "iqos", Name: "IQOS", Unit: "sticks",
		DefaultDaily: 15, Min: 1, Max: 50,
		Tip: "Around 10 to 20 sticks a day is typical",
	},
	"vape": {
		Key: "vape", Name: "Vape", Unit: "ml of liquid",
		DefaultDaily: 5, Min: 1, Max: 30,
		Tip: "An average vape goes through 3 to 10 ml a day",
	},
	"glo": {
		Key: "glo", Name: "Glo", Unit: "sticks",
		DefaultDaily: 12, Min: 1, Max: 40,
		Tip: "Around 10 to 15 sticks a day is typical",
	},
	"pipe": {
		Key: "pipe", Name: "Pipe", Unit: "grams",
		DefaultDaily: 5, Min: 1, Max: 30,
		Tip: "One fill is roughly 1 to 3 grams",
	},
	"snus": {
		Key: "snus", Name: "Snus", Unit: "pouches",
		DefaultDaily: 10, Min: 1, Max: 50,
		Tip: "A pouch usually lasts 30 to 60 minutes",
	},
}

// Lookup returns the product registered under key.
func Lookup(key string) (Product, error) {
	p, ok := catalogue[key]
	if !ok {
		return Product{}, fmt.Errorf("%w: unknown product %q", ErrInvalidInput, key)
	}
	return p, nil
}

// Products returns the catalogue sorted by key.
func Products() []Product {
	out := make([]Product, 0, len(catalogue))
	for _, p := range catalogue {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Keys returns the product keys sorted alphabetically.
func Keys() []string {
	products := Products()
	keys := make([]string, len(products))
	for i, p := range products {
		keys[i] = p.Key
	}
	return keys
}
