// Package catalog holds the immutable reference data a scoring run resolves
// against: the move catalog and the held-item catalog. Both are loaded once
// per run and never mutated afterwards, which keeps the scoring engine a
// pure function.
package catalog

import (
	"fmt"

	"royalemeta/internal/dex"
)

// Catalog is the process-wide move lookup table.
type Catalog struct {
	moves map[string]dex.Move
}

// New builds a catalog from a move list. Duplicate names are a data bug and
// rejected outright.
func New(moves []dex.Move) (*Catalog, error) {
	c := &Catalog{moves: make(map[string]dex.Move, len(moves))}
	for _, m := range moves {
		if m.Name == "" {
			return nil, fmt.Errorf("move catalog entry with empty name")
		}
		if _, dup := c.moves[m.Name]; dup {
			return nil, fmt.Errorf("duplicate move catalog entry %q", m.Name)
		}
		c.moves[m.Name] = m
	}
	return c, nil
}

// Lookup resolves a move name against the catalog.
func (c *Catalog) Lookup(name string) (dex.Move, bool) {
	m, ok := c.moves[name]
	return m, ok
}

// Resolve maps a profile's move names to catalog entries. The first missing
// name fails the whole profile with an UnknownMoveError.
func (c *Catalog) Resolve(p dex.Profile) ([]dex.Move, error) {
	out := make([]dex.Move, 0, len(p.Moves))
	for _, name := range p.Moves {
		m, ok := c.moves[name]
		if !ok {
			return nil, &dex.UnknownMoveError{Profile: p.Name, Move: name}
		}
		out = append(out, m)
	}
	return out, nil
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int { return len(c.moves) }
