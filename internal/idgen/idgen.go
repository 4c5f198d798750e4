// Package idgen mints student identifiers that are unique for the
// lifetime of the owning process.
package idgen

import (
	"strconv"
	"sync/atomic"
	"time"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "S"

// Generator produces identifiers of the form prefix + decimal counter.
//
// The counter is seeded from the wall clock once at construction and only
// ever increments, so two calls on the same Generator never return the same
// identifier, no matter how close together they happen. Identifiers minted
// by other processes or other Generators are distinct only with high
// probability; callers that merge identifiers from elsewhere must re-check
// for collisions themselves.
type Generator struct {
	prefix string
	last   atomic.Int64
}

// New returns a Generator seeded from the current time.
// An empty prefix falls back to DefaultPrefix.
func New(prefix string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g := &Generator{prefix: prefix}
	g.last.Store(time.Now().UnixMilli())
	return g
}

// Next returns a fresh identifier.
func (g *Generator) Next() string {
	return g.prefix + strconv.FormatInt(g.last.Add(1), 10)
}
