// Package idgen hands out the prefixed ids used for survey entities.
package idgen

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Entity prefixes
const (
	PrefixQuestion  = "q"
	PrefixChoice    = "c"
	PrefixBlock     = "block"
	PrefixPageBreak = "pb"
	PrefixLogicSet  = "set"
	PrefixCondition = "cond"
	PrefixBranch    = "branch"
)

// Generator produces ids unique for the lifetime of the process
type Generator interface {
	NewID(prefix string) string
}

// UUID generates "<prefix>_<uuid>" ids
type UUID struct{}

// NewUUID creates a uuid backed generator
func NewUUID() UUID {
	return UUID{}
}

func (UUID) NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

// Sequence generates "<prefix>_<n>" ids from a single counter shared by
// every prefix, so output is reproducible across runs.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence creates a sequence whose first id ends in start
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := prefix + "_" + strconv.Itoa(s.next)
	s.next++
	return id
}

// Func adapts a plain function to a Generator
type Func func(prefix string) string

func (f Func) NewID(prefix string) string {
	return f(prefix)
}
