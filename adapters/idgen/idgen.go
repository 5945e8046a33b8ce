// Package idgen provides schema variant id generation.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/artpar/specforge/ports"
)

// Variant mints schema variant ids. Ids are opaque and never reused; the
// "sv-" prefix keeps them recognizable in artifacts and logs.
type Variant struct{}

// New mints a fresh variant id.
func (Variant) New() string {
	return "sv-" + uuid.New().String()
}

// Ensure interface compliance.
var _ ports.IDGenerator = Variant{}

// Sequential mints predictable ids for tests.
type Sequential struct {
	prefix  string
	counter uint64
}

// NewSequential creates a sequential generator with the given prefix.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// New mints the next sequential id.
func (s *Sequential) New() string {
	return fmt.Sprintf("%s%d", s.prefix, atomic.AddUint64(&s.counter, 1))
}

// Ensure interface compliance.
var _ ports.IDGenerator = (*Sequential)(nil)
