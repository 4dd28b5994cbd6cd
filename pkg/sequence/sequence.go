// Package sequence generates human-readable document numbers (invoices,
// purchase orders, expenses) scoped per shop.
//
// A number looks like INV-20260829-00042-K7QX3518: prefix, date, a sequence
// derived from the last persisted number for the same shop and month, and a
// random suffix mixed with a millisecond component. The sequence keeps numbers
// readable and roughly ordered; the suffix makes collisions under concurrent
// creation practically impossible. Uniqueness is still authoritative at the
// storage unique constraint: callers retry generation a bounded number of
// times when the insert collides.
package sequence

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const suffixAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Generator builds document numbers. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator returns a Generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewGeneratorAt returns a Generator with a fixed clock, for tests.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(1)),
		now: now,
	}
}

// SearchPrefix returns the "PREFIX-YYYYMM" fragment identifying numbers of the
// current month. Callers use it to look up the last persisted number.
func (g *Generator) SearchPrefix(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, g.now().Format("200601"))
}

// Next builds the next number after last. last is the highest existing number
// matching SearchPrefix for the shop, or empty when none exists yet.
func (g *Generator) Next(prefix, last string) string {
	now := g.now()
	seq := nextSequence(last)

	g.mu.Lock()
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = suffixAlphabet[g.rnd.Intn(len(suffixAlphabet))]
	}
	g.mu.Unlock()

	millis := now.UnixMilli() % 10000
	return fmt.Sprintf("%s-%s-%05d-%s%04d", prefix, now.Format("20060102"), seq, suffix, millis)
}

// nextSequence extracts the sequence component from a previously generated
// number and increments it. Unparseable or absent input restarts at 1; the
// random suffix covers any resulting overlap.
func nextSequence(last string) int {
	if last == "" {
		return 1
	}
	parts := strings.Split(last, "-")
	if len(parts) < 3 {
		return 1
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 1
	}
	return seq + 1
}
