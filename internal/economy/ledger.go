package economy

import "fmt"

// Ledger holds the colony stockpile. Quantities never go negative as long
// as every Debit is gated by CanAfford.
type Ledger struct {
	stock [NumKinds]int
}

// NewLedger creates a ledger seeded with the starting quantities.
func NewLedger(start map[Kind]int) *Ledger {
	l := &Ledger{}
	for k, v := range start {
		if int(k) < NumKinds && v > 0 {
			l.stock[k] = v
		}
	}
	return l
}

// Get returns the quantity held of one kind.
func (l *Ledger) Get(k Kind) int {
	return l.stock[k]
}

// CanAfford reports whether every kind in cost is held in at least the
// required amount. Kinds absent from cost are unconstrained.
func (l *Ledger) CanAfford(cost Cost) bool {
	for k, need := range cost {
		if l.stock[k] < need {
			return false
		}
	}
	return true
}

// Debit subtracts the whole bundle. The caller must have checked CanAfford;
// an unaffordable debit is a programmer error and panics before anything
// is subtracted.
func (l *Ledger) Debit(cost Cost) {
	if !l.CanAfford(cost) {
		panic(fmt.Sprintf("economy: debit %s exceeds stock %s", cost, l.String()))
	}
	for k, need := range cost {
		l.stock[k] -= need
	}
}

// Credit adds income of one kind. Non-positive amounts are ignored.
func (l *Ledger) Credit(k Kind, amount int) {
	if amount <= 0 {
		return
	}
	l.stock[k] += amount
}

// Snapshot returns a copy of the stockpile keyed by kind.
func (l *Ledger) Snapshot() map[Kind]int {
	out := make(map[Kind]int, NumKinds)
	for _, k := range AllKinds() {
		out[k] = l.stock[k]
	}
	return out
}

// Total returns the sum of all quantities.
func (l *Ledger) Total() int {
	total := 0
	for _, v := range l.stock {
		total += v
	}
	return total
}

func (l *Ledger) String() string {
	return Cost(l.Snapshot()).String()
}
