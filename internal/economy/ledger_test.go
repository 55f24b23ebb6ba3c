package economy

import "testing"

func TestCanAfford(t *testing.T) {
	l := NewLedger(map[Kind]int{Wood: 10, Stone: 5})

	tests := []struct {
		name string
		cost Cost
		want bool
	}{
		{"empty cost", Cost{}, true},
		{"exact", Cost{Wood: 10, Stone: 5}, true},
		{"one kind short", Cost{Wood: 10, Stone: 6}, false},
		{"absent kind required", Cost{Gold: 1}, false},
		{"zero of absent kind", Cost{Gold: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.CanAfford(tt.cost); got != tt.want {
				t.Errorf("CanAfford(%s) = %v, want %v", tt.cost, got, tt.want)
			}
		})
	}
}

func TestGatedDebitNeverNegative(t *testing.T) {
	l := NewLedger(map[Kind]int{Wood: 25, Food: 7})
	cost := Cost{Wood: 4, Food: 1}

	debits := 0
	for i := 0; i < 50; i++ {
		if l.CanAfford(cost) {
			l.Debit(cost)
			debits++
		}
		for _, k := range AllKinds() {
			if l.Get(k) < 0 {
				t.Fatalf("%s went negative after %d debits", k, debits)
			}
		}
	}
	if debits != 6 {
		t.Fatalf("debits = %d, want 6", debits)
	}
	if l.Get(Wood) != 1 || l.Get(Food) != 1 {
		t.Fatalf("left with %s", l)
	}
}

func TestDebitUnaffordablePanicsWithoutMutation(t *testing.T) {
	l := NewLedger(map[Kind]int{Wood: 10, Stone: 1})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unaffordable debit")
		}
		if l.Get(Wood) != 10 || l.Get(Stone) != 1 {
			t.Fatalf("ledger mutated by failed debit: %s", l)
		}
	}()
	l.Debit(Cost{Wood: 5, Stone: 2})
}

func TestCredit(t *testing.T) {
	l := NewLedger(nil)
	l.Credit(Food, 3)
	l.Credit(Food, -2)
	l.Credit(Tools, 0)
	if l.Get(Food) != 3 {
		t.Fatalf("food = %d, want 3", l.Get(Food))
	}
	if l.Total() != 3 {
		t.Fatalf("total = %d, want 3", l.Total())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	l := NewLedger(map[Kind]int{Gold: 2})
	snap := l.Snapshot()
	snap[Gold] = 99
	if l.Get(Gold) != 2 {
		t.Fatalf("snapshot aliases ledger")
	}
	if len(snap) != NumKinds {
		t.Fatalf("snapshot has %d kinds, want %d", len(snap), NumKinds)
	}
}

func TestParseCost(t *testing.T) {
	c, err := ParseCost(map[string]int{"Wood": 3, "food": 1})
	if err != nil {
		t.Fatalf("ParseCost: %v", err)
	}
	if c[Wood] != 3 || c[Food] != 1 {
		t.Fatalf("got %s", c)
	}
	if got := c.String(); got != "wood:3 food:1" {
		t.Fatalf("String() = %q", got)
	}

	if _, err := ParseCost(map[string]int{"mithril": 1}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := ParseCost(map[string]int{"wood": -1}); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}
