package domain

// ComputeChange breaks amount into cash from snapshot using the largest
// denominations first. snapshot must be sorted by value descending.
// When stock cannot cover the amount, ok is false and remainder is the
// part left unpaid; breakdown is then only what greedy selection reached.
func ComputeChange(amount int64, snapshot []InventoryEntry) (breakdown []CashLine, remainder int64, ok bool) {
	remainder = amount
	for _, e := range snapshot {
		if remainder == 0 {
			break
		}
		if e.Denomination <= 0 || e.Quantity <= 0 || e.Denomination > remainder {
			continue
		}
		units := remainder / e.Denomination
		if units > e.Quantity {
			units = e.Quantity
		}
		breakdown = append(breakdown, CashLine{Denomination: e.Denomination, Quantity: units})
		remainder -= units * e.Denomination
	}
	return breakdown, remainder, remainder == 0
}
