package inventory

// Diff compares the current snapshot against the previous one.
//
// Pure and deterministic: no side effects, O(n) in the combined snapshot
// size. Added/Removed partition the symmetric difference of the key sets;
// Changed is a subset of the intersection (keys whose amount differs).
func Diff(current, previous Snapshot) DiffResult {
	d := DiffResult{
		Added:   map[string]Item{},
		Removed: map[string]Item{},
		Changed: map[string]AmountChange{},
	}

	for id, cur := range current {
		prev, ok := previous[id]
		if !ok {
			d.Added[id] = cur
			continue
		}
		if cur.Amount != prev.Amount {
			d.Changed[id] = AmountChange{Old: prev.Amount, New: cur.Amount}
		}
	}
	for id, prev := range previous {
		if _, ok := current[id]; !ok {
			d.Removed[id] = prev
		}
	}
	return d
}
