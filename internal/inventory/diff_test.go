package inventory

import (
	"reflect"
	"testing"
)

func snap(pairs ...[2]string) Snapshot {
	s := Snapshot{}
	for _, p := range pairs {
		s[p[0]] = Item{ClassID: "c" + p[0], Amount: p[1], InstanceID: "0"}
	}
	return s
}

func TestDiffIdentical(t *testing.T) {
	t.Parallel()
	a := snap([2]string{"a1", "2"}, [2]string{"a2", "5"})
	d := Diff(a, a)
	if !d.Empty() {
		t.Fatalf("diff(A,A) not empty: %+v", d)
	}
}

func TestDiffPartitionsKeys(t *testing.T) {
	t.Parallel()
	prev := snap([2]string{"a1", "2"}, [2]string{"a2", "1"}, [2]string{"a3", "7"})
	cur := snap([2]string{"a2", "1"}, [2]string{"a3", "9"}, [2]string{"a4", "1"})

	d := Diff(cur, prev)

	if _, ok := d.Added["a4"]; !ok || len(d.Added) != 1 {
		t.Fatalf("added = %+v, want only a4", d.Added)
	}
	if _, ok := d.Removed["a1"]; !ok || len(d.Removed) != 1 {
		t.Fatalf("removed = %+v, want only a1", d.Removed)
	}
	if len(d.Changed) != 1 {
		t.Fatalf("changed = %+v, want only a3", d.Changed)
	}
	if got := d.Changed["a3"]; got != (AmountChange{Old: "7", New: "9"}) {
		t.Fatalf("changed[a3] = %+v, want old=7 new=9", got)
	}

	// Added/removed never overlap, and changed keys exist in both snapshots.
	for id := range d.Added {
		if _, ok := d.Removed[id]; ok {
			t.Fatalf("key %q in both added and removed", id)
		}
		if _, ok := prev[id]; ok {
			t.Fatalf("added key %q present in previous", id)
		}
	}
	for id := range d.Changed {
		if _, ok := cur[id]; !ok {
			t.Fatalf("changed key %q missing from current", id)
		}
		if _, ok := prev[id]; !ok {
			t.Fatalf("changed key %q missing from previous", id)
		}
	}
}

func TestDiffOrderIndependent(t *testing.T) {
	t.Parallel()
	// Build the same snapshots with different insertion orders.
	a1 := Snapshot{}
	a2 := Snapshot{}
	keys := []string{"k1", "k2", "k3", "k4", "k5"}
	for i, k := range keys {
		a1[k] = Item{ClassID: k, Amount: "1", InstanceID: "0"}
		a2[keys[len(keys)-1-i]] = Item{ClassID: keys[len(keys)-1-i], Amount: "1", InstanceID: "0"}
	}
	prev := snap([2]string{"k1", "1"}, [2]string{"k9", "3"})

	d1 := Diff(a1, prev)
	d2 := Diff(a2, prev)
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("diff depends on insertion order: %+v vs %+v", d1, d2)
	}
}

func TestDiffAmountChangeScenario(t *testing.T) {
	t.Parallel()
	prev := Snapshot{"a1": {ClassID: "1", Amount: "2", InstanceID: "0"}}
	cur := Snapshot{"a1": {ClassID: "1", Amount: "3", InstanceID: "0"}}

	d := Diff(cur, prev)
	if len(d.Added) != 0 || len(d.Removed) != 0 {
		t.Fatalf("unexpected added/removed: %+v", d)
	}
	want := AmountChange{Old: "2", New: "3"}
	if got, ok := d.Changed["a1"]; !ok || got != want {
		t.Fatalf("changed[a1] = %+v (ok=%v), want %+v", got, ok, want)
	}
}

func TestDiffAgainstEmpty(t *testing.T) {
	t.Parallel()
	cur := snap([2]string{"a1", "2"})

	d := Diff(cur, Snapshot{})
	if len(d.Added) != 1 || len(d.Removed) != 0 || len(d.Changed) != 0 {
		t.Fatalf("diff against empty previous: %+v", d)
	}

	d = Diff(Snapshot{}, cur)
	if len(d.Added) != 0 || len(d.Removed) != 1 || len(d.Changed) != 0 {
		t.Fatalf("diff against empty current: %+v", d)
	}
}
