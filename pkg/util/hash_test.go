package util

import (
	"fmt"
	"sort"
	"testing"
)

func Test_HashSet_01(t *testing.T) {
	items := []uint{1, 2, 3, 4, 3, 2, 1}
	check_HashSet(t, items)
}

func Test_HashSet_02(t *testing.T) {
	// Spread over every bucket, forcing collisions.
	items := make([]uint, 100)
	for i := range items {
		items[i] = uint(i)
	}
	//
	check_HashSet(t, items)
}

func Test_HashSet_03(t *testing.T) {
	set := NewHashSet[testKey](0)
	// 16 and 32 collide under the test hash
	set.Insert(testKey{16})
	//
	if set.Contains(testKey{32}) {
		t.Errorf("colliding keys conflated: %s", set.String())
	}
}

func Test_HashMap_01(t *testing.T) {
	m := NewHashMap[testKey, string](0)
	//
	if m.Insert(testKey{1}, "one") {
		t.Errorf("unexpected duplicate key")
	}
	// Overwrite existing key
	if !m.Insert(testKey{1}, "uno") {
		t.Errorf("expected duplicate key")
	}
	//
	if v, ok := m.Get(testKey{1}); !ok || v != "uno" {
		t.Errorf("expected \"uno\", got %s", v)
	}
	//
	if m.Size() != 1 {
		t.Errorf("expected 1 item, got %d: %s", m.Size(), m.String())
	}
}

func Test_HashMap_02(t *testing.T) {
	m := NewHashMap[testKey, uint](0)
	// 3 and 19 collide under the test hash
	m.Insert(testKey{3}, 30)
	m.Insert(testKey{19}, 190)
	//
	if v, _ := m.Get(testKey{3}); v != 30 {
		t.Errorf("expected 30, got %d: %s", v, m.String())
	}
	//
	if v, _ := m.Get(testKey{19}); v != 190 {
		t.Errorf("expected 190, got %d: %s", v, m.String())
	}
	//
	if _, ok := m.Get(testKey{35}); ok {
		t.Errorf("unexpected item for colliding key: %s", m.String())
	}
}

func Test_Option_01(t *testing.T) {
	opt := Some(uint(7))
	//
	if !opt.HasValue() || opt.IsEmpty() {
		t.Errorf("expected value to be present")
	}
	//
	if opt.Unwrap() != 7 {
		t.Errorf("expected 7, got %d", opt.Unwrap())
	}
}

func Test_Option_02(t *testing.T) {
	opt := None[uint]()
	//
	if opt.HasValue() || !opt.IsEmpty() {
		t.Errorf("expected value to be absent")
	}
}

func Test_Prepend_01(t *testing.T) {
	original := []uint{2, 3}
	extended := Prepend(uint(1), original)
	//
	if len(extended) != 3 || extended[0] != 1 || extended[1] != 2 || extended[2] != 3 {
		t.Errorf("unexpected slice %v", extended)
	}
	// Original must be untouched
	if len(original) != 2 || original[0] != 2 {
		t.Errorf("original slice modified: %v", original)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_HashSet(t *testing.T, items []uint) {
	set := NewHashSet[testKey](0)
	dups := uint(0)
	// Insert items
	for _, item := range items {
		if set.Insert(testKey{item}) {
			// Duplicate item inserted
			dups++
		}
	}
	// Sort items
	sort.Slice(items, func(i, j int) bool {
		return items[i] < items[j]
	})
	//
	count := uint(0)
	// Count unique items
	for i := 0; i < len(items); i++ {
		if i == 0 || items[i-1] != items[i] {
			count++
		}
	}
	// Sanity check number of unique items
	if set.Size() != count {
		t.Errorf("expected %d unique items, got %d: %s", count, set.Size(), set.String())
	}
	// Sanity check duplicates calculation
	if count+dups != uint(len(items)) {
		t.Errorf("incorrect number of duplicates %d: %s", dups, set.String())
	}
	// Sanity check containership
	for _, ith := range items {
		if !set.Contains(testKey{ith}) {
			t.Errorf("missing item %d: %s", ith, set.String())
		}
	}
}

// A simple wrapper around a uint.  The hash is deliberately weak to ensure a
// relatively limited spread of hash values.  This helps to ensure that we get
// some collisions.
type testKey struct {
	value uint
}

// Equals compares two test keys for equality of their underlying values.
func (p testKey) Equals(other testKey) bool {
	return p.value == other.value
}

// Hash generates a 64-bit hashcode from the underlying value.
func (p testKey) Hash() uint64 {
	// This is a deliberate act to limit the quality of this hash function.
	return uint64(p.value % 16)
}

func (p testKey) String() string {
	return fmt.Sprintf("%d", p.value)
}
