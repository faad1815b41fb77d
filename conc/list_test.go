package conc_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/archnae/ambient/conc"
)

func TestList_BasicOps(t *testing.T) {
	l := conc.NewList("a", "c")

	if !l.Insert(1, "b") {
		t.Fatalf("Insert(1) failed")
	}
	if l.Insert(4, "x") {
		t.Errorf("Insert past the end should report false")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, l.Snapshot()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}

	if v, ok := l.Get(1); !ok || v != "b" {
		t.Errorf("Get(1) = %q, %v; want b, true", v, ok)
	}
	if _, ok := l.Get(3); ok {
		t.Errorf("Get(3) should report false")
	}

	if !l.Set(0, "A") {
		t.Errorf("Set(0) failed")
	}
	if v, ok := l.RemoveAt(1); !ok || v != "b" {
		t.Errorf("RemoveAt(1) = %q, %v; want b, true", v, ok)
	}
	if diff := cmp.Diff([]string{"A", "c"}, l.Snapshot()); diff != "" {
		t.Errorf("after mutation (-want +got):\n%s", diff)
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", l.Len())
	}
}

func TestList_InsertAtEnds(t *testing.T) {
	l := conc.NewList[int]()
	if !l.Insert(0, 2) {
		t.Fatalf("Insert(0) into empty list failed")
	}
	if !l.Insert(0, 1) {
		t.Fatalf("Insert(0) at front failed")
	}
	if !l.Insert(2, 3) {
		t.Fatalf("Insert(len) at back failed")
	}
	if diff := cmp.Diff([]int{1, 2, 3}, l.Snapshot()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestList_Range(t *testing.T) {
	l := conc.NewList(1, 2, 3, 4)

	var seen []int
	l.Range(func(_ int, v int) bool {
		seen = append(seen, v)
		return v < 3
	})
	if diff := cmp.Diff([]int{1, 2, 3}, seen); diff != "" {
		t.Errorf("Range stopped wrong (-want +got):\n%s", diff)
	}

	// Range iterates a snapshot, so mutating inside is safe.
	l.Range(func(i int, v int) bool {
		l.Append(v * 10)
		return true
	})
	if got := l.Len(); got != 8 {
		t.Errorf("Len = %d after Range append, want 8", got)
	}
}

func TestList_ConcurrentAppend(t *testing.T) {
	l := conc.NewList[int]()

	const workers = 8
	const each = 250
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				l.Append(w*each + i)
			}
		}()
	}
	wg.Wait()

	if got := l.Len(); got != workers*each {
		t.Fatalf("Len = %d, want %d", got, workers*each)
	}

	// Every value must be present exactly once.
	seen := make(map[int]bool, workers*each)
	for _, v := range l.Snapshot() {
		if seen[v] {
			t.Fatalf("value %d appended twice", v)
		}
		seen[v] = true
	}
}
