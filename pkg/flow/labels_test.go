package flow

import (
	"testing"
)

func TestLabelAllocation(t *testing.T) {
	a, err := NewAllocator(DefaultLabelBase, "")
	if err != nil {
		t.Fatalf("NewAllocator failed: %v", err)
	}

	// Test label allocation with auto-incrementing counter
	id1 := a.Next()
	if id1 != 100 {
		t.Errorf("Expected first id to be 100, got %d", id1)
	}
	id2 := a.Next()
	if id2 != 101 {
		t.Errorf("Expected second id to be 101, got %d", id2)
	}
	if name := a.Render(id2); name != "_L101" {
		t.Errorf("Expected name '_L101', got %s", name)
	}
	if a.Peek() != 102 {
		t.Errorf("Expected next id to be 102, got %d", a.Peek())
	}
}

func TestLabelAllocationIndependence(t *testing.T) {
	// Test that different allocators have independent counters
	a1, _ := NewAllocator(1, "L")
	a2, _ := NewAllocator(1, "L")

	a1.Next()
	a1.Next()
	if id := a2.Next(); id != 1 {
		t.Errorf("Expected second allocator to start at 1, got %d", id)
	}
	if name := a1.Render(a1.Next()); name != "L3" {
		t.Errorf("Expected 'L3', got %s", name)
	}
}

func TestLabelReset(t *testing.T) {
	a, _ := NewAllocator(7, "_L")
	a.Next()
	a.Next()
	a.Reset()
	if id := a.Next(); id != 7 {
		t.Errorf("Expected 7 after reset, got %d", id)
	}
}

func TestLabelBaseMustBePositive(t *testing.T) {
	for _, base := range []int{0, -1} {
		if _, err := NewAllocator(base, ""); err == nil {
			t.Errorf("Expected error for base %d", base)
		}
	}
}

func TestRenderIsInjective(t *testing.T) {
	a, _ := NewAllocator(1, "_L")
	seen := make(map[string]int)
	for i := 0; i < 5000; i++ {
		id := a.Next()
		name := a.Render(id)
		if prev, ok := seen[name]; ok {
			t.Fatalf("ids %d and %d both render as %s", prev, id, name)
		}
		seen[name] = id
	}
}
