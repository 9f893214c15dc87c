package store

import "testing"

type record struct {
	name string
}

func TestStore_InsertRecyclesLowestHandle(t *testing.T) {
	s := New[record](nil)
	var handles []uint32
	for range 5 {
		handles = append(handles, s.Insert(nil))
	}
	for i, h := range handles {
		if h != uint32(i+1) {
			t.Fatalf("handle %d = %d, want %d", i, h, i+1)
		}
	}

	s.Erase(4)
	s.Erase(2)
	if got := s.Insert(nil); got != 2 {
		t.Errorf("Insert() after erase = %d, want 2", got)
	}
	if got := s.Insert(nil); got != 4 {
		t.Errorf("second Insert() = %d, want 4", got)
	}
	if got := s.Insert(nil); got != 6 {
		t.Errorf("third Insert() = %d, want 6", got)
	}
}

func TestStore_GrowsPastInitialSize(t *testing.T) {
	s := New[record](nil)
	for i := range 100 {
		if h := s.Insert(&record{}); h != uint32(i+1) {
			t.Fatalf("Insert() = %d, want %d", h, i+1)
		}
	}
	if s.Len() != 100 {
		t.Errorf("Len() = %d, want 100", s.Len())
	}
}

func TestStore_GetCreatesLazily(t *testing.T) {
	s := New[record](nil)
	if s.Find(7) != nil {
		t.Fatal("Find() on empty store returned a record")
	}
	r := s.Get(7)
	if r == nil {
		t.Fatal("Get() returned nil")
	}
	r.name = "seven"
	if got := s.Find(7); got == nil || got.name != "seven" {
		t.Errorf("Find() = %+v, want the created record", got)
	}
	if def := s.Get(0); def == nil {
		t.Error("Get(0) should create the default record")
	}
	if s.Get(MaxHandles) != nil {
		t.Error("Get() beyond MaxHandles should fail")
	}
}

func TestStore_EraseRunsFinalizer(t *testing.T) {
	var erased []string
	s := New(func(handle uint32, r *record) {
		erased = append(erased, r.name)
	})
	h := s.Insert(&record{name: "a"})
	s.Insert(&record{name: "b"})

	if s.Erase(0) {
		t.Error("Erase(0) should report false")
	}
	if !s.Erase(h) {
		t.Fatal("Erase() = false")
	}
	if s.Erase(h) {
		t.Error("double Erase() should report false")
	}
	s.Clear()
	if len(erased) != 2 || erased[0] != "a" || erased[1] != "b" {
		t.Errorf("finalizer order = %v", erased)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d", s.Len())
	}
}

func TestStore_RefDetectsRecycling(t *testing.T) {
	s := New[record](nil)
	h := s.Insert(&record{name: "old"})
	ref := s.Ref(h)
	if !s.Valid(ref) {
		t.Fatal("fresh ref is not valid")
	}

	s.Erase(h)
	if h2 := s.Insert(&record{name: "new"}); h2 != h {
		t.Fatalf("handle not recycled: %d != %d", h2, h)
	}
	if s.Valid(ref) || s.Resolve(ref) != nil {
		t.Error("stale ref resolved after recycling")
	}
	if got := s.Resolve(s.Ref(h)); got == nil || got.name != "new" {
		t.Errorf("Resolve(new ref) = %+v", got)
	}
	if s.Valid(Ref{}) {
		t.Error("zero ref should never be valid")
	}
}

func TestStore_AllSkipsHoles(t *testing.T) {
	s := New[record](nil)
	for range 4 {
		s.Insert(nil)
	}
	s.Erase(2)
	var seen []uint32
	for h := range s.All() {
		seen = append(seen, h)
	}
	want := []uint32{1, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("All() = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("All()[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}
