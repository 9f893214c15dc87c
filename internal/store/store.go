// Package store provides the handle tables backing GL object names.
//
// A Store maps small integer handles to heap-owned records. Handle 0 is
// reserved: Insert never returns it, although Get(0) may still populate it
// so that "default" objects (the default framebuffer, texture 0) exist.
// Every slot carries a generation counter that is bumped when the slot is
// erased; a Ref pairs a handle with the generation it was taken at, so a
// holder can detect that the object it referred to has been deleted and the
// handle recycled.
package store

import "iter"

// MaxHandles bounds how far a store may grow. Requests beyond it behave
// like allocation failure: nothing is created and nil is returned.
const MaxHandles = 1 << 24

const initialSize = 8

// Ref is a generation-checked reference to a store slot.
type Ref struct {
	Handle uint32
	Gen    uint32
}

// IsZero reports whether r refers to no object.
func (r Ref) IsZero() bool { return r.Handle == 0 && r.Gen == 0 }

type slot[T any] struct {
	obj *T
	gen uint32
}

// Store is a growable arena of T indexed by handle.
//
// Store is not safe for concurrent use.
type Store[T any] struct {
	slots     []slot[T]
	firstFree int
	onErase   func(handle uint32, obj *T)
}

// New creates an empty store. onErase, if non-nil, runs before a record
// is dropped by Erase or Clear.
func New[T any](onErase func(handle uint32, obj *T)) *Store[T] {
	return &Store[T]{firstFree: 1, onErase: onErase}
}

// grow ensures slot i exists, growing geometrically from initialSize.
func (s *Store[T]) grow(i int) bool {
	if i < len(s.slots) {
		return true
	}
	if i >= MaxHandles {
		return false
	}
	size := max(len(s.slots), initialSize)
	for size <= i {
		size += size / 2
	}
	size = min(size, MaxHandles)
	slots := make([]slot[T], size)
	copy(slots, s.slots)
	s.slots = slots
	return true
}

// Insert stores obj under the lowest free handle >= 1 and returns it.
// A nil obj inserts a zero-valued record. Insert returns 0 if the store
// cannot grow.
func (s *Store[T]) Insert(obj *T) uint32 {
	i := max(s.firstFree, 1)
	for i < len(s.slots) && s.slots[i].obj != nil {
		i++
	}
	if !s.grow(i) {
		return 0
	}
	if obj == nil {
		obj = new(T)
	}
	s.slots[i].obj = obj
	s.firstFree = i + 1
	return uint32(i)
}

// Get returns the record for handle, default-constructing it if the slot
// is empty. It returns nil only if the store cannot grow to the handle.
func (s *Store[T]) Get(handle uint32) *T {
	i := int(handle)
	if !s.grow(i) {
		return nil
	}
	if s.slots[i].obj == nil {
		s.slots[i].obj = new(T)
	}
	return s.slots[i].obj
}

// Find returns the record for handle or nil if none exists.
func (s *Store[T]) Find(handle uint32) *T {
	if int(handle) >= len(s.slots) {
		return nil
	}
	return s.slots[handle].obj
}

// Ref returns a generation-checked reference to handle.
func (s *Store[T]) Ref(handle uint32) Ref {
	if handle == 0 || int(handle) >= len(s.slots) {
		return Ref{Handle: handle}
	}
	return Ref{Handle: handle, Gen: s.slots[handle].gen}
}

// Resolve returns the record r refers to, or nil if it has been erased
// since r was taken.
func (s *Store[T]) Resolve(r Ref) *T {
	if int(r.Handle) >= len(s.slots) {
		return nil
	}
	sl := s.slots[r.Handle]
	if sl.gen != r.Gen {
		return nil
	}
	return sl.obj
}

// Valid reports whether r still refers to a live record.
func (s *Store[T]) Valid(r Ref) bool {
	return r.Handle != 0 && s.Resolve(r) != nil
}

// Erase runs the finalizer for handle and frees its slot. Erasing handle 0
// or an empty slot reports false.
func (s *Store[T]) Erase(handle uint32) bool {
	i := int(handle)
	if i == 0 || i >= len(s.slots) || s.slots[i].obj == nil {
		return false
	}
	if s.onErase != nil {
		s.onErase(handle, s.slots[i].obj)
	}
	s.slots[i].obj = nil
	s.slots[i].gen++
	if i < s.firstFree {
		s.firstFree = i
	}
	return true
}

// All iterates over every live record in handle order, including handle 0.
func (s *Store[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range s.slots {
			if obj := s.slots[i].obj; obj != nil {
				if !yield(uint32(i), obj) {
					return
				}
			}
		}
	}
}

// Len returns the number of live records.
func (s *Store[T]) Len() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].obj != nil {
			n++
		}
	}
	return n
}

// Clear erases every record, including handle 0.
func (s *Store[T]) Clear() {
	for i := range s.slots {
		if obj := s.slots[i].obj; obj != nil {
			if s.onErase != nil {
				s.onErase(uint32(i), obj)
			}
			s.slots[i].obj = nil
			s.slots[i].gen++
		}
	}
	s.firstFree = 1
}
