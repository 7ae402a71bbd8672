package nif

import (
	"fmt"
	"reflect"
)

type refState uint8

const (
	refEmpty refState = iota
	refUnresolved
	refResolved
)

// Ref is a reference to another record of the graph.
//
// On disk it is a signed index where -1 means "no reference". After reading it
// holds the raw index; the resolve pass turns it into a handle to the record,
// checked against T. The zero value is an empty reference, which is also what
// a field gated out by the file version holds.
type Ref[T any] struct {
	index  int32
	state  refState
	target T
}

// Index returns the on-disk index, -1 for an empty reference.
func (r Ref[T]) Index() int32 {
	if r.state == refEmpty {
		return -1
	}
	return r.index
}

// Empty reports whether the reference points nowhere.
func (r Ref[T]) Empty() bool {
	return r.state == refEmpty
}

// Resolved reports whether the reference holds a record handle.
func (r Ref[T]) Resolved() bool {
	return r.state == refResolved
}

// Get returns the referenced record, or the zero T when empty or unresolved.
func (r Ref[T]) Get() T {
	return r.target
}

func (r Ref[T]) String() string {
	switch r.state {
	case refEmpty:
		return "empty"
	case refUnresolved:
		return fmt.Sprintf("unresolved(%d)", r.index)
	default:
		return fmt.Sprintf("resolved(%d)", r.index)
	}
}

func (r *Ref[T]) setIndex(idx int32) {
	var zero T
	r.target = zero
	if idx == -1 {
		r.index = -1
		r.state = refEmpty
		return
	}
	r.index = idx
	r.state = refUnresolved
}

func (r *Ref[T]) read(rd *Reader) {
	r.setIndex(rd.Int32())
}

func (r *Ref[T]) resolve(rs *resolver) {
	if r.state != refUnresolved || rs.err != nil {
		return
	}
	rec := rs.lookup(r.index)
	if rec == nil {
		return
	}
	t, ok := rec.(T)
	if !ok {
		rs.fail(fmt.Errorf("%w: index %d is %s, want %s", ErrTypeMismatch, r.index, rec.TypeName(), typeLabel[T]()))
		return
	}
	r.target = t
	r.state = refResolved
}

func typeLabel[T any]() string {
	t := reflect.TypeFor[T]()
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// RefList is a length-prefixed sequence of references.
type RefList[T any] []Ref[T]

// Len returns the number of references, empty ones included.
func (l RefList[T]) Len() int {
	return len(l)
}

// Records returns the non-empty resolved targets in order.
func (l RefList[T]) Records() []T {
	out := make([]T, 0, len(l))
	for _, ref := range l {
		if ref.Resolved() {
			out = append(out, ref.Get())
		}
	}
	return out
}

func (l *RefList[T]) read(rd *Reader) {
	n := rd.Int32()
	if rd.Err() != nil {
		return
	}
	if n < 0 {
		rd.Fail(fmt.Errorf("%w: %d", ErrBadLength, n))
		return
	}
	idx := rd.Int32s(int(n))
	if rd.Err() != nil {
		return
	}
	list := make(RefList[T], len(idx))
	for i, v := range idx {
		list[i].setIndex(v)
	}
	*l = list
}

func (l RefList[T]) resolve(rs *resolver) {
	for i := range l {
		l[i].resolve(rs)
	}
}
