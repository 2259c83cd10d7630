// Package paramvec provides named, resizable vectors of symbolic parameters
// whose identities are derived from a single random root uuid.
package paramvec

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"weak"

	"github.com/google/uuid"
)

// Vector is an ordered collection of related parameters sharing a common name.
// For a vector called "v" with length 3 the elements are named "v[0]", "v[1]"
// and "v[2]". The element at index i always has the identity root+i, so
// shrinking a vector and growing it back reproduces the same elements.
//
// A Vector is not safe for concurrent use and must not be copied after creation.
type Vector struct {
	name   string
	root   uuid.UUID
	params []Element
	self   weak.Pointer[Vector]
}

// New creates a new Vector with the given name and length and a fresh random root uuid.
func New(name string, length int) (*Vector, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidArgument, length)
	}

	root, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate root uuid: %w", err)
	}

	v := &Vector{}
	v.init(name, root, length)
	return v, nil
}

// MustNew is like New but panics if an error occurs.
func MustNew(name string, length int) *Vector {
	v, err := New(name, length)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vector) init(name string, root uuid.UUID, length int) {
	v.name = name
	v.root = root
	v.self = weak.Make(v)
	v.params = make([]Element, 0, length)
	v.grow(length)
}

func (v *Vector) grow(length int) {
	for i := len(v.params); i < length; i++ {
		v.params = append(v.params, newElement(v.self, v.name, v.root, i))
	}
}

// Name returns the name of the vector.
func (v *Vector) Name() string {
	return v.name
}

// RootUUID returns the root uuid the element identities are derived from.
func (v *Vector) RootUUID() uuid.UUID {
	return v.root
}

// Len returns the number of elements in the vector.
func (v *Vector) Len() int {
	return len(v.params)
}

// Elements returns a copy of the elements of the vector.
func (v *Vector) Elements() []Element {
	return slices.Clone(v.params)
}

// All returns an iterator over the index-element pairs of the vector.
func (v *Vector) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range v.params {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Get returns the element at index i.
func (v *Vector) Get(i int) (Element, error) {
	if i < 0 || i >= len(v.params) {
		return Element{}, fmt.Errorf("%w: index %d with length %d", ErrIndexOutOfRange, i, len(v.params))
	}
	return v.params[i], nil
}

// At is like Get but panics if i is out of range.
func (v *Vector) At(i int) Element {
	e, err := v.Get(i)
	if err != nil {
		panic(err)
	}
	return e
}

// IndexOf returns the position of the element within the vector by a linear scan.
// It is typically much faster to use Element.Index.
func (v *Vector) IndexOf(e Element) (int, error) {
	for i, p := range v.params {
		if p.Equal(e) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s in vector %s", ErrNotFound, e.Name(), v.name)
}

// Resize resizes the vector. Elements that are added get the same identity an
// element previously held at the same index had, so parameters do not change
// across a shrink and a later grow.
func (v *Vector) Resize(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, length)
	}

	if length > len(v.params) {
		v.grow(length)
		return nil
	}

	clear(v.params[length:])
	v.params = v.params[:length]
	return nil
}

// String implements fmt.Stringer.
func (v *Vector) String() string {
	names := make([]string, len(v.params))
	for i, e := range v.params {
		names[i] = e.Name()
	}
	return fmt.Sprintf("%s, [%s]", v.name, strings.Join(names, " "))
}

// GoString implements fmt.GoStringer.
func (v *Vector) GoString() string {
	return fmt.Sprintf("Vector(name=%q, length=%d)", v.name, len(v.params))
}
