package paramvec

import (
	"encoding/binary"
	"math"
	"slices"
	"weak"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/ehsanranjbar/paramvec/codec/lex"
	"github.com/google/uuid"
)

// ElementSet is a set of elements drawn from any number of vectors. Elements are
// grouped by the root uuid of their vector and each group keeps a bitmap of indices.
//
// Membership is decided by identity alone. An element is a member if any group
// holds an element with the same uuid, even when that group belongs to another
// vector whose range of identities overlaps.
type ElementSet struct {
	groups map[uuid.UUID]*elementGroup
}

type elementGroup struct {
	owner   weak.Pointer[Vector]
	name    string
	indices *roaring64.Bitmap
}

// NewElementSet creates a new ElementSet holding the given elements.
func NewElementSet(elems ...Element) *ElementSet {
	s := &ElementSet{groups: make(map[uuid.UUID]*elementGroup)}
	s.Add(elems...)
	return s
}

// find returns the root of the group and the index that hold an element with the identity of e.
func (s *ElementSet) find(e Element) (uuid.UUID, uint64, bool) {
	root := e.Root()
	if g, ok := s.groups[root]; ok && g.indices.Contains(uint64(e.index)) {
		return root, uint64(e.index), true
	}

	for root, g := range s.groups {
		d := e.uuid
		lex.SubBytes(d[:], root[:])
		if binary.BigEndian.Uint64(d[:8]) != 0 {
			continue
		}
		i := binary.BigEndian.Uint64(d[8:])
		if i <= math.MaxInt && g.indices.Contains(i) {
			return root, i, true
		}
	}
	return uuid.Nil, 0, false
}

// Add adds the given elements to the set. Elements whose identity is already
// present are ignored.
func (s *ElementSet) Add(elems ...Element) {
	if s.groups == nil {
		s.groups = make(map[uuid.UUID]*elementGroup)
	}

	for _, e := range elems {
		if _, _, ok := s.find(e); ok {
			continue
		}

		root := e.Root()
		g, ok := s.groups[root]
		if !ok {
			g = &elementGroup{
				owner:   e.owner,
				name:    e.vector,
				indices: roaring64.New(),
			}
			s.groups[root] = g
		}
		if g.owner.Value() == nil {
			g.owner = e.owner
		}
		g.indices.Add(uint64(e.index))
	}
}

// Remove removes the element with the identity of e from the set and reports
// whether it was present.
func (s *ElementSet) Remove(e Element) bool {
	root, i, ok := s.find(e)
	if !ok {
		return false
	}

	g := s.groups[root]
	g.indices.Remove(i)
	if g.indices.IsEmpty() {
		delete(s.groups, root)
	}
	return true
}

// Contains reports whether an element with the same identity is in the set.
func (s *ElementSet) Contains(e Element) bool {
	_, _, ok := s.find(e)
	return ok
}

// Len returns the number of elements in the set.
func (s *ElementSet) Len() int {
	var n uint64
	for _, g := range s.groups {
		n += g.indices.GetCardinality()
	}
	return int(n)
}

// Union adds all elements of other to the set.
func (s *ElementSet) Union(other *ElementSet) {
	if other == nil {
		return
	}
	s.Add(other.Elements()...)
}

// Elements returns the elements of the set ordered by Element.Compare.
func (s *ElementSet) Elements() []Element {
	elems := make([]Element, 0, s.Len())
	for root, g := range s.groups {
		it := g.indices.Iterator()
		for it.HasNext() {
			elems = append(elems, newElement(g.owner, g.name, root, int(it.Next())))
		}
	}

	slices.SortFunc(elems, Element.Compare)
	return elems
}
