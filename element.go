package paramvec

import (
	"bytes"
	"cmp"
	"fmt"
	"weak"

	"github.com/ehsanranjbar/paramvec/codec/lex"
	"github.com/google/uuid"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Element is a single member of a Vector. It is an immutable value and can be
// shared freely; it keeps only a weak reference to the vector that created it.
type Element struct {
	owner  weak.Pointer[Vector]
	vector string
	index  int
	uuid   uuid.UUID
}

func newElement(owner weak.Pointer[Vector], name string, root uuid.UUID, index int) Element {
	return Element{
		owner:  owner,
		vector: name,
		index:  index,
		uuid:   offset(root, index),
	}
}

// offset returns root + i, wrapping around the 128-bit space.
func offset(root uuid.UUID, i int) uuid.UUID {
	lex.Add(root[:], uint(i))
	return root
}

// Name returns the display name of the element, e.g. "theta[3]".
func (e Element) Name() string {
	return fmt.Sprintf("%s[%d]", e.vector, e.index)
}

// VectorName returns the name of the vector the element was created by.
func (e Element) VectorName() string {
	return e.vector
}

// Index returns the position of the element within its vector.
func (e Element) Index() int {
	return e.index
}

// UUID returns the identity of the element.
func (e Element) UUID() uuid.UUID {
	return e.uuid
}

// Root returns the root uuid of the vector the element belongs to.
func (e Element) Root() uuid.UUID {
	root := e.uuid
	lex.Sub(root[:], uint(e.index))
	return root
}

// Vector returns the vector that created the element or nil if it is no longer
// reachable. Elements restored with UnmarshalBinary have no vector.
func (e Element) Vector() *Vector {
	return e.owner.Value()
}

// Equal reports whether e and other have the same identity.
func (e Element) Equal(other Element) bool {
	return e.uuid == other.uuid
}

// Compare orders elements by vector name, then by index. Elements of distinct
// vectors that share a name are ordered by uuid. Equal elements compare as 0.
func (e Element) Compare(other Element) int {
	if e.uuid == other.uuid {
		return 0
	}
	if c := cmp.Compare(e.vector, other.vector); c != 0 {
		return c
	}
	if c := cmp.Compare(e.index, other.index); c != 0 {
		return c
	}
	return bytes.Compare(e.uuid[:], other.uuid[:])
}

// String implements fmt.Stringer.
func (e Element) String() string {
	return e.Name()
}

// ElementState is the transferable payload of an Element.
type ElementState struct {
	Vector string    `msgpack:"vector"`
	Index  int       `msgpack:"index"`
	UUID   uuid.UUID `msgpack:"uuid"`
}

// State returns the transferable payload of the element.
func (e Element) State() ElementState {
	return ElementState{
		Vector: e.vector,
		Index:  e.index,
		UUID:   e.uuid,
	}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (e Element) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(e.State())
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (e *Element) UnmarshalBinary(bz []byte) error {
	var st ElementState
	err := msgpack.Unmarshal(bz, &st)
	if err != nil {
		return fmt.Errorf("failed to decode element: %w", err)
	}
	if st.Index < 0 {
		return fmt.Errorf("%w: negative element index %d", ErrInvalidArgument, st.Index)
	}

	*e = Element{
		vector: st.Vector,
		index:  st.Index,
		uuid:   st.UUID,
	}
	return nil
}
