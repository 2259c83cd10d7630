package paramvec

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// State is the transferable form of a Vector.
type State struct {
	Name     string
	Elements []ElementState
	Root     uuid.UUID
}

// State returns the transferable form of the vector.
func (v *Vector) State() State {
	elems := make([]ElementState, len(v.params))
	for i, e := range v.params {
		elems[i] = e.State()
	}
	return State{
		Name:     v.name,
		Elements: elems,
		Root:     v.root,
	}
}

// Verify checks that every element payload matches the identity, index and
// name derived from the root uuid.
func (st State) Verify() error {
	for i, es := range st.Elements {
		switch {
		case es.Index != i:
			return fmt.Errorf("%w: element %d has index %d", ErrInconsistentState, i, es.Index)
		case es.Vector != st.Name:
			return fmt.Errorf("%w: element %d belongs to %q instead of %q", ErrInconsistentState, i, es.Vector, st.Name)
		case es.UUID != offset(st.Root, i):
			return fmt.Errorf("%w: element %d has uuid %s instead of %s", ErrInconsistentState, i, es.UUID, offset(st.Root, i))
		}
	}
	return nil
}

// FromState reconstructs a vector from its transferable form. Element identities
// are derived from the root uuid and the number of elements, the stored element
// payloads are not trusted.
func FromState(st State) *Vector {
	v := &Vector{}
	v.init(st.Name, st.Root, len(st.Elements))
	return v
}

// DecodeState decodes the transferable form of a vector produced by Vector.MarshalBinary.
func DecodeState(bz []byte) (State, error) {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(bytes.NewReader(bz))

	var st State
	err := dec.DecodeMulti(&st.Name, &st.Elements, &st.Root)
	if err != nil {
		return State{}, fmt.Errorf("failed to decode vector: %w", err)
	}
	return st, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (v *Vector) MarshalBinary() ([]byte, error) {
	st := v.State()

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	var buf bytes.Buffer
	enc.Reset(&buf)

	err := enc.EncodeMulti(st.Name, st.Elements, st.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (v *Vector) UnmarshalBinary(bz []byte) error {
	st, err := DecodeState(bz)
	if err != nil {
		return err
	}

	v.init(st.Name, st.Root, len(st.Elements))
	return nil
}
