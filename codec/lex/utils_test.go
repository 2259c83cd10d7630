package lex_test

import (
	"testing"

	"github.com/ehsanranjbar/paramvec/codec/lex"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		input    []byte
		n        uint64
		expected []byte
	}{
		{[]byte{0x00}, 0, []byte{0x00}},
		{[]byte{0x00}, 1, []byte{0x01}},
		{[]byte{0x00, 0xff}, 1, []byte{0x01, 0x00}},
		{[]byte{0x00, 0x00, 0x00}, 0x010203, []byte{0x01, 0x02, 0x03}},
		{[]byte{0x00, 0xff, 0xff}, 0x0101, []byte{0x01, 0x01, 0x00}},
		{[]byte{0xff, 0xff}, 1, []byte{0x00, 0x00}},
		{[]byte{0xff, 0xfe}, 3, []byte{0x00, 0x01}},
		{[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, ^uint64(0), []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, ^uint64(0), []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, test := range tests {
		result := lex.Add(test.input, test.n)
		require.Equal(t, test.expected, result, "Add(%v, %d)", test.input, test.n)
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		input    []byte
		n        uint64
		expected []byte
	}{
		{[]byte{0x01}, 0, []byte{0x01}},
		{[]byte{0x01}, 1, []byte{0x00}},
		{[]byte{0x01, 0x00}, 1, []byte{0x00, 0xff}},
		{[]byte{0x01, 0x02, 0x03}, 0x010203, []byte{0x00, 0x00, 0x00}},
		{[]byte{0x00, 0x00}, 1, []byte{0xff, 0xff}},
		{[]byte{0x00, 0x01}, 3, []byte{0xff, 0xfe}},
		{[]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, ^uint64(0), []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}},
	}

	for _, test := range tests {
		result := lex.Sub(test.input, test.n)
		require.Equal(t, test.expected, result, "Sub(%v, %d)", test.input, test.n)
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}
	orig := append([]byte(nil), b...)

	for _, n := range []uint{0, 1, 255, 256, 1 << 20, ^uint(0)} {
		lex.Add(b, n)
		lex.Sub(b, n)
		require.Equal(t, orig, b, "n=%d", n)
	}
}

func TestSubBytes(t *testing.T) {
	tests := []struct {
		a        []byte
		b        []byte
		expected []byte
	}{
		{[]byte{0x05}, []byte{0x03}, []byte{0x02}},
		{[]byte{0x01, 0x00}, []byte{0x00, 0x01}, []byte{0x00, 0xff}},
		{[]byte{0x00, 0x00}, []byte{0x00, 0x01}, []byte{0xff, 0xff}},
		{[]byte{0x12, 0x34}, []byte{0x12, 0x34}, []byte{0x00, 0x00}},
		{[]byte{0x00, 0x02}, []byte{0xff, 0xff}, []byte{0x00, 0x03}},
	}

	for _, test := range tests {
		result := lex.SubBytes(test.a, test.b)
		require.Equal(t, test.expected, result, "SubBytes(%v, %v)", test.a, test.b)
	}

	require.Panics(t, func() { lex.SubBytes([]byte{0x01}, []byte{0x00, 0x01}) })
}
