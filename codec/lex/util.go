package lex

import (
	"golang.org/x/exp/constraints"
)

// Add adds n to the big-endian unsigned integer held in b in place and returns b.
// The width of b never changes, so the result wraps around modulo 2^(8*len(b)).
func Add[N constraints.Unsigned](b []byte, n N) []byte {
	carry := uint64(n)
	for i := len(b) - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(b[i]) + carry&0xff
		b[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}
	return b
}

// Sub subtracts n from the big-endian unsigned integer held in b in place and returns b.
// The result wraps around modulo 2^(8*len(b)).
func Sub[N constraints.Unsigned](b []byte, n N) []byte {
	borrow := uint64(n)
	for i := len(b) - 1; i >= 0 && borrow > 0; i-- {
		d := borrow & 0xff
		borrow >>= 8
		if uint64(b[i]) < d {
			borrow++
		}
		b[i] -= byte(d)
	}
	return b
}

// SubBytes subtracts the big-endian unsigned integer held in b from the one held
// in a in place and returns a. Both slices must have the same length and the
// result wraps around modulo 2^(8*len(a)).
func SubBytes(a, b []byte) []byte {
	if len(a) != len(b) {
		panic("lex: SubBytes operands differ in length")
	}

	var borrow uint16
	for i := len(a) - 1; i >= 0; i-- {
		d := uint16(b[i]) + borrow
		borrow = 0
		if uint16(a[i]) < d {
			borrow = 1
		}
		a[i] = byte(uint16(a[i]) - d)
	}
	return a
}
