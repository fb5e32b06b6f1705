// Package password suggests throwaway credentials for the user to paste into
// a real credential manager.
package password

import (
	"errors"
	"math/rand/v2"
)

// Character classes exclude glyphs that are easy to misread when the user
// retypes a password from the screen: l, I, O, 0 and 1.
const (
	lowerChars = "abcdefghijkmnopqrstuvwxyz"
	upperChars = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars = "23456789"
)

const (
	// DefaultLength is the length used when the caller does not ask for one.
	DefaultLength = 16

	// MinLength is the shortest password that can still contain one
	// character from each class.
	MinLength = 3
)

var ErrLengthTooShort = errors.New("password: length must be at least 3")

// Generate returns a random password of exactly length characters containing
// at least one lowercase letter, one uppercase letter and one digit, and no
// visually ambiguous glyphs.
//
// The output is drawn from math/rand, not crypto/rand. That is a deliberate
// trade-off: the app hands real secret storage to the platform credential
// manager and only offers this value as a convenience suggestion that is
// displayed once and never persisted.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", ErrLengthTooShort
	}

	all := lowerChars + upperChars + digitChars

	// One character per class up front so coverage holds at any length,
	// then fill from the union.
	out := make([]byte, 0, length)
	out = append(out, pick(lowerChars), pick(upperChars), pick(digitChars))
	for len(out) < length {
		out = append(out, pick(all))
	}

	// Fisher-Yates so the class-guaranteed characters are not anchored at
	// the first three positions.
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return string(out), nil
}

func pick(chars string) byte {
	return chars[rand.IntN(len(chars))]
}
