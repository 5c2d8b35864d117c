// Package code generates the short public reference codes individuals use
// to reach their own record without authentication.
package code

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet excludes 0, O, 1 and I so codes survive being read over the
// phone or typed from paper.
const (
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	Length   = 8
)

// Generate returns a fresh reference code. Uniqueness is enforced by the
// person store, not here.
func Generate() (string, error) {
	return gonanoid.Generate(Alphabet, Length)
}
