package game

import (
	"encoding/binary"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// RNGState is the whole randomness of a game. Every draw is a pure function
// of (Seed, Index); drawing returns the advanced state instead of mutating.
type RNGState struct {
	Seed  string `json:"seed"`
	Index int    `json:"index"`
}

// source derives the generator for a single draw position.
func (r RNGState) source() *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(r.Seed))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(r.Index))
	h.Write(buf[:])
	return rand.New(rand.NewSource(h.Sum64()))
}

// Intn draws a value in [0, n) and returns the advanced state. It panics
// if n <= 0.
func (r RNGState) Intn(n int) (int, RNGState) {
	if n <= 0 {
		panic("rng: n must be positive")
	}
	v := r.source().Intn(n)
	r.Index++
	return v, r
}

// Roll draws one six-sided die.
func (r RNGState) Roll() (int, RNGState) {
	v, next := r.Intn(6)
	return v + 1, next
}

// RollDice draws n dice in one sequence.
func (r RNGState) RollDice(n int) ([]int, RNGState) {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i], r = r.Roll()
	}
	return rolls, r
}

// Shuffle returns a permuted copy of items (Fisher-Yates), consuming
// len(items)-1 draws.
func Shuffle[T any](r RNGState, items []T) ([]T, RNGState) {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		var j int
		j, r = r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, r
}
