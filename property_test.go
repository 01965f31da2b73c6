// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secretsanta

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offDiagonal lists every ordered pair of distinct participants.
func offDiagonal(ps []Participant) []ForbiddenPair {
	var pairs []ForbiddenPair
	for _, g := range ps {
		for _, r := range ps {
			if g.Key != r.Key {
				pairs = append(pairs, ForbiddenPair{Giver: g.Key, Receiver: r.Key})
			}
		}
	}
	return pairs
}

// feasible reports by exhaustive search whether some derangement of ps
// avoids every forbidden pair.
func feasible(ps []Participant, forbidden ForbiddenSet) bool {
	n := len(ps)
	used := make([]bool, n)
	var place func(u int) bool
	place = func(u int) bool {
		if u == n {
			return true
		}
		for v := 0; v < n; v++ {
			if used[v] || u == v || forbidden.Contains(ps[u].Key, ps[v].Key) {
				continue
			}
			used[v] = true
			if place(u + 1) {
				return true
			}
			used[v] = false
		}
		return false
	}
	return place(0)
}

func checkAgainstSearch(t *testing.T, ps []Participant, forbidden ForbiddenSet) {
	t.Helper()

	got, err := Match(ps, forbidden)
	if feasible(ps, forbidden) {
		require.NoError(t, err, "forbidden=%v", forbidden)
		require.NoError(t, got.Check(ps, forbidden))
		return
	}
	require.ErrorIs(t, err, ErrNoValidAssignment, "forbidden=%v", forbidden)
	assert.Nil(t, got)
}

// Every subset of forbidden pairs is tried for small groups, so a
// "no valid assignment" answer is never wrong there.
func TestMatch_ExhaustiveSmallGroups(t *testing.T) {
	for n := 2; n <= 4; n++ {
		ps := makeGroup(n)
		pairs := offDiagonal(ps)
		for mask := 0; mask < 1<<len(pairs); mask++ {
			forbidden := NewForbiddenSet()
			for i, p := range pairs {
				if mask&(1<<i) != 0 {
					forbidden.Add(p)
				}
			}
			checkAgainstSearch(t, ps, forbidden)
		}
	}
}

func TestMatch_RandomForbiddenSets(t *testing.T) {
	rnd := rand.New(rand.NewSource(20221224))

	for n := 5; n <= 7; n++ {
		ps := makeGroup(n)
		pairs := offDiagonal(ps)
		for round := 0; round < 400; round++ {
			// dense sets sit near the feasibility boundary
			density := 0.3 + 0.6*rnd.Float64()
			forbidden := NewForbiddenSet()
			for _, p := range pairs {
				if rnd.Float64() < density {
					forbidden.Add(p)
				}
			}
			checkAgainstSearch(t, ps, forbidden)
		}
	}
}

func FuzzMatch(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte{1, 0xff})
	f.Add([]byte{4, 0x0f, 0xf0, 0x55, 0xaa})
	f.Add([]byte{5, 0xff, 0xff, 0xff, 0xfe, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) == 0 {
			return
		}
		ps := makeGroup(2 + int(data[0])%6)
		bits := data[1:]

		forbidden := NewForbiddenSet()
		for i, p := range offDiagonal(ps) {
			if i/8 < len(bits) && bits[i/8]&(1<<(i%8)) != 0 {
				forbidden.Add(p)
			}
		}
		checkAgainstSearch(t, ps, forbidden)
	})
}
