// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secretsanta assigns every member of a group exactly one other
// member as gift receiver, honouring pairings that must not recur.
package secretsanta

import (
	"errors"
	"fmt"
	"strings"
)

type Matcher interface {
	Match(participants []Participant, forbidden ForbiddenSet) (Assignment, error)
}

type Participant struct {
	Key  string // unique, e.g. the email address
	Name string
}

// ForbiddenPair is a giver->receiver pairing, by key, that must not be assigned.
type ForbiddenPair struct {
	Giver    string
	Receiver string
}

// ForbiddenSet is a set of forbidden pairs. The nil set is empty.
type ForbiddenSet map[ForbiddenPair]struct{}

func NewForbiddenSet(pairs ...ForbiddenPair) ForbiddenSet {
	s := make(ForbiddenSet, len(pairs))
	for _, p := range pairs {
		s.Add(p)
	}
	return s
}

func (s ForbiddenSet) Add(p ForbiddenPair) {
	s[p] = struct{}{}
}

func (s ForbiddenSet) Contains(giver, receiver string) bool {
	_, ok := s[ForbiddenPair{Giver: giver, Receiver: receiver}]
	return ok
}

func (s ForbiddenSet) Len() int {
	return len(s)
}

type Pairing struct {
	Giver    Participant
	Receiver Participant
}

// Assignment holds one pairing per participant, ordered by the receiver's
// position in the input.
type Assignment []Pairing

// ReceiverOf returns the participant the giver buys for.
func (a Assignment) ReceiverOf(giverKey string) (Participant, bool) {
	for _, p := range a {
		if p.Giver.Key == giverKey {
			return p.Receiver, true
		}
	}
	return Participant{}, false
}

// GiverOf returns the participant buying for the receiver.
func (a Assignment) GiverOf(receiverKey string) (Participant, bool) {
	for _, p := range a {
		if p.Receiver.Key == receiverKey {
			return p.Giver, true
		}
	}
	return Participant{}, false
}

// Check verifies that a is a bijection on participants with no self
// pairing and no forbidden pairing.
func (a Assignment) Check(participants []Participant, forbidden ForbiddenSet) error {
	if len(a) != len(participants) {
		return fmt.Errorf("%w: %d pairings for %d participants", ErrInvalidAssignment, len(a), len(participants))
	}

	known := make(map[string]bool, len(participants))
	for _, p := range participants {
		known[p.Key] = true
	}

	givers := make(map[string]bool, len(a))
	receivers := make(map[string]bool, len(a))
	for _, p := range a {
		g, r := p.Giver.Key, p.Receiver.Key
		switch {
		case !known[g]:
			return fmt.Errorf("%w: unknown giver %q", ErrInvalidAssignment, g)
		case !known[r]:
			return fmt.Errorf("%w: unknown receiver %q", ErrInvalidAssignment, r)
		case g == r:
			return fmt.Errorf("%w: %q gives to self", ErrInvalidAssignment, g)
		case givers[g]:
			return fmt.Errorf("%w: %q gives twice", ErrInvalidAssignment, g)
		case receivers[r]:
			return fmt.Errorf("%w: %q receives twice", ErrInvalidAssignment, r)
		case forbidden.Contains(g, r):
			return fmt.Errorf("%w: %q -> %q repeats a forbidden pairing", ErrInvalidAssignment, g, r)
		}
		givers[g] = true
		receivers[r] = true
	}

	return nil
}

var (
	ErrInsufficientParticipants = errors.New("at least 2 participants are required")
	ErrNoValidAssignment        = errors.New("no valid assignment satisfies the constraints")
	ErrInvalidAssignment        = errors.New("invalid assignment")

	// ErrInvariant marks input that upstream validation should have
	// rejected, such as a duplicated participant key.
	ErrInvariant = errors.New("matcher invariant violated")
)

// UnassignedError reports the givers left without a receiver once every
// augmenting attempt has been made.
type UnassignedError struct {
	Givers []Participant
}

func (e *UnassignedError) Error() string {
	keys := make([]string, len(e.Givers))
	for i, p := range e.Givers {
		keys[i] = p.Key
	}
	return fmt.Sprintf("%v: no receiver left for %s without a self or repeated pairing",
		ErrNoValidAssignment, strings.Join(keys, ", "))
}

func (e *UnassignedError) Unwrap() error {
	return ErrNoValidAssignment
}
