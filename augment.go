// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secretsanta

import "fmt"

type augmentingMatcher struct{}

// AugmentingMatcher returns a Matcher that finds a perfect giver/receiver
// matching with augmenting path search (Kuhn's algorithm). Givers are
// placed in input order and receivers are tried in input order, so equal
// inputs always produce equal assignments.
func AugmentingMatcher() Matcher {
	return augmentingMatcher{}
}

// Match uses the augmenting matcher.
func Match(participants []Participant, forbidden ForbiddenSet) (Assignment, error) {
	return augmentingMatcher{}.Match(participants, forbidden)
}

func (m augmentingMatcher) Match(participants []Participant, forbidden ForbiddenSet) (Assignment, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrInsufficientParticipants
	}

	index := make(map[string]int, n)
	for i, p := range participants {
		if j, ok := index[p.Key]; ok {
			return nil, fmt.Errorf("%w: key %q at positions %d and %d", ErrInvariant, p.Key, j, i)
		}
		index[p.Key] = i
	}

	g := buildGraph(participants, forbidden)

	// match[v] is the giver assigned to receiver v, -1 when free.
	match := make([]int, n)
	for v := range match {
		match[v] = -1
	}

	var unassigned []Participant
	visited := make([]bool, n)
	for u := 0; u < n; u++ {
		for v := range visited {
			visited[v] = false
		}
		if !g.augment(u, visited, match) {
			unassigned = append(unassigned, participants[u])
		}
	}
	if len(unassigned) > 0 {
		return nil, &UnassignedError{Givers: unassigned}
	}

	assignment := make(Assignment, n)
	for v, u := range match {
		assignment[v] = Pairing{Giver: participants[u], Receiver: participants[v]}
	}
	return assignment, nil
}

// graph holds, for every giver index, the receiver indexes it may be
// paired with in ascending order.
type graph struct {
	adj [][]int
}

func buildGraph(participants []Participant, forbidden ForbiddenSet) graph {
	n := len(participants)
	adj := make([][]int, n)
	for u := 0; u < n; u++ {
		adj[u] = make([]int, 0, n-1)
		for v := 0; v < n; v++ {
			if u == v || forbidden.Contains(participants[u].Key, participants[v].Key) {
				continue
			}
			adj[u] = append(adj[u], v)
		}
	}
	return graph{adj: adj}
}

// Candidates returns how many giver->receiver pairings remain once self
// and forbidden pairings are removed.
func Candidates(participants []Participant, forbidden ForbiddenSet) int {
	return buildGraph(participants, forbidden).edges()
}

func (g graph) edges() int {
	e := 0
	for _, vs := range g.adj {
		e += len(vs)
	}
	return e
}

type frame struct {
	giver int
	next  int // position in adj[giver] to try next
}

// augment looks for an augmenting path starting at giver root and applies
// it to match. The search is depth-first with an explicit stack; a frame is
// only pushed for a receiver visited for the first time, so the stack never
// holds more than n+1 frames.
func (g graph) augment(root int, visited []bool, match []int) bool {
	stack := []frame{{giver: root}}
	// via[i] is the receiver that stack[i] is trying to take over.
	via := make([]int, 0, len(match))

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		adj := g.adj[top.giver]
		if top.next == len(adj) {
			stack = stack[:len(stack)-1]
			if len(via) > 0 {
				via = via[:len(via)-1]
			}
			continue
		}

		v := adj[top.next]
		top.next++
		if visited[v] {
			continue
		}
		visited[v] = true
		via = append(via, v)

		if match[v] < 0 {
			for i := range stack {
				match[via[i]] = stack[i].giver
			}
			return true
		}
		stack = append(stack, frame{giver: match[v]})
	}

	return false
}
