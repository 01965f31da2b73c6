// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/someonegg/secretsanta"
	"github.com/someonegg/secretsanta/identity"
	"github.com/someonegg/secretsanta/internal/logger"
	"github.com/someonegg/secretsanta/internal/metrics"
	"github.com/someonegg/secretsanta/roster"
)

func (x *Exchange) init() {
	if x.Unifier == nil {
		x.unifier = identity.NewUnifier(true)
	} else {
		x.unifier = x.Unifier
	}

	if x.Matcher == nil {
		x.matcher = secretsanta.AugmentingMatcher()
	} else {
		x.matcher = x.Matcher
	}

	if x.Logger == nil {
		x.log = logger.Nop()
	} else {
		x.log = x.Logger
	}
}

// Run assigns every employee a secret child, never repeating a prior
// pairing. Results are in employee order, by child. On failure no results
// are returned; the summary is filled in as far as the run got.
func (x *Exchange) Run(ctx context.Context, employees []roster.Employee, prior []roster.Pairing) ([]roster.Pairing, Summary, error) {
	x.init()

	var summ Summary

	participants := genParticipants(x.unifier, employees)
	forbidden := genForbidden(x.unifier, prior)

	summ.Participants = len(participants)
	summ.PriorPairs = len(prior)
	summ.ForbiddenPairs = forbidden.Len()
	summ.ApplicableForbidden = countApplicable(participants, forbidden)
	summ.Candidates = secretsanta.Candidates(participants, forbidden)

	x.log.Debug(ctx, "matching",
		logger.Int("participants", summ.Participants),
		logger.Int("forbidden", summ.ApplicableForbidden),
		logger.Int("candidates", summ.Candidates))

	start := time.Now()
	assignment, err := x.matcher.Match(participants, forbidden)
	summ.Duration = time.Since(start)
	if err == nil {
		if cerr := assignment.Check(participants, forbidden); cerr != nil {
			err = fmt.Errorf("%w: %v", secretsanta.ErrInvariant, cerr)
		}
	}

	x.Metrics.ObserveRun(metrics.Run{
		Outcome:      outcomeOf(err),
		Participants: summ.Participants,
		Forbidden:    summ.ApplicableForbidden,
		Candidates:   summ.Candidates,
		Duration:     summ.Duration,
	})
	if err != nil {
		return nil, summ, err
	}

	x.log.Debug(ctx, "matched", logger.Any("duration", summ.Duration))
	return genResults(x.unifier, employees, assignment), summ, nil
}

// Verify checks that results is a complete assignment for employees that
// repeats no prior pairing.
func (x *Exchange) Verify(employees []roster.Employee, prior []roster.Pairing, results []roster.Pairing) error {
	x.init()

	participants := genParticipants(x.unifier, employees)
	forbidden := genForbidden(x.unifier, prior)

	byKey := make(map[string]secretsanta.Participant, len(participants))
	for _, p := range participants {
		byKey[p.Key] = p
	}
	lookup := func(id, name string) secretsanta.Participant {
		key := x.unifier.Unify(id)
		if p, ok := byKey[key]; ok {
			return p
		}
		return secretsanta.Participant{Key: key, Name: name}
	}

	assignment := make(secretsanta.Assignment, len(results))
	for i, r := range results {
		assignment[i] = secretsanta.Pairing{
			Giver:    lookup(r.EmployeeEmail, r.EmployeeName),
			Receiver: lookup(r.ChildEmail, r.ChildName),
		}
	}
	return assignment.Check(participants, forbidden)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAssigned
	case errors.Is(err, secretsanta.ErrNoValidAssignment):
		return metrics.OutcomeInfeasible
	case errors.Is(err, secretsanta.ErrInsufficientParticipants):
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeError
	}
}

func genParticipants(u identity.Unifier, employees []roster.Employee) []secretsanta.Participant {
	participants := make([]secretsanta.Participant, len(employees))
	for i, e := range employees {
		participants[i] = secretsanta.Participant{Key: u.Unify(e.Email), Name: e.Name}
	}
	return participants
}

// genForbidden keeps every prior pairing whose two identifiers are known.
func genForbidden(u identity.Unifier, prior []roster.Pairing) secretsanta.ForbiddenSet {
	forbidden := secretsanta.NewForbiddenSet()
	for _, p := range prior {
		giver, receiver := u.Unify(p.EmployeeEmail), u.Unify(p.ChildEmail)
		if giver == "" || receiver == "" {
			continue
		}
		forbidden.Add(secretsanta.ForbiddenPair{Giver: giver, Receiver: receiver})
	}
	return forbidden
}

func countApplicable(participants []secretsanta.Participant, forbidden secretsanta.ForbiddenSet) int {
	current := make(map[string]bool, len(participants))
	for _, p := range participants {
		current[p.Key] = true
	}
	n := 0
	for pair := range forbidden {
		if current[pair.Giver] && current[pair.Receiver] && pair.Giver != pair.Receiver {
			n++
		}
	}
	return n
}

// genResults reports names and identifiers as they were written in the
// employee table.
func genResults(u identity.Unifier, employees []roster.Employee, assignment secretsanta.Assignment) []roster.Pairing {
	byKey := make(map[string]roster.Employee, len(employees))
	for _, e := range employees {
		byKey[u.Unify(e.Email)] = e
	}

	results := make([]roster.Pairing, len(assignment))
	for i, p := range assignment {
		giver, child := byKey[p.Giver.Key], byKey[p.Receiver.Key]
		results[i] = roster.Pairing{
			EmployeeName:  giver.Name,
			EmployeeEmail: giver.Email,
			ChildName:     child.Name,
			ChildEmail:    child.Email,
		}
	}
	return results
}
