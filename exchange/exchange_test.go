// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"

	"github.com/someonegg/secretsanta"
	"github.com/someonegg/secretsanta/identity"
	"github.com/someonegg/secretsanta/internal/metrics"
	"github.com/someonegg/secretsanta/roster"
)

var (
	ann = roster.Employee{Name: "Ann", Email: "ann@x"}
	bob = roster.Employee{Name: "Bob", Email: "bob@x"}
	cat = roster.Employee{Name: "Cat", Email: "cat@x"}
)

func gives(giver, child roster.Employee) roster.Pairing {
	return roster.Pairing{
		EmployeeName:  giver.Name,
		EmployeeEmail: giver.Email,
		ChildName:     child.Name,
		ChildEmail:    child.Email,
	}
}

// brokenMatcher returns a fixed assignment whatever it is asked.
type brokenMatcher struct {
	assignment secretsanta.Assignment
}

func (m brokenMatcher) Match([]secretsanta.Participant, secretsanta.ForbiddenSet) (secretsanta.Assignment, error) {
	return m.assignment, nil
}

func runsOf(r *metrics.Recorder, outcome string) error {
	return testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(`
# HELP santa_runs_total Assignment runs by outcome
# TYPE santa_runs_total counter
santa_runs_total{outcome="`+outcome+`"} 1
`), "santa_runs_total")
}

func TestExchange_Run(t *testing.T) {
	convey.Convey("Given an exchange", t, func() {
		ctx := context.Background()
		rec := metrics.NewRecorder()
		x := &Exchange{Metrics: rec}

		convey.Convey("When last period's pairing would otherwise be chosen", func() {
			results, summ, err := x.Run(ctx, []roster.Employee{ann, bob, cat}, []roster.Pairing{gives(ann, bob)})

			convey.Convey("Then the assignment avoids it and is ordered by child", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results, convey.ShouldResemble, []roster.Pairing{
					gives(bob, ann),
					gives(cat, bob),
					gives(ann, cat),
				})
				convey.So(summ.Participants, convey.ShouldEqual, 3)
				convey.So(summ.PriorPairs, convey.ShouldEqual, 1)
				convey.So(summ.ForbiddenPairs, convey.ShouldEqual, 1)
				convey.So(summ.ApplicableForbidden, convey.ShouldEqual, 1)
				convey.So(summ.Candidates, convey.ShouldEqual, 5)
				convey.So(runsOf(rec, metrics.OutcomeAssigned), convey.ShouldBeNil)
			})
		})

		convey.Convey("When identifiers differ only in case and spacing", func() {
			prior := []roster.Pairing{{EmployeeEmail: " ANN@X", ChildEmail: "Bob@x "}}
			results, _, err := x.Run(ctx, []roster.Employee{ann, bob, cat}, prior)

			convey.Convey("Then the prior pairing still applies", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results[2], convey.ShouldResemble, gives(ann, cat))
			})
		})

		convey.Convey("When both directions of a pair were used last period", func() {
			prior := []roster.Pairing{gives(ann, bob), gives(bob, ann)}
			results, summ, err := x.Run(ctx, []roster.Employee{ann, bob}, prior)

			convey.Convey("Then no assignment is produced", func() {
				convey.So(errors.Is(err, secretsanta.ErrNoValidAssignment), convey.ShouldBeTrue)
				convey.So(results, convey.ShouldBeNil)
				convey.So(summ.Candidates, convey.ShouldEqual, 0)
				convey.So(summ.ApplicableForbidden, convey.ShouldEqual, 2)
				convey.So(runsOf(rec, metrics.OutcomeInfeasible), convey.ShouldBeNil)
			})
		})

		convey.Convey("When only one employee takes part", func() {
			_, _, err := x.Run(ctx, []roster.Employee{ann}, nil)

			convey.Convey("Then it reports too few participants", func() {
				convey.So(errors.Is(err, secretsanta.ErrInsufficientParticipants), convey.ShouldBeTrue)
				convey.So(runsOf(rec, metrics.OutcomeInvalidInput), convey.ShouldBeNil)
			})
		})

		convey.Convey("When prior pairings name people who left", func() {
			dan := roster.Employee{Name: "Dan", Email: "dan@x"}
			prior := []roster.Pairing{gives(ann, dan), gives(dan, bob), gives(ann, bob), gives(ann, bob)}
			_, summ, err := x.Run(ctx, []roster.Employee{ann, bob, cat}, prior)

			convey.Convey("Then they are counted but do not constrain anyone", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(summ.PriorPairs, convey.ShouldEqual, 4)
				convey.So(summ.ForbiddenPairs, convey.ShouldEqual, 3)
				convey.So(summ.ApplicableForbidden, convey.ShouldEqual, 1)
			})
		})
	})
}

func TestExchange_Aliases(t *testing.T) {
	convey.Convey("Given an employee whose identifier changed", t, func() {
		ctx := context.Background()
		u := identity.NewAliasUnifier(identity.NewUnifier(true), []identity.AliasRecord{
			{From: "ann.old@x", To: "ann@x"},
		})
		prior := []roster.Pairing{
			{EmployeeName: "Ann", EmployeeEmail: "ann.old@x", ChildName: "Bob", ChildEmail: "bob@x"},
			{EmployeeName: "Bob", EmployeeEmail: "bob@x", ChildName: "Ann", ChildEmail: "Ann.Old@x"},
		}

		convey.Convey("When the alias is configured", func() {
			x := &Exchange{Unifier: u}
			_, _, err := x.Run(ctx, []roster.Employee{ann, bob}, prior)

			convey.Convey("Then last period's pairings are recognised", func() {
				convey.So(errors.Is(err, secretsanta.ErrNoValidAssignment), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no alias is configured", func() {
			x := &Exchange{}
			results, _, err := x.Run(ctx, []roster.Employee{ann, bob}, prior)

			convey.Convey("Then the old identifier is a stranger", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results, convey.ShouldHaveLength, 2)
			})
		})
	})
}

func TestExchange_Invariant(t *testing.T) {
	convey.Convey("Given a matcher that breaks its contract", t, func() {
		a := secretsanta.Participant{Key: "ann@x", Name: "Ann"}
		x := &Exchange{Matcher: brokenMatcher{secretsanta.Assignment{
			{Giver: a, Receiver: a},
		}}}

		_, _, err := x.Run(context.Background(), []roster.Employee{ann, bob}, nil)

		convey.Convey("Then the run fails as an invariant violation", func() {
			convey.So(errors.Is(err, secretsanta.ErrInvariant), convey.ShouldBeTrue)
			convey.So(errors.Is(err, secretsanta.ErrNoValidAssignment), convey.ShouldBeFalse)
		})
	})
}

func TestExchange_Verify(t *testing.T) {
	convey.Convey("Given an employee list and last period's results", t, func() {
		x := &Exchange{}
		employees := []roster.Employee{ann, bob, cat}
		prior := []roster.Pairing{gives(ann, bob)}

		convey.Convey("When the results are a valid assignment", func() {
			err := x.Verify(employees, prior, []roster.Pairing{gives(bob, ann), gives(cat, bob), gives(ann, cat)})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When the results repeat last period", func() {
			err := x.Verify(employees, prior, []roster.Pairing{gives(cat, ann), gives(ann, bob), gives(bob, cat)})
			convey.So(errors.Is(err, secretsanta.ErrInvalidAssignment), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "forbidden")
		})

		convey.Convey("When someone is left out", func() {
			err := x.Verify(employees, prior, []roster.Pairing{gives(bob, ann), gives(ann, bob)})
			convey.So(errors.Is(err, secretsanta.ErrInvalidAssignment), convey.ShouldBeTrue)
		})

		convey.Convey("When a stranger appears", func() {
			dan := roster.Employee{Name: "Dan", Email: "dan@x"}
			err := x.Verify(employees, prior, []roster.Pairing{gives(bob, ann), gives(cat, bob), gives(dan, cat)})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "dan@x")
		})
	})
}
