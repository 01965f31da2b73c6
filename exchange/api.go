// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange runs a gift exchange from roster tables: it turns rows
// into participants and forbidden pairings, runs the matcher and turns the
// assignment back into rows.
package exchange

import (
	"time"

	"github.com/someonegg/secretsanta"
	"github.com/someonegg/secretsanta/identity"
	"github.com/someonegg/secretsanta/internal/logger"
	"github.com/someonegg/secretsanta/internal/metrics"
)

type Exchange struct {
	// Unifier turns identifiers into participant keys. Defaults to
	// trimming and case folding.
	Unifier identity.Unifier

	// Matcher defaults to secretsanta.AugmentingMatcher.
	Matcher secretsanta.Matcher

	// Metrics and Logger are optional.
	Metrics *metrics.Recorder
	Logger  logger.Logger

	unifier identity.Unifier
	matcher secretsanta.Matcher
	log     logger.Logger
}

type Summary struct {
	Participants int `json:"participants"`
	PriorPairs   int `json:"prior_pairs"`
	// ForbiddenPairs counts distinct prior pairings, ApplicableForbidden
	// those between two current participants.
	ForbiddenPairs      int           `json:"forbidden_pairs"`
	ApplicableForbidden int           `json:"applicable_forbidden"`
	Candidates          int           `json:"candidates"`
	Duration            time.Duration `json:"duration"`
}
