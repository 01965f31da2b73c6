package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/someonegg/secretsanta/internal/logger"
	"github.com/someonegg/secretsanta/roster"
)

// loadInputs reads the employee list and, when previousFile is set, the
// previous result file in parallel. Unless strict, a previous file that
// cannot be used is logged and skipped.
func loadInputs(ctx context.Context, env *runEnv, employeesFile, previousFile string, strict bool) ([]roster.Employee, []roster.Pairing, error) {
	var (
		employees []roster.Employee
		prior     []roster.Pairing
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := roster.ReadEmployees(employeesFile, env.unifier)
		if err != nil {
			return fmt.Errorf("employee list %s: %w", employeesFile, err)
		}
		employees = e
		return nil
	})

	if previousFile != "" {
		g.Go(func() error {
			p, err := roster.ReadPrior(previousFile, env.unifier)
			if err == nil {
				prior = p
				return nil
			}
			if strict {
				return fmt.Errorf("previous results %s: %w", previousFile, err)
			}
			env.log.Warn(gctx, "proceeding without previous results",
				logger.String("file", previousFile), logger.Error(err))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return employees, prior, nil
}
