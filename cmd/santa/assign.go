package main

import (
	"context"
	"fmt"

	"github.com/someonegg/secretsanta/exchange"
	"github.com/someonegg/secretsanta/internal/logger"
	"github.com/someonegg/secretsanta/internal/metrics"
	"github.com/someonegg/secretsanta/roster"
)

// doAssign draws a new assignment and stores it in a timestamped result
// file. Nothing is written unless every employee got a secret child.
func doAssign(ctx context.Context, env *runEnv, employeesFile, previousFile string) error {
	log := env.log.Named("assign")
	defer env.writeMetrics(ctx)

	employees, prior, err := loadInputs(ctx, env, employeesFile, previousFile, env.cfg.StrictPrevious)
	if err != nil {
		env.metrics.ObserveRun(metrics.Run{Outcome: metrics.OutcomeInvalidInput})
		return err
	}

	x := &exchange.Exchange{
		Unifier: env.unifier,
		Metrics: env.metrics,
		Logger:  env.log.Named("exchange"),
	}
	results, summ, err := x.Run(ctx, employees, prior)
	if err != nil {
		log.Error(ctx, "assignment failed",
			logger.Int("participants", summ.Participants),
			logger.Int("forbidden", summ.ApplicableForbidden),
			logger.Error(err))
		return fmt.Errorf("failed to generate a valid set of assignments: %w", err)
	}

	path := roster.OutputName(env.cfg.OutputDir, env.cfg.OutputPrefix, env.now())
	if err := roster.WriteResults(path, results); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}

	log.Info(ctx, "assigned",
		logger.String("file", path),
		logger.Any("summary", summ))
	fmt.Fprintf(env.out, "Secret Santa result stored in '%s'\n", path)
	return nil
}
