package main

import (
	"context"
	"fmt"

	"github.com/someonegg/secretsanta/exchange"
	"github.com/someonegg/secretsanta/roster"
)

// doVerify checks a result file against the employee list and, if given,
// the period before it.
func doVerify(ctx context.Context, env *runEnv, employeesFile, resultFile, previousFile string) error {
	employees, prior, err := loadInputs(ctx, env, employeesFile, previousFile, true)
	if err != nil {
		return err
	}
	results, err := roster.ReadPrior(resultFile, env.unifier)
	if err != nil {
		return fmt.Errorf("result file %s: %w", resultFile, err)
	}

	x := &exchange.Exchange{
		Unifier: env.unifier,
		Logger:  env.log.Named("exchange"),
	}
	if err := x.Verify(employees, prior, results); err != nil {
		return fmt.Errorf("result file %s: %w", resultFile, err)
	}

	fmt.Fprintf(env.out, "%s: valid assignment of %d employees\n", resultFile, len(employees))
	return nil
}
