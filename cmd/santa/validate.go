package main

import (
	"context"
	"fmt"
)

// doValidate reads both files strictly and reports what they hold.
func doValidate(ctx context.Context, env *runEnv, employeesFile, previousFile string) error {
	employees, prior, err := loadInputs(ctx, env, employeesFile, previousFile, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "%s: %d employees\n", employeesFile, len(employees))
	if previousFile != "" {
		fmt.Fprintf(env.out, "%s: %d pairings\n", previousFile, len(prior))
	}
	return nil
}
