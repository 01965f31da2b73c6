package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(os.Args, os.Stderr))
}

// run executes the app and returns the process exit code. Errors go to
// stderr along with the log.
func run(args []string, stderr io.Writer) int {
	app := newApp()
	app.ErrWriter = stderr
	if err := app.Run(args); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "santa",
		Usage: "Draw Secret Santa assignments that never repeat last period's pairings",
		Commands: []*cli.Command{
			newAssignCmd(),
			newValidateCmd(),
			newVerifyCmd(),
		},
	}
}

// commonFlags are built per command since flags keep parse state.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "specify a YAML config file (default $SANTA_CONFIG)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "specify the log level (debug, info, warn, error)",
		},
		&cli.BoolFlag{
			Name:  "fold-case",
			Value: true,
			Usage: "compare employee ids case-insensitively",
		},
	}
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	return append(flags, commonFlags()...)
}

func newAssignCmd() *cli.Command {
	return &cli.Command{
		Name:    "assign",
		Usage:   "Assign every employee a secret child",
		Aliases: []string{"a"},
		Flags: withCommon(
			&cli.StringFlag{
				Name:    "employees",
				Aliases: []string{"e"},
				Usage:   "specify the input employee list (prompted for when omitted)",
			},
			&cli.StringFlag{
				Name:    "previous",
				Aliases: []string{"p"},
				Usage:   "specify last period's result file (optional)",
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o"},
				Usage:   "specify the directory for the result file",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "specify the result file name prefix",
			},
			&cli.BoolFlag{
				Name:  "strict-previous",
				Usage: "fail instead of ignoring an unusable previous file",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "specify a file to receive run metrics in Prometheus text format",
			},
		),
		Action: func(ctx *cli.Context) error {
			env, err := setup(ctx)
			if err != nil {
				return err
			}

			var (
				employeesFile = ctx.String("employees")
				previousFile  = ctx.String("previous")
			)
			if employeesFile == "" {
				var prompted string
				employeesFile, prompted, err = promptFiles(env, !ctx.IsSet("previous"))
				if err != nil {
					return err
				}
				if prompted != "" {
					previousFile = prompted
				}
			}
			return doAssign(ctx.Context, env, employeesFile, previousFile)
		},
	}
}

func newValidateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check an employee list, and optionally a previous result file, without assigning",
		Flags: withCommon(
			&cli.StringFlag{
				Name:     "employees",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "specify the input employee list",
			},
			&cli.StringFlag{
				Name:    "previous",
				Aliases: []string{"p"},
				Usage:   "specify last period's result file",
			},
		),
		Action: func(ctx *cli.Context) error {
			env, err := setup(ctx)
			if err != nil {
				return err
			}
			return doValidate(ctx.Context, env, ctx.String("employees"), ctx.String("previous"))
		},
	}
}

func newVerifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check that a result file is a valid assignment for an employee list",
		Flags: withCommon(
			&cli.StringFlag{
				Name:     "employees",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "specify the input employee list",
			},
			&cli.StringFlag{
				Name:     "result",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "specify the result file to check",
			},
			&cli.StringFlag{
				Name:    "previous",
				Aliases: []string{"p"},
				Usage:   "specify the period before the result's, whose pairings must not repeat",
			},
		),
		Action: func(ctx *cli.Context) error {
			env, err := setup(ctx)
			if err != nil {
				return err
			}
			return doVerify(ctx.Context, env, ctx.String("employees"), ctx.String("result"), ctx.String("previous"))
		},
	}
}
