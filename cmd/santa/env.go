package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/secretsanta/identity"
	"github.com/someonegg/secretsanta/internal/config"
	"github.com/someonegg/secretsanta/internal/logger"
	"github.com/someonegg/secretsanta/internal/metrics"
)

// runEnv is everything a command needs besides its own flags.
type runEnv struct {
	cfg     *config.Config
	log     logger.Logger
	unifier identity.Unifier
	metrics *metrics.Recorder

	in  *bufio.Reader
	out io.Writer
	now func() time.Time
}

func setup(ctx *cli.Context) (*runEnv, error) {
	logger.Init(ctx.App.ErrWriter)

	cfg, err := config.Load(ctx.Context, ctx.String("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}

	aliases := make([]identity.AliasRecord, len(cfg.Aliases))
	for i, a := range cfg.Aliases {
		aliases[i] = identity.AliasRecord{From: a.From, To: a.To}
	}

	return &runEnv{
		cfg:     cfg,
		log:     logger.Get().With(logger.String("run_id", uuid.NewString())),
		unifier: identity.NewAliasUnifier(identity.NewUnifier(cfg.FoldCase), aliases),
		metrics: metrics.NewRecorder(),
		in:      bufio.NewReader(ctx.App.Reader),
		out:     ctx.App.Writer,
		now:     time.Now,
	}, nil
}

// applyFlags lets command line flags override the loaded configuration.
// Flags a command does not define are never set.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet("log-level") {
		cfg.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("fold-case") {
		cfg.FoldCase = ctx.Bool("fold-case")
	}
	if ctx.IsSet("out-dir") {
		cfg.OutputDir = ctx.String("out-dir")
	}
	if ctx.IsSet("prefix") {
		cfg.OutputPrefix = ctx.String("prefix")
	}
	if ctx.IsSet("strict-previous") {
		cfg.StrictPrevious = ctx.Bool("strict-previous")
	}
	if ctx.IsSet("metrics-file") {
		cfg.MetricsFile = ctx.String("metrics-file")
	}
}

// writeMetrics exports run metrics when a metrics file is configured.
// A failed export is logged, never fatal.
func (env *runEnv) writeMetrics(ctx context.Context) {
	if env.cfg.MetricsFile == "" {
		return
	}
	if err := env.metrics.WriteTextfile(env.cfg.MetricsFile); err != nil {
		env.log.Warn(ctx, "writing metrics failed",
			logger.String("path", env.cfg.MetricsFile), logger.Error(err))
	}
}

// promptFiles asks for the employee list and, if askPrevious, the optional
// previous result file on standard input.
func promptFiles(env *runEnv, askPrevious bool) (employeesFile, previousFile string, err error) {
	employeesFile, err = env.prompt("Enter current year employee list filename (e.g., employees.csv): ")
	if err != nil {
		return "", "", err
	}
	if employeesFile == "" {
		return "", "", fmt.Errorf("no employee list given")
	}
	if !askPrevious {
		return employeesFile, "", nil
	}

	previousFile, err = env.prompt("Enter last year's result filename (Optional, press Enter to skip): ")
	if err != nil {
		return "", "", err
	}
	return employeesFile, previousFile, nil
}

func (env *runEnv) prompt(question string) (string, error) {
	fmt.Fprint(env.out, question)
	line, err := env.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
