// SPDX-License-Identifier: Apache-2.0

// nanotu runs the built-in self-check units of the containers package.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/wundergraph/go-containers/catalog"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	capacityFlag = &cli.IntFlag{
		Name:  "capacity",
		Usage: "Maximum number of registered units",
		Value: catalog.DefaultCapacity,
	}
	timeUnitFlag = &cli.StringFlag{
		Name:  "time-unit",
		Usage: "Unit for reported durations (nano, micro, second)",
		Value: catalog.Micro.String(),
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level (debug, info, warn, error)",
		Value: "info",
	}
	runFlag = &cli.StringFlag{
		Name:  "run",
		Usage: "Run only those units matching the regular expression.",
		Value: ".*",
	}
	failFastFlag = &cli.BoolFlag{
		Name:  "fail-fast",
		Usage: "Stop after the first failing unit",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:   "nanotu",
		Usage:  "run the containers self-check catalog",
		Flags:  []cli.Flag{configFlag, capacityFlag, timeUnitFlag, verbosityFlag, runFlag, failFastFlag},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	pattern, err := regexp.Compile(ctx.String(runFlag.Name))
	if err != nil {
		return errors.Wrap(err, "invalid --run pattern")
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.New(cfg, catalog.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := registerSelfChecks(cat); err != nil {
		return err
	}

	report := cat.RunMatching(ctx.Context, pattern)
	printSummary(os.Stdout, report)
	if !report.OK() {
		return cli.Exit("", 1)
	}
	return nil
}

// loadConfig starts from the config file, if any, and applies explicitly set flags.
func loadConfig(ctx *cli.Context) (catalog.Config, error) {
	cfg := catalog.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = catalog.LoadConfig(path); err != nil {
			return catalog.Config{}, err
		}
	}
	if ctx.IsSet(capacityFlag.Name) {
		cfg.Capacity = ctx.Int(capacityFlag.Name)
	}
	if ctx.IsSet(timeUnitFlag.Name) {
		cfg.TimeUnit = ctx.String(timeUnitFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.LogLevel = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(failFastFlag.Name) {
		cfg.FailFast = ctx.Bool(failFastFlag.Name)
	}
	return cfg, cfg.Validate()
}

func printSummary(w io.Writer, report *catalog.Report) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	skip := color.New(color.FgYellow)

	for res := range report.Results.Values() {
		switch {
		case res.Skipped:
			skip.Fprintf(w, "SKIP %s\n", res.Name)
		case res.Err != nil:
			fail.Fprintf(w, "FAIL %s: %v\n", res.Name, res.Err)
		default:
			pass.Fprintf(w, "PASS %s\n", res.Name)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped\n", report.Passed, report.Failed, report.Skipped)
}
