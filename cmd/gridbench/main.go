// Command gridbench runs a dynamic-grid pathfinding benchmark scenario
// against the spanning-forest engine.
//
// Usage:
//
//	gridbench -full|-pre|-run|-check <scenario>
//
// Environment:
//
//	GPPC_REDIRECT_OUTPUT=1  redirect stdout/stderr to run.stdout/run.stderr
//	GPPC_MEMORY_TRACK=1     record peak resident memory into run.info
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pathlab/gridbench/bench"
	"github.com/pathlab/gridbench/spantree"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "gridbench",
		Usage:     "dynamic grid pathfinding benchmark harness",
		ArgsUsage: "<scenario>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "full", Usage: "preprocess map and run scenario"},
			&cli.BoolFlag{Name: "pre", Usage: "preprocess map only"},
			&cli.BoolFlag{Name: "run", Usage: "run scenario without preprocessing"},
			&cli.BoolFlag{Name: "check", Usage: "run and emit the validation trace"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		// cli.Exit errors have already chosen their code
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	modes := 0
	for _, m := range []string{"full", "pre", "run", "check"} {
		if c.Bool(m) {
			modes++
		}
	}
	if modes != 1 || c.NArg() != 1 {
		_ = cli.ShowAppHelp(c)

		return cli.Exit("gridbench: exactly one mode flag and a scenario path are required", 1)
	}
	scenPath := c.Args().First()

	if os.Getenv("GPPC_REDIRECT_OUTPUT") != "" {
		if err := redirectOutput(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	opts := []bench.Option{bench.WithLogger(logger)}
	switch {
	case c.Bool("full"):
		opts = append(opts, bench.WithPreprocess())
	case c.Bool("pre"):
		opts = append(opts, bench.WithPreprocess(), bench.WithoutRun())
	case c.Bool("check"):
		opts = append(opts, bench.WithCheck())
	}
	if os.Getenv("GPPC_MEMORY_TRACK") != "" {
		opts = append(opts, bench.WithMemoryTrack())
	}

	eng, err := spantree.New()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := bench.New(opts...).Run(eng, scenPath); err != nil {
		logger.Error().Err(err).Msg("run failed")
		code := 1
		if errors.Is(err, bench.ErrProtocol) {
			code = 2
		}

		return cli.Exit(err.Error(), code)
	}

	return nil
}

// redirectOutput reroutes the process's stdout and stderr into run files,
// for harness environments that collect them.
func redirectOutput() error {
	stdout, err := os.Create("run.stdout")
	if err != nil {
		return err
	}
	stderr, err := os.Create("run.stderr")
	if err != nil {
		return err
	}
	os.Stdout = stdout
	os.Stderr = stderr

	return nil
}
