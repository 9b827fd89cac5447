package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"idea-go/pkg/ctr"
	"idea-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var ctrCommand = &cli.Command{
	Name:      "ctr",
	Usage:     "encrypt or decrypt a file with IDEA in counter mode",
	UsageText: "idea ctr --in FILE --out FILE --key HEX --nonce HEX [--workers N]",
	Description: `Counter mode is its own inverse: running the command on the output with the
same key and nonce restores the input. The output always has the input's length.
No integrity protection is provided. Never reuse a nonce with the same key.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Aliases:  []string{"i"},
			Usage:    "Input `FILE`",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Usage:    "Output `FILE` (created or truncated)",
			Required: true,
		},
		keyFlag,
		nonceFlag,
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Parallel workers; 1 processes sequentially, 0 uses all CPUs (default: config workers)",
		},
	},
	Action: ctrCmd,
}

func ctrCmd(c *cli.Context) error {
	in, out := c.String("in"), c.String("out")
	if _, err := os.Stat(in); err != nil {
		return cli.Exit(fmt.Sprintf("Error: cannot find input %s: %v", in, err), 1)
	}
	key, err := keyArg(c)
	if err != nil {
		return err
	}
	nonce, err := nonceArg(c)
	if err != nil {
		return err
	}
	workers := cfg.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	if workers < 0 {
		return cli.Exit("Error: --workers must not be negative.", 1)
	}

	start := time.Now()
	if workers == 1 {
		err = ctr.ProcessFile(in, out, key, nonce)
	} else {
		err = ctr.ProcessFileParallel(c.Context, in, out, key, nonce, workers)
	}

	var partial *ctr.PartialOutputError
	switch {
	case errors.As(err, &partial):
		log.Error().Err(partial.Err).Str("in", in).Str("out", out).Int64("written", partial.Written).Msg("ctr failed, output is incomplete")
		return cli.Exit(fmt.Sprintf("Error: %v (partial output left at %s)", partial.Err, partial.Path), 1)
	case err != nil:
		log.Error().Err(err).Str("in", in).Str("out", out).Msg("ctr failed")
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	log.Info().
		Str("in", in).
		Str("out", out).
		Int("workers", workers).
		Dur("elapsed", time.Since(start)).
		Msg("ctr processed")
	return nil
}
