package main

import (
	"fmt"
	"os"

	"idea-go/pkg/log"
	"idea-go/pkg/transform"

	"github.com/urfave/cli/v2"
)

var sealFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "in",
		Aliases:  []string{"i"},
		Usage:    "Input `FILE`",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "out",
		Aliases:  []string{"o"},
		Usage:    "Output `FILE`",
		Required: true,
	},
	keyFlag,
	&cli.StringFlag{
		Name:  "compress",
		Usage: "Compression applied before encryption: zstd, gzip or none (default: config compression)",
	},
}

var (
	sealCommand = &cli.Command{
		Name:        "seal",
		Usage:       "compress and encrypt a file under a random nonce",
		UsageText:   "idea seal --in FILE --out FILE --key HEX [--compress zstd|gzip|none]",
		Description: "The nonce is stored in front of the ciphertext. open must use the same --compress.",
		Flags:       sealFlags,
		Action:      sealCmd(true),
	}
	openCommand = &cli.Command{
		Name:      "open",
		Usage:     "decrypt and decompress a file written by seal",
		UsageText: "idea open --in FILE --out FILE --key HEX [--compress zstd|gzip|none]",
		Flags:     sealFlags,
		Action:    sealCmd(false),
	}
)

func sealCmd(seal bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		key, err := keyArg(c)
		if err != nil {
			return err
		}
		compression := cfg.Compression
		if c.IsSet("compress") {
			compression = c.String("compress")
		}
		p, err := transform.NewSealer(compression, key)
		if err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}

		in, out := c.String("in"), c.String("out")
		data, err := os.ReadFile(in)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}

		var result []byte
		if seal {
			result, err = p.Seal(data)
		} else {
			result, err = p.Open(data)
		}
		if err != nil {
			log.Error().Err(err).Str("in", in).Bool("seal", seal).Msg("transform failed")
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		if err := os.WriteFile(out, result, 0o600); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}

		log.Info().
			Str("in", in).
			Str("out", out).
			Str("compression", compression).
			Bool("seal", seal).
			Int("in_bytes", len(data)).
			Int("out_bytes", len(result)).
			Msg("payload transformed")
		return nil
	}
}
