package main

import (
	"idea-go/pkg/hexkey"

	"github.com/urfave/cli/v2"
)

var (
	keyFlag = &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "16-byte key as 32 hex characters `HEX` (default: config key / IDEA_KEY)",
	}
	nonceFlag = &cli.StringFlag{
		Name:    "nonce",
		Aliases: []string{"n"},
		Usage:   "4-byte CTR nonce as 8 hex characters `HEX` (default: config nonce / IDEA_NONCE)",
	}
)

// keyArg returns the --key flag, falling back to the configured key.
func keyArg(c *cli.Context) ([]byte, error) {
	s := c.String("key")
	if s == "" {
		s = cfg.Key
	}
	if s == "" {
		return nil, cli.Exit("Error: a key is required (--key, config key or IDEA_KEY).", 1)
	}
	key, err := hexkey.ParseKey(s)
	if err != nil {
		return nil, cli.Exit("Error: "+err.Error(), 1)
	}
	return key, nil
}

// nonceArg returns the --nonce flag, falling back to the configured nonce.
func nonceArg(c *cli.Context) ([]byte, error) {
	s := c.String("nonce")
	if s == "" {
		s = cfg.Nonce
	}
	if s == "" {
		return nil, cli.Exit("Error: a nonce is required (--nonce, config nonce or IDEA_NONCE).", 1)
	}
	nonce, err := hexkey.ParseNonce(s)
	if err != nil {
		return nil, cli.Exit("Error: "+err.Error(), 1)
	}
	return nonce, nil
}
