package main

import (
	"fmt"
	"strings"

	"idea-go/pkg/hexkey"
	"idea-go/pkg/idea"
	"idea-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var (
	encryptCommand = &cli.Command{
		Name:      "encrypt",
		Usage:     "encrypt a single 8-byte block",
		UsageText: "idea encrypt --key HEX BLOCK_HEX",
		Flags:     []cli.Flag{keyFlag},
		Action:    blockCmd(true),
	}
	decryptCommand = &cli.Command{
		Name:      "decrypt",
		Usage:     "decrypt a single 8-byte block",
		UsageText: "idea decrypt --key HEX BLOCK_HEX",
		Flags:     []cli.Flag{keyFlag},
		Action:    blockCmd(false),
	}
	scheduleCommand = &cli.Command{
		Name:      "schedule",
		Usage:     "print the encryption and decryption subkeys for a key",
		UsageText: "idea schedule --key HEX",
		Flags:     []cli.Flag{keyFlag},
		Action:    scheduleCmd,
	}
)

func blockCmd(encrypt bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("Error: expected exactly one block argument.", 1)
		}
		block, err := hexkey.ParseBlock(c.Args().First())
		if err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		key, err := keyArg(c)
		if err != nil {
			return err
		}
		ci, err := idea.NewCipher(key)
		if err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}

		if encrypt {
			ci.Encrypt(block, block)
		} else {
			ci.Decrypt(block, block)
		}
		log.Debug().Bool("encrypt", encrypt).Msg("block processed")
		fmt.Fprintf(c.App.Writer, "%X\n", block)
		return nil
	}
}

func scheduleCmd(c *cli.Context) error {
	key, err := keyArg(c)
	if err != nil {
		return err
	}
	ci, err := idea.NewCipher(key)
	if err != nil {
		return cli.Exit("Error: "+err.Error(), 1)
	}
	printSchedule(c, "encryption", ci.EncryptionSubkeys())
	printSchedule(c, "decryption", ci.DecryptionSubkeys())
	return nil
}

func printSchedule(c *cli.Context, name string, keys []uint16) {
	fmt.Fprintf(c.App.Writer, "%s subkeys:\n", name)
	for r := 0; r*6 < len(keys); r++ {
		end := min(r*6+6, len(keys))
		words := make([]string, 0, 6)
		for _, k := range keys[r*6 : end] {
			words = append(words, fmt.Sprintf("%04X", k))
		}
		label := fmt.Sprintf("round %d", r+1)
		if end-r*6 < 6 {
			label = "output"
		}
		fmt.Fprintf(c.App.Writer, "  %-8s %s\n", label, strings.Join(words, " "))
	}
}
