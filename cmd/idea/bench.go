package main

import (
	"fmt"

	"idea-go/pkg/benchmark"
	"idea-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var benchCommand = &cli.Command{
	Name:      "bench",
	Usage:     "time block encryption, decryption and CTR processing",
	UsageText: "idea bench [--component encrypt|decrypt|ctr|all] [--iterations N] [--payload BYTES] [--output FILE.csv]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "component",
			Usage: "Operation to benchmark: encrypt, decrypt, ctr or all",
			Value: "encrypt",
		},
		&cli.IntFlag{
			Name:    "iterations",
			Aliases: []string{"n"},
			Usage:   "Number of timed iterations",
			Value:   benchmark.DefaultBenchmarkOptions().Iterations,
		},
		&cli.IntFlag{
			Name:  "payload",
			Usage: "Payload size in bytes for the ctr component",
			Value: benchmark.DefaultBenchmarkOptions().PayloadSize,
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Save results to a CSV `FILE`",
		},
	},
	Action: benchCmd,
}

func benchCmd(c *cli.Context) error {
	opts := benchmark.DefaultBenchmarkOptions()
	opts.Iterations = c.Int("iterations")
	opts.PayloadSize = c.Int("payload")

	var (
		results []*benchmark.LatencyResults
		err     error
	)
	if c.String("component") == "all" {
		results, err = benchmark.RunAll(opts)
	} else {
		opts.Component, err = benchmark.ParseComponent(c.String("component"))
		if err != nil {
			return cli.Exit("Error: "+err.Error(), 1)
		}
		var r *benchmark.LatencyResults
		r, err = benchmark.Run(opts)
		if r != nil {
			results = append(results, r)
		}
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Benchmark failed: %v", err), 1)
	}

	for _, r := range results {
		benchmark.PrintResults(c.App.Writer, r)
		log.Info().
			Str("component", r.Component.String()).
			Int("iterations", r.Iterations).
			Dur("total", r.TotalTime).
			Float64("bytes_per_second", r.Throughput()).
			Msg("benchmark completed")
	}

	if out := c.String("output"); out != "" {
		if err := benchmark.SaveResultsToFile(results, out); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to save results: %v", err), 1)
		}
		log.Printf("results saved to %s", out)
	}
	return nil
}
