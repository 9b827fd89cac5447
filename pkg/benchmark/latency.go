// Package benchmark times the IDEA block transform and the CTR stream and
// summarises the per-sample latencies.
package benchmark

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"idea-go/pkg/ctr"
	"idea-go/pkg/idea"

	"github.com/dustin/go-humanize"
)

// Component specifies which operation to benchmark
type Component int

const (
	ComponentEncrypt Component = iota // single block encryption
	ComponentDecrypt                  // single block decryption
	ComponentCTR                      // CTR processing of a payload
)

func (c Component) String() string {
	switch c {
	case ComponentEncrypt:
		return "Block Encrypt"
	case ComponentDecrypt:
		return "Block Decrypt"
	case ComponentCTR:
		return "CTR Stream"
	default:
		return "Unknown"
	}
}

// ParseComponent maps a CLI name to a Component.
func ParseComponent(s string) (Component, error) {
	switch s {
	case "encrypt":
		return ComponentEncrypt, nil
	case "decrypt":
		return ComponentDecrypt, nil
	case "ctr":
		return ComponentCTR, nil
	default:
		return 0, fmt.Errorf("unknown component: %s", s)
	}
}

// LatencyResults holds the results of one benchmark run
type LatencyResults struct {
	Component     Component
	Iterations    int
	BytesPerOp    int
	MinLatency    time.Duration
	MaxLatency    time.Duration
	AvgLatency    time.Duration
	MedianLatency time.Duration
	P95Latency    time.Duration
	P99Latency    time.Duration
	TotalTime     time.Duration
}

// Throughput returns processed bytes per second over the whole run.
func (r *LatencyResults) Throughput() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.BytesPerOp) * float64(r.Iterations) / r.TotalTime.Seconds()
}

// BenchmarkOptions provides configuration for benchmarks
type BenchmarkOptions struct {
	Component  Component
	Iterations int
	// PayloadSize is the CTR payload per iteration; block components always
	// process one 8-byte block.
	PayloadSize int
	Key         []byte
}

// DefaultBenchmarkOptions mirrors the classic profile: an all-zero key and
// all-zero blocks.
func DefaultBenchmarkOptions() *BenchmarkOptions {
	return &BenchmarkOptions{
		Component:   ComponentEncrypt,
		Iterations:  100000,
		PayloadSize: 4096,
		Key:         make([]byte, idea.KeySize),
	}
}

// Run measures every iteration of opts.Component.
func Run(opts *BenchmarkOptions) (*LatencyResults, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", opts.Iterations)
	}
	c, err := idea.NewCipher(opts.Key)
	if err != nil {
		return nil, err
	}

	var (
		op         func() error
		bytesPerOp = idea.BlockSize
		block      = make([]byte, idea.BlockSize)
	)
	switch opts.Component {
	case ComponentEncrypt:
		op = func() error {
			clear(block)
			c.Encrypt(block, block)
			return nil
		}
	case ComponentDecrypt:
		op = func() error {
			clear(block)
			c.Decrypt(block, block)
			return nil
		}
	case ComponentCTR:
		payload := make([]byte, opts.PayloadSize)
		nonce := make([]byte, ctr.NonceSize)
		bytesPerOp = opts.PayloadSize
		op = func() error {
			_, err := ctr.Process(bytes.NewReader(payload), io.Discard, c, nonce)
			return err
		}
	default:
		return nil, fmt.Errorf("unknown component: %d", opts.Component)
	}

	latencies := make([]time.Duration, 0, opts.Iterations)
	start := time.Now()
	for i := 0; i < opts.Iterations; i++ {
		t0 := time.Now()
		if err := op(); err != nil {
			return nil, fmt.Errorf("%s iteration %d: %w", opts.Component, i, err)
		}
		latencies = append(latencies, time.Since(t0))
	}

	results := calculateStats(latencies, time.Since(start))
	results.Component = opts.Component
	results.BytesPerOp = bytesPerOp
	return results, nil
}

// RunAll runs every component with otherwise identical options.
func RunAll(base *BenchmarkOptions) ([]*LatencyResults, error) {
	var results []*LatencyResults
	for _, component := range []Component{ComponentEncrypt, ComponentDecrypt, ComponentCTR} {
		opts := *base
		opts.Component = component
		r, err := Run(&opts)
		if err != nil {
			return results, fmt.Errorf("%s: %w", component, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// calculateStats summarises latencies; it sorts the slice in place.
func calculateStats(latencies []time.Duration, totalTime time.Duration) *LatencyResults {
	res := &LatencyResults{Iterations: len(latencies), TotalTime: totalTime}
	if len(latencies) == 0 {
		return res
	}

	slices.Sort(latencies)

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	res.MinLatency = latencies[0]
	res.MaxLatency = latencies[len(latencies)-1]
	res.AvgLatency = sum / time.Duration(len(latencies))
	res.MedianLatency = latencies[len(latencies)/2]
	res.P95Latency = latencies[(len(latencies)*95)/100]
	res.P99Latency = latencies[(len(latencies)*99)/100]
	return res
}

// PrintResults writes a human-readable report of r.
func PrintResults(w io.Writer, r *LatencyResults) {
	fmt.Fprintf(w, "=== Benchmark: %s ===\n", r.Component)
	fmt.Fprintf(w, "Iterations: %s\n", humanize.Comma(int64(r.Iterations)))
	fmt.Fprintf(w, "Bytes/op: %s\n", humanize.IBytes(uint64(r.BytesPerOp)))
	fmt.Fprintf(w, "Total Time: %v\n", r.TotalTime)
	fmt.Fprintf(w, "Throughput: %s/s\n", humanize.IBytes(uint64(r.Throughput())))
	fmt.Fprintf(w, "Min Latency: %v\n", r.MinLatency)
	fmt.Fprintf(w, "Avg Latency: %v\n", r.AvgLatency)
	fmt.Fprintf(w, "Median Latency: %v\n", r.MedianLatency)
	fmt.Fprintf(w, "95th Percentile: %v\n", r.P95Latency)
	fmt.Fprintf(w, "99th Percentile: %v\n", r.P99Latency)
	fmt.Fprintf(w, "Max Latency: %v\n", r.MaxLatency)
	fmt.Fprintln(w, "==========================================")
}

var csvHeader = []string{
	"Component", "Iterations", "BytesPerOp", "MinLatency", "AvgLatency", "MedianLatency",
	"P95Latency", "P99Latency", "MaxLatency", "TotalTime", "BytesPerSecond",
}

// WriteCSV writes results as CSV, durations in nanoseconds.
func WriteCSV(w io.Writer, results []*LatencyResults) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Component.String(),
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.BytesPerOp),
			strconv.FormatInt(r.MinLatency.Nanoseconds(), 10),
			strconv.FormatInt(r.AvgLatency.Nanoseconds(), 10),
			strconv.FormatInt(r.MedianLatency.Nanoseconds(), 10),
			strconv.FormatInt(r.P95Latency.Nanoseconds(), 10),
			strconv.FormatInt(r.P99Latency.Nanoseconds(), 10),
			strconv.FormatInt(r.MaxLatency.Nanoseconds(), 10),
			strconv.FormatInt(r.TotalTime.Nanoseconds(), 10),
			strconv.FormatFloat(r.Throughput(), 'f', 0, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveResultsToFile saves benchmark results to a CSV file
func SaveResultsToFile(results []*LatencyResults, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
