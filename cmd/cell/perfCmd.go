package cell

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/dFarm/cmd/util"
	"github.com/ValentinKolb/dFarm/lib/cache"
	"github.com/ValentinKolb/dFarm/lib/common"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/ValentinKolb/dFarm/lib/farm"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the configured farm",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfComb             = "perf"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the put-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different cells to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for dFarm")

	// Print configuration
	config := util.GetFarmConfig()
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	h, err := f.Hive(util.GetHive())
	if err != nil {
		return err
	}

	fmt.Println("staring tests...")

	results := make(map[string]testing.BenchmarkResult)

	benchmark := func(test string, prepare func(cells []farm.ICell), op func(c farm.ICell, i int) error) {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(test) {
				return
			}

			cells, err := getCells(h, test)
			if err != nil {
				log.Errorf("(%s) - error resolving cells: %v", test, err)
				return
			}
			if prepare != nil {
				prepare(cells)
			}

			// cleanup
			b.Cleanup(func() {
				for _, c := range cells {
					if err := c.Update(nil); err != nil {
						log.Errorf("(%s) - error removing cell: %v", test, err)
					}
				}
			})

			b.SetParallelism(perfNumThreads)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				counter := 0
				for pb.Next() {
					if err := op(cells[counter%len(cells)], counter); err != nil {
						log.Errorf("(%s) - error: %v", test, err)
					}
					counter++
				}
			})
		})
		results[test] = result
		printResult(test, result)
	}

	fill := func(cells []farm.ICell) {
		for _, c := range cells {
			if err := c.Update([]byte("test")); err != nil {
				log.Errorf("error filling cell: %v", err)
			}
		}
	}

	benchmark("put", nil, func(c farm.ICell, _ int) error {
		return c.Update([]byte("test"))
	})

	largeValue := make([]byte, perfLargeValueSizeKB*1024)
	benchmark("put-large", nil, func(c farm.ICell, _ int) error {
		return c.Update(largeValue)
	})

	benchmark("get", fill, func(c farm.ICell, _ int) error {
		_, err := c.Content()
		return err
	})

	benchmark("has", fill, func(c farm.ICell, _ int) error {
		_, err := c.Exists()
		return err
	})

	benchmark("has-not", nil, func(c farm.ICell, _ int) error {
		_, err := c.Exists()
		return err
	})

	benchmark("doc-put", nil, func(c farm.ICell, i int) error {
		d := doc.NewWithRoot("perf")
		d.Root.SetAttr("i", strconv.Itoa(i))
		return c.UpdateDocument(d)
	})

	benchmark("doc-modify", nil, func(c farm.ICell, _ int) error {
		return c.Modify(doc.AddIf("perf"), doc.Add("entry"), doc.Set("test"), doc.Remove())
	})

	benchmark("mixed", fill, func(c farm.ICell, i int) error {
		var err error
		switch i % 4 {
		case 0:
			err = c.Update([]byte("test"))
		case 1:
			_, err = c.Content()
		case 2:
			err = c.Update(nil)
		case 3:
			_, err = c.Exists()
		}
		return err
	})

	catalogResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("catalog") {
			return
		}

		catalog := h.Catalog()
		b.Cleanup(func() {
			for i := 0; i < perfKeySpread; i++ {
				if err := catalog.Delete(perfID("catalog", i)); err != nil {
					log.Errorf("(catalog) - error deleting comb: %v", err)
				}
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if err := catalog.Create(perfID("catalog", counter%perfKeySpread)); err != nil {
					log.Errorf("(catalog) - error creating comb: %v", err)
				}
				counter++
			}
		})
	})
	results["catalog"] = catalogResult
	printResult("catalog", catalogResult)

	// Print the counters collected during the tests
	if config.Cached() {
		fmt.Println()
		fmt.Println("Cache metrics:")
		cache.WriteMetrics(os.Stdout)
	}
	if config.Synchronized {
		fmt.Println()
		fmt.Println("Lock metrics:")
		metrics.WriteOnce(util.Locks.Metrics(), os.Stdout)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

func perfID(test string, i int) string {
	return fmt.Sprintf("%s-%s-%d", perfComb, test, i)
}

// getCells resolves the cells used by a test, spread over the comb of the test
func getCells(h farm.IHive, test string) ([]farm.ICell, error) {
	comb, err := h.Comb(perfComb + "-" + test)
	if err != nil {
		return nil, err
	}
	cells := make([]farm.ICell, perfKeySpread)
	for i := range cells {
		if cells[i], err = comb.Cell("c" + strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config common.FarmConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Backend", "Codec", "Compression", "Cache", "CacheLimit", "Synchronized",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		skipped := "true"

		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			string(config.Backend),
			config.Codec,
			config.Compression,
			string(config.Cache),
			strconv.FormatInt(config.CacheLimit, 10),
			strconv.FormatBool(config.Synchronized),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
