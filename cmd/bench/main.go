// Command bench drives the index through a bulk insert and a full range
// scan, timing both and plotting per-insert latency over the run; the scan
// result is printed, not plotted. The workload-sweep-and-record shape follows
// db-index-performance-evaluation's benchmark harness; the chart output
// uses gonum.org/v1/plot, the library that repo's go.mod names for exactly
// this kind of result.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bpindex/bptree"
)

func main() {
	n := flag.Int("n", 100000, "number of keys to insert")
	pageSize := flag.Int("pagesize", 4096, "index page content size in bytes")
	poolSize := flag.Int("poolsize", 256, "buffer pool frame count")
	out := flag.String("out", "bench.png", "path to write the insert-latency chart")
	flag.Parse()

	dir, err := os.MkdirTemp("", "bpindex-bench")
	if err != nil {
		log.Fatalf("bench: %v", err)
	}
	defer os.RemoveAll(dir)

	idx, err := bptree.Open(dir+"/bench", 0, bptree.Integer, nil, *pageSize, *poolSize)
	if err != nil {
		log.Fatalf("bench: open: %v", err)
	}
	defer idx.Close()

	keys := rand.New(rand.NewSource(1)).Perm(*n)

	insertLatencies := make(plotter.XYs, *n)
	start := time.Now()
	for i, k := range keys {
		t0 := time.Now()
		if err := idx.InsertEntry(int32(k), bptree.RID{PageNumber: int32(k), SlotNumber: 0}); err != nil {
			log.Fatalf("bench: insert %d: %v", k, err)
		}
		insertLatencies[i].X = float64(i)
		insertLatencies[i].Y = float64(time.Since(t0).Nanoseconds())
	}
	totalInsert := time.Since(start)
	fmt.Printf("inserted %d keys in %s (%s/op)\n", *n, totalInsert, totalInsert / time.Duration(*n))

	start = time.Now()
	if err := idx.StartScan(0, bptree.GTE, int32(*n), bptree.LT); err != nil {
		log.Fatalf("bench: start scan: %v", err)
	}
	count := 0
	for {
		_, err := idx.ScanNext()
		if err == bptree.ErrIndexScanCompleted {
			break
		}
		if err != nil {
			log.Fatalf("bench: scan next: %v", err)
		}
		count++
	}
	totalScan := time.Since(start)
	fmt.Printf("scanned %d entries in %s\n", count, totalScan)

	if err := renderChart(*out, insertLatencies); err != nil {
		log.Fatalf("bench: render chart: %v", err)
	}
}

func renderChart(path string, series plotter.XYs) error {
	p := plot.New()
	p.Title.Text = "insert latency over bulk build"
	p.X.Label.Text = "insert #"
	p.Y.Label.Text = "latency (ns)"

	line, err := plotter.NewLine(series)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}
