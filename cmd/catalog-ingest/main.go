// Command catalog-ingest bulk-loads gzipped JSONL product dumps into the
// catalog snapshot file. Each input line is one product object; lines that
// fail to decode or validate are counted and skipped. Duplicate IDs across
// dumps (and against the existing snapshot) are suppressed with a bloom
// filter sized for tens of millions of records.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
	"github.com/xenking/meli-catalog-challenge/internal/storage/file"
)

const (
	bloomCapacity = 50_000_000
	bloomFPR      = 0.001
	progressEvery = 1_000_000

	// Scanner line budget: a product with embedded reviews can get large.
	maxLineBytes = 1 << 20
)

func main() {
	var dataFile string
	flag.StringVar(&dataFile, "data-file", "data/products.json", "catalog snapshot file to merge into")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		slog.Error("usage: catalog-ingest [-data-file path] dump1.json.gz [dump2.json.gz ...]")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataFile, files); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataFile string, files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	// Seed the dedupe filter and output with the existing snapshot, if any.
	products, err := loadExisting(dataFile)
	if err != nil {
		return err
	}
	slog.Info("existing snapshot", slog.Int("products", len(products)))

	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	for i := range products {
		seen.AddString(products[i].ID)
	}

	// One decoder goroutine per dump file, one consumer doing dedupe. The
	// bloom filter trades a ~0.1% false-positive drop rate for bounded
	// memory on arbitrarily large dumps.
	out := make(chan catalog.Product, 1024)
	var skipped, duplicates int

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // guards skipped across decoder goroutines

	for _, f := range files {
		g.Go(func() error {
			n, err := decodeFile(gctx, f, out)
			mu.Lock()
			skipped += n
			mu.Unlock()
			return err
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range out {
			if seen.TestAndAddString(p.ID) {
				duplicates++
				continue
			}
			products = append(products, p)
			if len(products)%progressEvery == 0 {
				slog.Info("progress", slog.Int("products", len(products)))
			}
		}
	}()

	if err := g.Wait(); err != nil {
		close(out)
		<-done
		return err
	}
	close(out)
	<-done

	slog.Info("merge complete",
		slog.Int("products", len(products)),
		slog.Int("skipped", skipped),
		slog.Int("duplicates", duplicates),
	)

	if err := file.WriteSnapshot(dataFile, products); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

func loadExisting(path string) ([]catalog.Product, error) {
	products, err := file.ReadSnapshot(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "load snapshot %s", path)
	}
	return products, nil
}

// decodeFile streams one gzipped JSONL dump, sending valid products to out.
// Returns the number of skipped (undecodable or invalid) lines.
func decodeFile(ctx context.Context, path string, out chan<- catalog.Product) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return 0, errors.Wrapf(err, "gzip reader %s", path)
	}
	defer gz.Close()

	skipped := 0
	lineNo := 0
	sc := bufio.NewScanner(gz)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		p, err := file.DecodeProduct(jx.DecodeBytes(line))
		if err != nil || !validProduct(&p) {
			skipped++
			continue
		}

		select {
		case out <- p:
		case <-ctx.Done():
			return skipped, ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return skipped, errors.Wrapf(err, "scan %s line %d", path, lineNo)
	}

	slog.Info("file decoded", slog.String("file", path), slog.Int("lines", lineNo), slog.Int("skipped", skipped))
	return skipped, nil
}

// validProduct applies the minimal ingest checks: an explicit ID (the dedupe
// key), a title, and a positive price.
func validProduct(p *catalog.Product) bool {
	if p.ID == "" || p.Title == "" {
		return false
	}
	if !p.Price.IsPositive() {
		return false
	}
	if p.Rating != nil {
		for _, rv := range p.Rating.Reviews {
			if rv.Rating < 0 || rv.Rating > 5 {
				return false
			}
		}
	}
	return true
}
