// Command worker runs batch parsing over a file of inputs, one per line,
// and writes one JSON result per line. It shares the same engines as the
// HTTP service but needs no network or cache backend.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"sync"

	"github.com/contact-parser/app/config"
	"github.com/contact-parser/app/models"
	"github.com/contact-parser/app/services"
	"github.com/contact-parser/internal/parser"
)

func main() {
	kind := flag.String("kind", models.KindName, "input kind: name or address")
	inPath := flag.String("in", "-", "input file, one text per line (- for stdin)")
	outPath := flag.String("out", "-", "output file, one JSON result per line (- for stdout)")
	workers := flag.Int("workers", 4, "number of parse workers")
	configPath := flag.String("config", "config/parser.yaml", "path to config file")
	flag.Parse()

	if *kind != models.KindName && *kind != models.KindAddress {
		log.Fatalf("unknown kind %q, want %q or %q", *kind, models.KindName, models.KindAddress)
	}

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	in := os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatalf("failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := run(*kind, *workers, in, out); err != nil {
		log.Fatalf("worker failed: %v", err)
	}
}

type task struct {
	index int
	text  string
}

func run(kind string, workers int, in io.Reader, out io.Writer) error {
	nameParser := parser.NewNameParser()
	addressParser := parser.NewAddressParser()
	useEmptyDefault := !config.C.Parser.NilDefaults

	lines, err := readLines(in)
	if err != nil {
		return err
	}

	results := make([]*models.ParseResult, len(lines))
	tasks := make(chan task)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				result := &models.ParseResult{
					Raw:            t.text,
					Kind:           kind,
					RawFingerprint: services.CacheKey(kind, t.text),
					Status:         models.StatusOK,
				}
				if kind == models.KindName {
					result.Name = nameParser.Parse(t.text, useEmptyDefault)
				} else {
					result.Address = addressParser.Parse(t.text, useEmptyDefault)
				}
				results[t.index] = result
			}
		}()
	}

	for i, line := range lines {
		tasks <- task{index: i, text: line}
	}
	close(tasks)
	wg.Wait()

	enc := json.NewEncoder(out)
	for _, result := range results {
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	log.Printf("parsed %d %s inputs", len(lines), kind)
	return nil
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
