// corvid is a line-oriented driver over the engine facade: each stdin line is a JSON
// Input payload, each stdout line the corresponding JSON Output.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	hashMB   = flag.Uint("hash", 64, "Transposition table size, in MB (0 disables it)")
	depth    = flag.Uint("depth", 0, "Depth ceiling (0 means no ceiling, rely on the clock)")
	openings = flag.String("openings", "", "Path to a JSON opening book (array of UCI move lists)")
	seed     = flag.Int64("seed", 0, "Zobrist hashing seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid reads one JSON move-request per stdin line and writes one JSON move-response per
stdout line. See pkg/engine.Input and pkg/engine.Output for the payload shape.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithZobrist(*seed),
		engine.WithOptions(engineOptions()),
	}
	if *openings != "" {
		book, err := loadBook(*openings, board.NewZobristTable(*seed))
		if err != nil {
			logw.Exitf(ctx, "Loading opening book %v: %v", *openings, err)
		}
		opts = append(opts, engine.WithOpenings(book))
	}
	e := engine.New("corvid", "corvidchess", opts...)

	in := readRequests(ctx)
	out := make(chan string, 1)
	go drive(ctx, e, in, out)
	writeResponses(ctx, out)
}

// readRequests streams stdin lines into a channel, one request per line, closing the
// channel at EOF so drive and main wind down in order.
func readRequests(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "request: %v", scanner.Text())
			ret <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logw.Errorf(ctx, "reading requests: %v", err)
		}
	}()
	return ret
}

// writeResponses drains out to stdout, one response per line. Returns when out closes.
func writeResponses(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, "response: %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}

func engineOptions() engine.Options {
	opts := engine.Options{HashMB: *hashMB}
	if *depth > 0 {
		opts.DepthLimit = lang.Some(*depth)
	}
	return opts
}

// drive decodes one Input per line from in, computes a move, and encodes one Output per
// line to out, closing out once in is exhausted.
func drive(ctx context.Context, e *engine.Engine, in <-chan string, out chan<- string) {
	defer close(out)

	for line := range in {
		var req engine.Input
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			out <- encodeError(fmt.Errorf("invalid request: %w", err))
			continue
		}

		resp, err := e.ComputeMove(ctx, req)
		if err != nil {
			out <- encodeError(err)
			continue
		}

		b, err := json.Marshal(resp)
		if err != nil {
			out <- encodeError(err)
			continue
		}
		out <- string(b)
	}
}

func encodeError(err error) string {
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
	return string(b)
}

// loadBook reads a JSON array of UCI move-lists from path and builds an opening book.
func loadBook(path string, zobrist *board.ZobristTable) (*engine.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	lines := make([]engine.Line, len(raw))
	for i, l := range raw {
		lines[i] = l
	}
	return engine.NewBook(zobrist, lines)
}
