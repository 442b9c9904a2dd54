// Command dagre-layout reads an edge list from stdin and prints the
// computed hierarchical layout to stdout: per component, one "id x y"
// row per vertex followed by a "# width=W height=H" line, with a blank
// line between components.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/go-dagre/dagre/layout"
)

func main() {
	var (
		spacing     = pflag.IntP("spacing", "s", 10, "minimum horizontal spacing between vertices on the same rank")
		minLen      = pflag.IntP("min-length", "l", 1, "minimum rank difference required across every edge")
		up          = pflag.Bool("up", false, "lay out with sources at the bottom instead of the top")
		keepDummy   = pflag.Bool("keep-dummy-vertices", false, "include Properize's dummy vertices in the output")
		longestOnly = pflag.Bool("longest-path-only", false, "skip network-simplex rank optimization")
	)
	pflag.Parse()

	edges, err := readEdges(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dagre-layout:", err)
		os.Exit(1)
	}

	b := layout.FromEdges(edges).
		VertexSpacing(*spacing).
		MinimumLength(*minLen).
		DummyVertices(*keepDummy)
	if *up {
		b = b.LayeringType(layout.Up)
	}
	if *longestOnly {
		b = b.RankingType(layout.LongestPathOnly)
	}

	layouts, err := b.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dagre-layout:", err)
		os.Exit(1)
	}

	for i, lay := range layouts {
		if i > 0 {
			fmt.Println()
		}
		for _, v := range lay.Vertices {
			fmt.Printf("%d %d %d\n", v.ID, v.X, v.Y)
		}
		fmt.Printf("# width=%d height=%d\n", lay.Width, lay.Height)
	}
}

// readEdges parses one "tail head" pair of integers per line, skipping
// blank lines and lines starting with '#'.
func readEdges(r *os.File) ([][2]layout.VertexID, error) {
	var edges [][2]layout.VertexID
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed edge line %q: want two fields", line)
		}
		tail, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed tail vertex %q: %w", fields[0], err)
		}
		head, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed head vertex %q: %w", fields[1], err)
		}
		edges = append(edges, [2]layout.VertexID{layout.VertexID(tail), layout.VertexID(head)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}
