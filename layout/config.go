package layout

import (
	"context"

	"cdr.dev/slog"
)

// LayeringType controls the vertical orientation of the drawing.
type LayeringType int

const (
	// Down places sources at y=0, with children at increasing y.
	Down LayeringType = iota
	// Up places sources at y=0, with children at decreasing y.
	Up
)

// RankingType selects the rank-assignment algorithm.
type RankingType int

const (
	// NetworkSimplex runs the full rank optimization of spec.md §4.2.
	NetworkSimplex RankingType = iota
	// LongestPathOnly skips optimization and keeps the initial
	// longest-path ranking.
	LongestPathOnly
)

// Config holds the resolved options a Builder produces for Build.
type Config struct {
	MinimumLength     int
	VertexSpacing     int
	DummyVertices     bool
	LayeringType      LayeringType
	RootVerticesOnTop bool
	RankingType       RankingType
	MaxSweeps         int
	Logger            slog.Logger
}

// defaultConfig matches spec.md §6's documented defaults.
func defaultConfig() Config {
	return Config{
		MinimumLength:     1,
		VertexSpacing:     10,
		DummyVertices:     false,
		LayeringType:      Down,
		RootVerticesOnTop: false,
		RankingType:       NetworkSimplex,
		MaxSweeps:         24,
		Logger:            slog.Make(), // no sinks: discards by default
	}
}

// Builder configures a layout run before Build is invoked. The zero
// value is not usable; obtain one via FromEdges, FromVerticesAndEdges,
// or FromGraph.
type Builder struct {
	graph *Graph
	cfg   Config
	err   error
}

func newBuilder(g *Graph) *Builder {
	b := &Builder{graph: g, cfg: defaultConfig()}
	b.cfg.RootVerticesOnTop = b.cfg.LayeringType == Up
	return b
}

// MinimumLength sets the minimum rank difference required across every
// edge. Default 1.
func (b *Builder) MinimumLength(n int) *Builder {
	b.cfg.MinimumLength = n
	return b
}

// VertexSpacing sets the minimum horizontal spacing between vertices on
// the same rank. Default 10.
func (b *Builder) VertexSpacing(n int) *Builder {
	b.cfg.VertexSpacing = n
	return b
}

// DummyVertices controls whether Properize's dummy vertices survive
// into the output layout. Default false.
func (b *Builder) DummyVertices(keep bool) *Builder {
	b.cfg.DummyVertices = keep
	return b
}

// LayeringType sets the vertical orientation. Default Down. Setting
// this also resets RootVerticesOnTop to its direction-dependent
// default (true for Up, false for Down) unless RootVerticesOnTop is
// called afterward.
func (b *Builder) LayeringType(t LayeringType) *Builder {
	b.cfg.LayeringType = t
	b.cfg.RootVerticesOnTop = t == Up
	return b
}

// RootVerticesOnTop forces indegree-0 vertices to rank 0 after Rank.
// Defaults to true when LayeringType is Up, false otherwise.
func (b *Builder) RootVerticesOnTop(on bool) *Builder {
	b.cfg.RootVerticesOnTop = on
	return b
}

// RankingType selects the rank-assignment algorithm. Default
// NetworkSimplex.
func (b *Builder) RankingType(t RankingType) *Builder {
	b.cfg.RankingType = t
	return b
}

// MaxSweeps bounds the Order stage's sweep count. Default 24.
func (b *Builder) MaxSweeps(n int) *Builder {
	b.cfg.MaxSweeps = n
	return b
}

// Logger sets the structured logger used for stage-boundary diagnostics.
// Defaults to a logger with no sinks (discards everything).
func (b *Builder) Logger(l slog.Logger) *Builder {
	b.cfg.Logger = l
	return b
}

// Build runs the full pipeline and returns one layout per weakly
// connected component of the input graph.
func (b *Builder) Build() ([]Layout, error) {
	if b.err != nil {
		return nil, b.err
	}
	return run(context.Background(), b.graph, b.cfg)
}
