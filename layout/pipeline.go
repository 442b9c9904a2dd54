package layout

import (
	"context"
	"fmt"

	"cdr.dev/slog"
	"go.uber.org/multierr"
	"oss.terrastruct.com/util-go/xdefer"
)

// run executes the full pipeline — Preprocess, Rank, Properize, Order,
// Position, Finalize — independently over each weakly connected
// component of g, returning one Layout per component in an unspecified
// order. Grounded on godagre's layout.go Layout() for the stage
// sequencing, generalized to run per-component (spec.md §6) and to
// recover internal invariant panics into reported errors rather than
// crashing the caller.
func run(ctx context.Context, g *Graph, cfg Config) (layouts []Layout, err error) {
	if g.VertexCount() == 0 {
		return nil, nil
	}

	components := g.WeaklyConnectedComponents()
	cfg.Logger.Info(ctx, "starting layout", slog.F("components", len(components)))

	for i, comp := range components {
		lay, cerr := runComponent(ctx, comp, cfg, i)
		if cerr != nil {
			err = multierr.Append(err, cerr)
			continue
		}
		layouts = append(layouts, lay)
	}
	if err != nil {
		return nil, err
	}
	return layouts, nil
}

func runComponent(ctx context.Context, g *Graph, cfg Config, idx int) (lay Layout, err error) {
	defer xdefer.Errorf(&err, "component %d", idx)
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok {
				err = &Error{Kind: ErrKindInvariant, Stage: ie.Stage, Msg: ie.Msg}
				return
			}
			panic(r)
		}
	}()

	log := cfg.Logger.With(slog.F("component", idx))

	log.Debug(ctx, "preprocess", slog.F("vertices", g.VertexCount()), slog.F("edges", g.EdgeCount()))
	pre := preprocess(g)

	log.Debug(ctx, "rank", slog.F("ranking_type", fmt.Sprint(cfg.RankingType)))
	rank(g, cfg.MinimumLength, cfg.RankingType)
	if cfg.RootVerticesOnTop {
		forceRootVerticesToTop(g)
	}

	origEdges := append([]*Edge{}, g.edges...)

	log.Debug(ctx, "properize")
	properize(g, cfg.VertexSpacing)

	log.Debug(ctx, "order")
	order(g, cfg)

	log.Debug(ctx, "position")
	position(g, cfg)

	selfLoops := pre.restore(g)
	origEdges = append(origEdges, selfLoops...)

	lay = finalize(g, cfg, origEdges)
	log.Debug(ctx, "finalize", slog.F("width", lay.Width), slog.F("height", lay.Height))
	return lay, nil
}
