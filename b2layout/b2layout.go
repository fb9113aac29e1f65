// Package b2layout computes a collision-free swimlane layout for a
// BPMN process graph: discrete (lane, layer, row) positions, pixel
// bounds for nodes, lanes and pools, orthogonal waypoints for every
// flow, and label boxes.
//
// The pipeline is pure and synchronous. Every stage is a function of
// the graph, the sizing configuration and the maps produced by the
// stages before it; nothing is retained across calls.
package b2layout

import (
	"context"
	"fmt"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/label"
	"oss.terrastruct.com/b2/lib/log"
)

type Opts struct {
	// OrientationHorizontal (default): lanes stack top to bottom,
	// flow runs left to right. OrientationVertical is the 90° rotation.
	Orientation Orientation

	// Collapse exclusive gateways that only merge, so their incoming
	// flows converge directly on the downstream node.
	XORMergeGateways bool

	Sizing *Sizing
}

// Position is the discrete coordinate triple of a node. Layer counts
// along the process-flow axis, row disambiguates nodes sharing a lane
// and layer. At most one node occupies a triple.
type Position struct {
	Lane  string
	Layer int
	Row   int
}

// FlowInfo is everything the pipeline derives per flow. Sides are
// direction tokens, not compass sides; the back-flow and message-flow
// routers resolve them late, forward routing resolves them eagerly.
type FlowInfo struct {
	SrcSide Direction
	DstSide Direction

	IsBackFlow    bool
	IsMessageFlow bool

	Route    geo.Route
	LabelBox *geo.Box
}

type NodeLabel struct {
	Position label.Position
	Box      *geo.Box
}

// Result carries the full geometry of one layout run. The caller owns
// it exclusively. Maps may lack entries for degenerate inputs;
// consumers tolerate missing ids.
type Result struct {
	Graph *b2graph.Graph

	Positions map[string]*Position
	NodeBoxes map[string]*geo.Box
	LaneBoxes map[string]*geo.Box
	PoolBoxes map[string]*geo.Box

	Flows map[string]*FlowInfo

	NodeLabels map[string]*NodeLabel

	// layout imperfections that did not stop the run
	Warnings []string
}

// Layout runs the whole pipeline. The input graph is not mutated; the
// returned Result references a preprocessed copy. Structural problems
// must be caught by b2graph.Validate before calling. Layout never
// returns an error for layout imperfections, only warnings.
func Layout(ctx context.Context, g *b2graph.Graph, opts *Opts) (res *Result, err error) {
	defer xdefer.Errorf(&err, "layout failed")

	if opts == nil {
		opts = &Opts{}
	}
	if opts.Orientation == "" {
		opts.Orientation = OrientationHorizontal
	}
	sz := opts.Sizing
	if sz == nil {
		sz = DefaultSizing()
	}

	g = g.Copy()
	if opts.XORMergeGateways {
		collapseXORMerges(ctx, g)
	}
	backEdges := detectBackEdges(g)
	log.Debug(ctx, "preprocessed graph",
		slog.F("nodes", len(g.Nodes)),
		slog.F("flows", len(g.Flows)),
		slog.F("backEdges", len(backEdges)),
	)

	a := newAssigner(g, backEdges)
	a.run(ctx)

	l := &layout{
		g:         g,
		sz:        sz,
		positions: a.positions,
		flows:     a.flowInfos,

		nodeBoxes: make(map[string]*geo.Box),
		laneBoxes: make(map[string]*geo.Box),
		poolBoxes: make(map[string]*geo.Box),
		warnings:  a.warnings,
	}
	l.synthesizeCoordinates()
	l.routeFlows(ctx)
	l.placeLabels()

	if opts.Orientation == OrientationVertical {
		l.transpose()
	}

	for _, w := range l.warnings {
		log.Warn(ctx, w)
	}

	return &Result{
		Graph:      g,
		Positions:  l.positions,
		NodeBoxes:  l.nodeBoxes,
		LaneBoxes:  l.laneBoxes,
		PoolBoxes:  l.poolBoxes,
		Flows:      l.flows,
		NodeLabels: l.nodeLabels,
		Warnings:   l.warnings,
	}, nil
}

// layout is the per-run state threaded through the pixel stages.
type layout struct {
	g  *b2graph.Graph
	sz *Sizing

	positions map[string]*Position
	flows     map[string]*FlowInfo

	nodeBoxes map[string]*geo.Box
	laneBoxes map[string]*geo.Box
	poolBoxes map[string]*geo.Box

	// rows per leaf lane after normalization
	maxRows  map[string]int
	maxLayer int

	nodeLabels map[string]*NodeLabel

	warnings []string
}

func (l *layout) warnf(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

// transpose flips the finished geometry into the vertical
// orientation: every point swaps axes, every box swaps extents, every
// side token keeps its meaning because tokens are axis-relative.
func (l *layout) transpose() {
	for _, b := range l.nodeBoxes {
		b.Transpose()
	}
	for _, b := range l.laneBoxes {
		b.Transpose()
	}
	for _, b := range l.poolBoxes {
		b.Transpose()
	}
	for _, fi := range l.flows {
		fi.Route.Transpose()
		fi.LabelBox.Transpose()
	}
	for _, nl := range l.nodeLabels {
		nl.Box.Transpose()
	}
}

func (l *layout) classOf(n *b2graph.Node) nodeClass {
	if n.Type.IsGateway() {
		return classGateway
	}
	if n.Type.IsEvent() {
		return classEvent
	}
	return classActivity
}
