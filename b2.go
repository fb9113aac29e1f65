// Package b2 lays out BPMN process graphs into swimlane diagrams.
//
// Callers hand in a process graph (nodes, sequence flows, lanes,
// pools) and get back pixel geometry: element bounds, orthogonal flow
// waypoints and label boxes. b2 computes coordinates only; rendering
// and document serialization belong to the caller.
package b2

import (
	"context"
	"errors"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/b2/b2exporter"
	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/b2layout"
	"oss.terrastruct.com/b2/b2target"
)

// Layout validates the graph and runs the layout pipeline. Graph
// validation failures are part of the result envelope, not an error:
// the caller always gets a Result it can serialize. The error return
// is reserved for pipeline failures.
func Layout(ctx context.Context, g *b2graph.Graph, opts *b2layout.Opts) (res *b2target.Result, err error) {
	defer xdefer.Errorf(&err, "b2")

	if err := g.Validate(); err != nil {
		var verr *b2graph.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		return &b2target.Result{
			Success: false,
			Errors:  verr.Errors,
		}, nil
	}

	lres, err := b2layout.Layout(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	return &b2target.Result{
		Success: true,
		Diagram: b2exporter.Export(lres),
	}, nil
}
