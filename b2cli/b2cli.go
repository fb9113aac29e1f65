// Package b2cli implements the b2 command: read a BPMN process graph
// as JSON, lay it out, write the geometry as JSON.
package b2cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/b2"
	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/b2layout"
	"oss.terrastruct.com/b2/lib/go2"
	"oss.terrastruct.com/b2/lib/log"
	"oss.terrastruct.com/b2/lib/version"
	"oss.terrastruct.com/b2/lib/xmain"
)

func Run(ctx context.Context, ms *xmain.State) (err error) {
	orientationFlag := ms.Opts.String("B2_ORIENTATION", "orientation", "o", string(b2layout.OrientationHorizontal), "stack lanes top to bottom with horizontal flow, or left to right with vertical flow (horizontal, vertical)")
	xorMergeFlag, err := ms.Opts.Bool("B2_XOR_MERGE", "xor-merge", "", false, "collapse exclusive gateways that only merge flows")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	ctx = log.With(ctx, slog.Make(sloghuman.Sink(ms.Stderr)).Named("b2"))
	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	args := ms.Opts.Flags.Args()
	if len(args) > 0 {
		switch args[0] {
		case "validate":
			return validateCmd(ms, args[1:])
		case "version":
			if len(args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if len(args) == 0 {
		if versionFlag != nil && *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(args) > 2 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath := args[0]
	outputPath := "-"
	if len(args) == 2 {
		outputPath = args[1]
	}

	orientation := b2layout.Orientation(*orientationFlag)
	if !go2.Contains([]b2layout.Orientation{b2layout.OrientationHorizontal, b2layout.OrientationVertical}, orientation) {
		return xmain.UsageErrorf("invalid --orientation %q: expected horizontal or vertical", *orientationFlag)
	}

	g, err := readGraph(ms, inputPath)
	if err != nil {
		return err
	}

	res, err := b2.Layout(ctx, g, &b2layout.Opts{
		Orientation:      orientation,
		XORMergeGateways: *xorMergeFlag,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	err = ms.WritePath(outputPath, out)
	if err != nil {
		return err
	}

	if !res.Success {
		return xmain.ExitErrorf(1, "graph failed validation: see %s", outputPath)
	}
	return nil
}

func validateCmd(ms *xmain.State, args []string) error {
	if len(args) != 1 {
		return xmain.UsageErrorf("validate expects exactly one input path")
	}
	g, err := readGraph(ms, args[0])
	if err != nil {
		return err
	}
	err = g.Validate()
	if err != nil {
		var verr *b2graph.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Errors {
				ms.Log.Error.Print(msg)
			}
			return xmain.ExitErrorf(1, "%d validation errors", len(verr.Errors))
		}
		return err
	}
	ms.Log.Success.Printf("%s is valid", args[0])
	return nil
}

func readGraph(ms *xmain.State, fp string) (*b2graph.Graph, error) {
	b, err := ms.ReadPath(fp)
	if err != nil {
		return nil, err
	}
	var g b2graph.Graph
	err = json.Unmarshal(b, &g)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fp, err)
	}
	return &g, nil
}
