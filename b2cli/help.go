package b2cli

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/b2/lib/version"
	"oss.terrastruct.com/b2/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--orientation=horizontal] graph.json [layout.json]
  %[1]s validate graph.json

%[1]s lays out the BPMN process graph in graph.json and writes the
computed geometry (element bounds, flow waypoints, label boxes) to
layout.json as JSON.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s validate graph.json - Validates graph.json without laying it out
  %[1]s version - Displays the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}
