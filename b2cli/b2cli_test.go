package b2cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/b2/b2cli"
	"oss.terrastruct.com/b2/b2target"
	"oss.terrastruct.com/b2/lib/xmain"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func testState(args []string, stdin string) (*xmain.State, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	env := xos.NewEnv(nil)
	clog := cmdlog.Log(env, io.Discard)
	return &xmain.State{
		Name:   "b2",
		Stdin:  strings.NewReader(stdin),
		Stdout: nopCloser{stdout},
		Stderr: nopCloser{io.Discard},
		Env:    env,
		Log:    clog,
		Opts:   xmain.NewOpts(env, clog, args),
	}, stdout
}

const mergeGraph = `{
	"elements": {
		"start": {"type": "startEvent"},
		"a": {"type": "task"},
		"b": {"type": "task"},
		"merge": {"type": "exclusiveGateway"},
		"end": {"type": "endEvent"}
	},
	"flows": {
		"f1": {"sourceRef": "start", "targetRef": "a"},
		"f2": {"sourceRef": "start", "targetRef": "b"},
		"f3": {"sourceRef": "a", "targetRef": "merge"},
		"f4": {"sourceRef": "b", "targetRef": "merge"},
		"f5": {"sourceRef": "merge", "targetRef": "end"}
	},
	"lanes": [{"id": "l1", "elements": ["start", "a", "b", "merge", "end"]}]
}`

func TestRunKeepsMergeGatewaysByDefault(t *testing.T) {
	t.Parallel()

	ms, stdout := testState([]string{"-", "-"}, mergeGraph)
	err := b2cli.Run(context.Background(), ms)
	assert.NoError(t, err)

	var res b2target.Result
	assert.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.True(t, res.Success)
	assert.NotNil(t, res.Diagram.Shape("merge"), "merge gateways collapse only when asked")
}

func TestRunXORMergeFlag(t *testing.T) {
	t.Parallel()

	ms, stdout := testState([]string{"--xor-merge", "-", "-"}, mergeGraph)
	err := b2cli.Run(context.Background(), ms)
	assert.NoError(t, err)

	var res b2target.Result
	assert.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Nil(t, res.Diagram.Shape("merge"))
}

func TestRunRejectsUnknownOrientation(t *testing.T) {
	t.Parallel()

	ms, _ := testState([]string{"--orientation", "diagonal", "-", "-"}, mergeGraph)
	err := b2cli.Run(context.Background(), ms)
	assert.ErrorContains(t, err, "invalid --orientation")
}
