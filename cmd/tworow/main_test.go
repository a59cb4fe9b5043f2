package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestReplayInlineAccepted(t *testing.T) {
	out, err := run(t, "replay", "--pairs", "t0-b0 t1-b1; t2-b2 t3-b3")
	require.NoError(t, err)
	assert.Contains(t, out, "Level: Level 2")
	assert.Contains(t, out, "#1: top-0->bottom-0 , top-1->bottom-1 [OK]")
	assert.Contains(t, out, "All checks passed.")
}

func TestReplayRejected(t *testing.T) {
	out, err := run(t, "replay", "--pairs", "t0-b0 t1-b0; t1-b1 t0-b1")
	require.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "Stopped at step #2")
}

func TestReplayFileJSON(t *testing.T) {
	path := writeFile(t, "seq.json", `{"level":"Level 1","pairs":[[["top-0","bottom-0"],["top-1","bottom-1"]]]}`)
	out, err := run(t, "replay", path, "--json")
	require.NoError(t, err)

	var rep struct {
		Level string `json:"level"`
		Steps []struct {
			OK bool `json:"ok"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "Level 1", rep.Level)
	require.Len(t, rep.Steps, 1)
	assert.True(t, rep.Steps[0].OK)
}

func TestReplayLevelFlagOverrides(t *testing.T) {
	path := writeFile(t, "seq.yaml", "level: Level 1\npairs:\n  - [[top-0, bottom-0], [top-1, bottom-1]]\n")
	out, err := run(t, "replay", path, "--level", "Level 3")
	require.NoError(t, err)
	assert.Contains(t, out, "Level: Level 3")
}

func TestReplayErrors(t *testing.T) {
	_, err := run(t, "replay")
	assert.Error(t, err)

	_, err = run(t, "replay", "--pairs", "t0-b0 t1-b1", "--level", "Level 99")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)

	_, err = run(t, "replay", "--pairs", "t0-b0 t1-b1", "--save", "x")
	assert.ErrorContains(t, err, "db_path")
}

func TestLevels(t *testing.T) {
	out, err := run(t, "levels")
	require.NoError(t, err)
	assert.Contains(t, out, "* Level 2")
	assert.Contains(t, out, "Level 5.NP+G6")
}

func TestBoardRoundTrip(t *testing.T) {
	db := t.TempDir()
	cfg := writeFile(t, "tworow.yaml", "db_path: "+db+"\nlog_level: error\n")

	_, err := run(t, "-c", cfg, "replay", "--pairs", "t0-b0 t1-b1", "--save", "first")
	require.NoError(t, err)

	out, err := run(t, "-c", cfg, "board", "list")
	require.NoError(t, err)
	assert.Equal(t, "first\n", out)

	out, err = run(t, "-c", cfg, "board", "show", "first")
	require.NoError(t, err)
	assert.Contains(t, out, `"top": "top-0"`)

	_, err = run(t, "-c", cfg, "board", "delete", "first")
	require.NoError(t, err)
	_, err = run(t, "-c", cfg, "board", "show", "first")
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	cfg := writeFile(t, "bad.yaml", "level: Level 99\n")
	_, err := run(t, "-c", cfg, "levels")
	assert.Error(t, err)
}
