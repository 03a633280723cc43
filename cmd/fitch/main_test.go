package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/script"
)

// runCommand executes the CLI with private in/out streams.
func runCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplScriptedSession(t *testing.T) {
	t.Setenv("FITCH_STORE_PATH", filepath.Join(t.TempDir(), "store"))

	transcript := strings.Join([]string{
		"goal (A & B) -> (B & A)",
		"assume A & B",
		"andelim 1",
		"andintro 3 2",
		"close",
		"impintro 1",
		"save swap",
		"quit",
	}, "\n") + "\n"

	out, err := runCommand(t, transcript, "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "goal: A ∧ B → B ∧ A")
	assert.Contains(t, out, "(proof complete)")
	assert.Contains(t, out, "saved as swap")
	assert.Contains(t, out, "Complete ✓")

	out, err = runCommand(t, "load swap\nquit\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded swap")
	assert.Contains(t, out, "Goal:  A ∧ B → B ∧ A")
	assert.Contains(t, out, "Complete ✓")
}

func TestReplReportsErrors(t *testing.T) {
	t.Setenv("FITCH_STORE_PATH", filepath.Join(t.TempDir(), "store"))

	input := "goal A\nbogus 1\nreit 7\nquit\n"
	out, err := runCommand(t, input, "repl")
	require.NoError(t, err)
	assert.Contains(t, out, `error: unknown command "bogus"`)
	assert.Contains(t, out, "error: line 7 does not exist in the proof")
}

func TestReplSeedsFromFile(t *testing.T) {
	t.Setenv("FITCH_STORE_PATH", filepath.Join(t.TempDir(), "store"))

	path := filepath.Join(t.TempDir(), "swap.fitch")
	src := strings.Join([]string{
		"goal (A & B) -> (B & A)",
		"assume A & B",
		"andelim 1",
		"andintro 3 2",
		"close",
		"impintro 1",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out, err := runCommand(t, "show\nquit\n", "repl", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Goal:  A ∧ B → B ∧ A")
	assert.Contains(t, out, "Complete ✓")
}

func TestSeedFromFileStopsAtFirstError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fitch")
	require.NoError(t, os.WriteFile(path, []byte("goal B\npremise A -> B\nreit 5\npremise A\n"), 0o644))

	var errOut bytes.Buffer
	session := script.NewSession()
	require.NoError(t, seedFromFile(&errOut, session, path))

	assert.Contains(t, errOut.String(), path+":3:")
	require.NotNil(t, session.Proof())
	// Replay stopped before the final premise: goal line plus one premise.
	assert.Len(t, session.Proof().Lines(), 2)
}

func TestResolvePatterns(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	top := filepath.Join(dir, "a.fitch")
	deep := filepath.Join(sub, "b.fitch")
	for _, p := range []string{top, deep} {
		require.NoError(t, os.WriteFile(p, []byte("goal A\n"), 0o644))
	}

	files, err := resolvePatterns([]string{filepath.Join(dir, "**", "*.fitch"), top})
	require.NoError(t, err)
	assert.Equal(t, []string{top, deep}, files)
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.fitch")
	bad := filepath.Join(dir, "bad.fitch")
	open := filepath.Join(dir, "open.fitch")
	require.NoError(t, os.WriteFile(good, []byte("goal A\npremise A\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("goal A\nreit 9\n"), 0o644))
	require.NoError(t, os.WriteFile(open, []byte("goal B\npremise A\n"), 0o644))

	var out bytes.Buffer
	failed := checkFiles(&out, []string{good, bad, open})
	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), good+" (1 lines)")
	assert.Contains(t, out.String(), "invalid")
	assert.Contains(t, out.String(), bad+":2: reit 9:")
	assert.Contains(t, out.String(), "incomplete")

	out.Reset()
	assert.Equal(t, 0, checkFiles(&out, []string{good}))
}

func TestCheckCommandExitStatus(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.fitch")
	require.NoError(t, os.WriteFile(good, []byte("goal A\npremise A\n"), 0o644))

	out, err := runCommand(t, "", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "complete")

	bad := filepath.Join(dir, "bad.fitch")
	require.NoError(t, os.WriteFile(bad, []byte("goal A\nreit 9\n"), 0o644))
	_, err = runCommand(t, "", "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 proofs not complete")
}

func TestCheckExamples(t *testing.T) {
	files, err := resolvePatterns([]string{filepath.Join("..", "..", "examples", "*.fitch")})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var out bytes.Buffer
	assert.Equal(t, 0, checkFiles(&out, files), out.String())
}

func TestCheckCommandNoMatches(t *testing.T) {
	_, err := runCommand(t, "", "check", filepath.Join(t.TempDir(), "*.fitch"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestTableCommand(t *testing.T) {
	out, err := runCommand(t, "", "table", "A | ~A")
	require.NoError(t, err)
	assert.Contains(t, out, "A ∨ ¬A")
	assert.Contains(t, out, "tautology: true")

	out, err = runCommand(t, "", "table", "--markdown", "A & B")
	require.NoError(t, err)
	assert.Contains(t, out, "| A | B |")
	assert.Contains(t, out, "tautology: false")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fitch version")
}
