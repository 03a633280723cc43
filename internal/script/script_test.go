package script

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/parser"
	"github.com/fitchkit/fitch/internal/proof"
)

func mustExec(t *testing.T, s *Session, cmd string) string {
	t.Helper()
	echo, err := s.Exec(cmd)
	require.NoError(t, err, "command %q", cmd)
	return echo
}

func TestSessionConditionalSwap(t *testing.T) {
	s := NewSession()

	assert.Equal(t, "name: conditional swap", mustExec(t, s, "name conditional swap"))
	assert.Equal(t, "goal: A ∧ B → B ∧ A", mustExec(t, s, "goal (A & B) -> (B & A)"))
	assert.Equal(t, "1: A ∧ B  Assumption", mustExec(t, s, `assume A & B "suppose the conjunction"`))
	assert.Equal(t, "2: A  ∧ Elim; 3: B  ∧ Elim", mustExec(t, s, "andelim 1"))
	assert.Equal(t, "4: B ∧ A  ∧ Intro", mustExec(t, s, "andintro 3 2"))
	assert.Equal(t, "block closed, level 0", mustExec(t, s, "close"))
	assert.Equal(t, "5: A ∧ B → B ∧ A  → Intro  (proof complete)", mustExec(t, s, "impintro 1"))

	require.NotNil(t, s.Proof())
	assert.True(t, s.Proof().IsComplete())
	assert.Equal(t, "conditional swap", s.Proof().Name())
	assert.Equal(t, "suppose the conjunction", s.Proof().Lines()[1].Comment)
}

func TestSessionNameBeforeGoal(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "name idempotence")
	mustExec(t, s, "goal A -> A")
	require.NotNil(t, s.Proof())
	assert.Equal(t, "idempotence", s.Proof().Name())
}

func TestSessionRequiresGoal(t *testing.T) {
	s := NewSession()
	_, err := s.Exec("premise A")
	assert.ErrorIs(t, err, ErrNoGoal)

	_, err = s.Exec("close")
	assert.ErrorIs(t, err, ErrNoGoal)
}

func TestSessionGoalDeclaredTwice(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "goal A")
	_, err := s.Exec("goal B")
	assert.ErrorContains(t, err, "goal already declared")
}

func TestSessionUnknownCommand(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "goal A")
	_, err := s.Exec("frobnicate 1")
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)
}

func TestSessionBlankAndCommentLines(t *testing.T) {
	s := NewSession()
	for _, cmd := range []string{"", "   ", "# just a note"} {
		echo, err := s.Exec(cmd)
		assert.NoError(t, err)
		assert.Empty(t, echo)
	}
	assert.Nil(t, s.Proof())
}

func TestSessionParseErrorSurfaces(t *testing.T) {
	s := NewSession()
	_, err := s.Exec("goal A &")
	var perr *parser.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestSessionRuleErrorSurfaces(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "goal B")
	mustExec(t, s, "premise A")

	_, err := s.Exec("reit 9")
	var missing *proof.NoSuchLine
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 9, missing.Line)
}

func TestSessionOrIntroCommaSyntax(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "goal A | B")
	mustExec(t, s, "premise A")
	echo := mustExec(t, s, "orintro B, 1")
	assert.Equal(t, "2: A ∨ B  ∨ Intro  (proof complete)", echo)

	s2 := NewSession()
	mustExec(t, s2, "goal A | B")
	mustExec(t, s2, "premise A")
	_, err := s2.Exec("orintro B 1")
	assert.ErrorContains(t, err, "orintro expects")
}

func TestSessionArgumentCounts(t *testing.T) {
	s := NewSession()
	mustExec(t, s, "goal A")
	mustExec(t, s, "premise A & B")

	_, err := s.Exec("andintro 1")
	assert.ErrorContains(t, err, "expected 2 numeric arguments")

	_, err = s.Exec("reit one")
	assert.ErrorContains(t, err, `bad number "one"`)

	_, err = s.Exec("orelim 1")
	assert.ErrorContains(t, err, "at least 2")

	_, err = s.Exec("close now")
	assert.ErrorContains(t, err, "close takes no arguments")
}

func TestSplitComment(t *testing.T) {
	tests := []struct {
		input   string
		cmd     string
		comment string
	}{
		{"andintro 1 2 # a note", "andintro 1 2", ""},
		{`assume A "so that"`, "assume A", "so that"},
		{`premise A "a # b"`, "premise A", "a # b"},
		{"# only a comment", "", ""},
		{"   close   ", "close", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		cmd, comment := splitComment(tt.input)
		assert.Equal(t, tt.cmd, cmd, "input %q", tt.input)
		assert.Equal(t, tt.comment, comment, "input %q", tt.input)
	}
}

func TestRunReaderComplete(t *testing.T) {
	src := `name swap
goal (A & B) -> (B & A)
assume A & B
andelim 1
andintro 3 2
close
impintro 1
`
	result := RunReader(strings.NewReader(src), "swap.fitch")
	require.Nil(t, result.Err)
	assert.Equal(t, "swap.fitch", result.File)
	assert.Equal(t, "swap", result.Name)
	assert.True(t, result.Complete)
	assert.Equal(t, 5, result.Lines)
	assert.Equal(t, "complete", result.Verdict())
}

func TestRunReaderIncomplete(t *testing.T) {
	src := "goal B\npremise A -> B\npremise A\n"
	result := RunReader(strings.NewReader(src), "mp.fitch")
	require.Nil(t, result.Err)
	assert.False(t, result.Complete)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, "incomplete", result.Verdict())
}

func TestRunReaderEmptyInput(t *testing.T) {
	result := RunReader(strings.NewReader(""), "empty.fitch")
	require.Nil(t, result.Err)
	assert.Empty(t, result.Name)
	assert.Zero(t, result.Lines)
	assert.Equal(t, "incomplete", result.Verdict())
}

func TestRunReaderStopsAtFirstError(t *testing.T) {
	src := "goal B\npremise A -> B\nreit 5\npremise A\n"
	result := RunReader(strings.NewReader(src), "bad.fitch")
	require.NotNil(t, result.Err)
	assert.Equal(t, "bad.fitch", result.Err.File)
	assert.Equal(t, 3, result.Err.Line)
	assert.Equal(t, "reit 5", result.Err.Cmd)
	assert.Equal(t, "invalid", result.Verdict())

	var missing *proof.NoSuchLine
	assert.True(t, errors.As(result.Err, &missing))

	// The trailing premise never ran.
	assert.Equal(t, 1, result.Lines)
	assert.Contains(t, result.Err.Error(), "bad.fitch:3: reit 5:")
}

func TestRunFileTestdata(t *testing.T) {
	tests := []struct {
		file    string
		verdict string
		lines   int
	}{
		{"conditional_swap.fitch", "complete", 5},
		{"case_analysis.fitch", "complete", 8},
		{"incomplete.fitch", "incomplete", 2},
		{"bad_scope.fitch", "invalid", 1},
	}
	for _, tt := range tests {
		result := RunFile(filepath.Join("testdata", tt.file))
		assert.Equal(t, tt.verdict, result.Verdict(), "file %s", tt.file)
		assert.Equal(t, tt.lines, result.Lines, "file %s", tt.file)
	}
}

func TestRunFileMissing(t *testing.T) {
	result := RunFile(filepath.Join("testdata", "does_not_exist.fitch"))
	require.NotNil(t, result.Err)
	assert.Equal(t, "invalid", result.Verdict())
}
