// Package script interprets the line-oriented proof command language used
// by the REPL, the checker, and the TUI. One command per line; # starts a
// comment; a trailing quoted string becomes the proof line's comment.
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitchkit/fitch/internal/parser"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/render"
)

// ErrNoGoal is returned for any rule command issued before a goal exists.
var ErrNoGoal = errors.New("no goal declared")

// Session interprets commands against a single proof. The proof comes into
// existence with the goal command; name may precede it.
type Session struct {
	proof       *proof.Proof
	pendingName string
}

// NewSession returns a session with no goal yet.
func NewSession() *Session {
	return &Session{}
}

// Adopt wraps an existing proof, such as one restored from a snapshot.
func Adopt(p *proof.Proof) *Session {
	return &Session{proof: p}
}

// Proof exposes the underlying proof, nil before the goal command.
func (s *Session) Proof() *proof.Proof {
	return s.proof
}

// Exec runs one command line and returns a short echo for the REPL. Blank
// lines and pure comments produce an empty echo and no error.
func (s *Session) Exec(input string) (string, error) {
	cmd, comment := splitComment(input)
	if cmd == "" {
		return "", nil
	}
	verb, rest := splitVerb(cmd)

	switch verb {
	case "name":
		if s.proof != nil {
			s.proof.SetName(rest)
		} else {
			s.pendingName = rest
		}
		return fmt.Sprintf("name: %s", rest), nil
	case "goal":
		if s.proof != nil {
			return "", errors.New("goal already declared")
		}
		goal, err := parser.Parse(rest)
		if err != nil {
			return "", err
		}
		s.proof = proof.New(goal)
		if s.pendingName != "" {
			s.proof.SetName(s.pendingName)
		}
		return fmt.Sprintf("goal: %s", goal), nil
	}

	if s.proof == nil {
		return "", ErrNoGoal
	}

	switch verb {
	case "premise":
		stmt, err := parser.Parse(rest)
		if err != nil {
			return "", err
		}
		index, err := s.proof.AddPremise(stmt, comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "assume":
		stmt, err := parser.Parse(rest)
		if err != nil {
			return "", err
		}
		index, err := s.proof.OpenBlock(stmt, comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "close":
		if rest != "" {
			return "", errors.New("close takes no arguments")
		}
		if err := s.proof.CloseBlock(); err != nil {
			return "", err
		}
		return fmt.Sprintf("block closed, level %d", s.proof.CurrentLevel()), nil
	case "reit":
		args, err := intArgs(rest, 1)
		if err != nil {
			return "", err
		}
		index, err := s.proof.Reiterate(args[0], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "andintro":
		args, err := intArgs(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.AndIntro(args[0], args[1], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "andelim":
		args, err := intArgs(rest, 1)
		if err != nil {
			return "", err
		}
		indices, err := s.proof.AndElim(args[0], comment)
		if err != nil {
			return "", err
		}
		return s.echoLines(indices), nil
	case "orintro":
		cut := strings.LastIndex(rest, ",")
		if cut < 0 {
			return "", errors.New("orintro expects: orintro <formula>, <line>")
		}
		stmt, err := parser.Parse(strings.TrimSpace(rest[:cut]))
		if err != nil {
			return "", err
		}
		args, err := intArgs(rest[cut+1:], 1)
		if err != nil {
			return "", err
		}
		index, err := s.proof.OrIntro(stmt, args[0], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "orelim":
		args, err := intArgsAtLeast(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.OrElim(args[0], args[1:], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "impintro":
		args, err := intArgs(rest, 1)
		if err != nil {
			return "", err
		}
		index, err := s.proof.ImpliesIntro(args[0], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "impelim":
		args, err := intArgs(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.ImpliesElim(args[0], args[1], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "notintro":
		args, err := intArgs(rest, 1)
		if err != nil {
			return "", err
		}
		index, err := s.proof.NotIntro(args[0], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "notelim":
		args, err := intArgs(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.NotElim(args[0], args[1], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "explosion":
		stmt, err := parser.Parse(rest)
		if err != nil {
			return "", err
		}
		index, err := s.proof.Explosion(stmt, comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "iffintro":
		args, err := intArgs(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.IffIntro(args[0], args[1], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	case "iffelim":
		args, err := intArgs(rest, 2)
		if err != nil {
			return "", err
		}
		index, err := s.proof.IffElim(args[0], args[1], comment)
		if err != nil {
			return "", err
		}
		return s.echoLine(index), nil
	default:
		return "", fmt.Errorf("unknown command %q", verb)
	}
}

func (s *Session) echoLine(index int) string {
	return s.echoLines([]int{index})
}

func (s *Session) echoLines(indices []int) string {
	lines := s.proof.Lines()
	parts := make([]string, len(indices))
	for i, index := range indices {
		line := lines[index]
		parts[i] = fmt.Sprintf("%d: %s  %s", index, line.Statement, render.RuleLabel(line.Rule))
	}
	echo := strings.Join(parts, "; ")
	if s.proof.IsComplete() {
		echo += "  (proof complete)"
	}
	return echo
}

// splitComment strips an unquoted # comment and extracts a trailing
// quoted string as the proof line comment.
func splitComment(line string) (string, string) {
	inQuote := false
scan:
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				line = line[:i]
				break scan
			}
		}
	}
	line = strings.TrimSpace(line)
	if strings.HasSuffix(line, `"`) && len(line) > 1 {
		if open := strings.LastIndex(line[:len(line)-1], `"`); open >= 0 {
			comment := line[open+1 : len(line)-1]
			return strings.TrimSpace(line[:open]), comment
		}
	}
	return line, ""
}

func splitVerb(cmd string) (string, string) {
	verb, rest, _ := strings.Cut(cmd, " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}

func intArgs(rest string, want int) ([]int, error) {
	fields := strings.Fields(rest)
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d numeric arguments, got %d", want, len(fields))
	}
	return parseInts(fields)
}

func intArgsAtLeast(rest string, want int) ([]int, error) {
	fields := strings.Fields(rest)
	if len(fields) < want {
		return nil, fmt.Errorf("expected at least %d numeric arguments, got %d", want, len(fields))
	}
	return parseInts(fields)
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", field)
		}
		out[i] = n
	}
	return out, nil
}
