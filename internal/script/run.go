package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Error reports the command that stopped a script, with its source position.
type Error struct {
	File string
	Line int
	Cmd  string
	Err  error
}

func (e *Error) Error() string {
	if e.Cmd == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Cmd, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result summarizes one script run. Lines counts derived proof lines, the
// goal row excluded. Err is nil when every command applied cleanly.
type Result struct {
	File     string
	Name     string
	Complete bool
	Lines    int
	Err      *Error
}

// Verdict classifies the run for checker output.
func (r Result) Verdict() string {
	switch {
	case r.Err != nil:
		return "invalid"
	case r.Complete:
		return "complete"
	default:
		return "incomplete"
	}
}

// RunFile executes the script at path against a fresh session.
func RunFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{File: path, Err: &Error{File: path, Err: err}}
	}
	defer f.Close()
	return RunReader(f, path)
}

// RunReader executes one command per line until EOF or the first failing
// command. The file name is only used in error reporting.
func RunReader(r io.Reader, file string) Result {
	session := NewSession()
	result := Result{File: file}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd := scanner.Text()
		if _, err := session.Exec(cmd); err != nil {
			result.Err = &Error{File: file, Line: lineNo, Cmd: strings.TrimSpace(cmd), Err: err}
			break
		}
	}
	if result.Err == nil {
		if err := scanner.Err(); err != nil {
			result.Err = &Error{File: file, Line: lineNo, Err: err}
		}
	}

	if p := session.Proof(); p != nil {
		result.Name = p.Name()
		result.Complete = p.IsComplete()
		result.Lines = len(p.Lines()) - 1
	}
	return result
}
