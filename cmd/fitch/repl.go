package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/config"
	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/render"
	"github.com/fitchkit/fitch/internal/script"
	"github.com/fitchkit/fitch/internal/store"
	"github.com/fitchkit/fitch/internal/truthtab"
)

func replCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Interactive proof session",
		Long: `Start an interactive proof session. With a file argument the script is
executed first and the session continues from its final state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			session := script.NewSession()
			if len(args) == 1 {
				if err := seedFromFile(cmd.ErrOrStderr(), session, args[0]); err != nil {
					return err
				}
			}
			r := &repl{cfg: cfg, session: session, out: cmd.OutOrStdout()}
			return r.run(cmd.InOrStdin())
		},
	}
}

// seedFromFile replays a script into the session. The first failing line is
// reported and replay stops there, leaving the session at the last good
// state for interactive repair.
func seedFromFile(errOut io.Writer, session *script.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if _, err := session.Exec(scanner.Text()); err != nil {
			fmt.Fprintf(errOut, "%s:%d: %v\n", path, lineNo, err)
			return nil
		}
	}
	return scanner.Err()
}

const replHelp = `Proof commands
  name <text>             goal <formula>          premise <formula>
  assume <formula>        close                   reit <line>
  andintro <l1> <l2>      andelim <line>          orintro <formula>, <line>
  orelim <line> <b...>    impintro <block>        impelim <l1> <l2>
  notintro <block>        notelim <l1> <l2>       explosion <formula>
  iffintro <b1> <b2>      iffelim <l1> <l2>

Formulas use & | -> <-> ~ or the words and, or, implies, iff, not.
A trailing "quoted string" becomes the line's comment.

Session commands
  show                    print the proof so far
  table                   truth table of premises entailing the goal
  save [id]               persist the proof (prints the id)
  load <id>               replace the session with a stored proof
  help                    this text
  quit                    leave the session
`

// repl drives one interactive session over a line-oriented reader.
type repl struct {
	cfg     *config.Config
	session *script.Session
	out     io.Writer
	store   *store.Store
}

func (r *repl) run(in io.Reader) error {
	defer func() {
		if r.store != nil {
			r.store.Close()
		}
	}()

	fmt.Fprintln(r.out, "fitch - natural deduction proof assistant")
	fmt.Fprintln(r.out, "Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "fitch> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(strings.Fields(input)[0]) {
		case "help":
			fmt.Fprint(r.out, replHelp)
		case "show":
			r.show()
		case "table":
			r.table()
		case "save":
			r.save(input)
		case "load":
			r.load(input)
		case "exit", "quit":
			return nil
		default:
			r.exec(input)
		}
	}
}

func (r *repl) exec(input string) {
	echo, err := r.session.Exec(input)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	if echo != "" {
		fmt.Fprintln(r.out, echo)
	}
	if p := r.session.Proof(); p != nil && p.IsComplete() {
		fmt.Fprint(r.out, render.Text(p, r.textOptions()))
	}
}

func (r *repl) textOptions() render.TextOptions {
	return render.TextOptions{Styled: r.cfg.Render.Color}
}

func (r *repl) show() {
	p := r.session.Proof()
	if p == nil {
		fmt.Fprintln(r.out, "no goal declared")
		return
	}
	fmt.Fprint(r.out, render.Text(p, r.textOptions()))
}

func (r *repl) table() {
	p := r.session.Proof()
	if p == nil {
		fmt.Fprintln(r.out, "no goal declared")
		return
	}
	t, err := truthtab.ForArgument(p.Premises(), p.Goal())
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprint(r.out, render.TableText(t))
	fmt.Fprintf(r.out, "valid: %v\n", t.Valid())
}

func (r *repl) openStore() (*store.Store, error) {
	if r.store != nil {
		return r.store, nil
	}
	st, err := store.Open(store.Config{
		Path:       r.cfg.Store.Path,
		InMemory:   r.cfg.Store.InMemory,
		SyncWrites: r.cfg.Store.SyncWrites,
	})
	if err != nil {
		return nil, err
	}
	r.store = st
	return st, nil
}

func (r *repl) save(input string) {
	p := r.session.Proof()
	if p == nil {
		fmt.Fprintln(r.out, "no goal declared")
		return
	}
	id := store.NewID()
	if fields := strings.Fields(input); len(fields) > 1 {
		id = fields[1]
	}

	st, err := r.openStore()
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	snap, err := p.Snapshot()
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	if err := st.Save(context.Background(), id, snap); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "saved as %s\n", id)
}

func (r *repl) load(input string) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		fmt.Fprintln(r.out, "usage: load <id>")
		return
	}

	st, err := r.openStore()
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	snap, err := st.Load(context.Background(), fields[1])
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(r.out, "no proof with id %s\n", fields[1])
		return
	}
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	p, err := proof.FromSnapshot(snap)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	r.session = script.Adopt(p)
	fmt.Fprintf(r.out, "loaded %s\n", fields[1])
	r.show()
}
