// Package repl runs the interactive read-dispatch-print loop, either as plain
// text lines or as a Bubble Tea terminal UI.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactbook/internal/command"
)

// Banner and Prompt are shown by the plain session.
const (
	Banner   = "Welcome to the assistant bot!"
	Prompt   = "Enter a command: "
	Farewell = "Good bye!"
)

// Executor runs one input line.
type Executor interface {
	Execute(line string) command.Reply
}

// Session runs the loop until a quit reply, end of input, or ctx is done.
type Session interface {
	Run(ctx context.Context) error
}

// Options configures session creation.
type Options struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the plain session even on a TTY.
}

// NewSession returns a TUI session when both input and output are terminals,
// or a plain text session otherwise. ForcePlain overrides TTY detection.
func NewSession(exec Executor, opts Options) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return &PlainSession{exec: exec, in: opts.In, out: opts.Out}
	}
	return &TUISession{exec: exec, in: opts.In, out: opts.Out}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession reads lines from in and writes replies to out.
type PlainSession struct {
	exec Executor
	in   io.Reader
	out  io.Writer
}

// NewPlainSession creates a PlainSession.
func NewPlainSession(exec Executor, in io.Reader, out io.Writer) *PlainSession {
	return &PlainSession{exec: exec, in: in, out: out}
}

// Run prompts for lines until a quit reply or end of input. Cancelling ctx
// ends the loop while a read is pending.
func (s *PlainSession) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_, _ = fmt.Fprintln(s.out, Banner)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		_, _ = fmt.Fprint(s.out, Prompt)
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				// End of input behaves like exit.
				_, _ = fmt.Fprintln(s.out)
				_, _ = fmt.Fprintln(s.out, Farewell)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			reply := s.exec.Execute(line)
			_, _ = fmt.Fprintln(s.out, reply.Text)
			if reply.Quit {
				return nil
			}
		}
	}
}

// TUISession runs the loop as a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	exec Executor
	in   io.Reader
	out  io.Writer
}

// Run starts the Bubble Tea program and blocks until it exits.
func (s *TUISession) Run(ctx context.Context) error {
	p := tea.NewProgram(NewModel(s.exec),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainSession{exec: s.exec, in: s.in, out: s.out}
		return plain.Run(ctx)
	}
	return nil
}
