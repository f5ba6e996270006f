// Package command parses REPL input lines and runs them against an address book.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/book"
)

// Kind classifies a Reply so front-ends can style it.
type Kind string

const (
	KindOK    Kind = "ok"
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Reply is the outcome of one input line.
type Reply struct {
	Text string
	Kind Kind
	Quit bool // Set by close/exit
}

// errUsage indicates the wrong number of arguments for a command.
var errUsage = errors.New("command: wrong number of arguments")

// handlerFunc runs one command. A returned error is turned into a user message.
type handlerFunc func(d *Dispatcher, args []string) (Reply, error)

// handler describes one command: its minimum argument count and usage line.
type handler struct {
	minArgs int
	usage   string
	run     handlerFunc
}

var commands = map[string]handler{
	"hello":         {0, "hello", runHello},
	"add":           {2, "add <name> <phone>", runAdd},
	"change":        {3, "change <name> <old phone> <new phone>", runChange},
	"phone":         {1, "phone <name>", runPhone},
	"remove-phone":  {2, "remove-phone <name> <phone>", runRemovePhone},
	"delete":        {1, "delete <name>", runDelete},
	"all":           {0, "all", runAll},
	"add-birthday":  {2, "add-birthday <name> <DD.MM.YYYY>", runAddBirthday},
	"show-birthday": {1, "show-birthday <name>", runShowBirthday},
	"birthdays":     {0, "birthdays", runBirthdays},
	"help":          {0, "help", runHelp},
	"close":         {0, "close", runExit},
	"exit":          {0, "exit", runExit},
}

// Dispatcher routes parsed lines to handlers that query or mutate a book.
type Dispatcher struct {
	book   *book.AddressBook
	now    func() time.Time
	logger *zap.Logger
	help   string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock sets the source of "today" for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger sets the logger for dispatched commands.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithHelp sets the text printed by the help command.
func WithHelp(text string) Option {
	return func(d *Dispatcher) {
		d.help = strings.TrimRight(text, "\n")
	}
}

// New creates a Dispatcher over b.
func New(b *book.AddressBook, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		book:   b,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.help == "" {
		d.help = defaultHelp()
	}
	return d
}

// Parse splits line into a lowercased command name and its arguments.
// Blank input yields an empty command.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Execute runs one input line. It never panics: every failure, including a
// handler panic, becomes an error Reply.
func (d *Dispatcher) Execute(line string) (reply Reply) {
	name, args := Parse(line)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked", zap.String("command", name), zap.Any("panic", r))
			reply = Reply{Text: "Something went wrong, nothing has changed.", Kind: KindError}
		}
	}()

	cmd, ok := commands[name]
	if !ok {
		d.logger.Debug("unknown command", zap.String("command", name))
		return Reply{Text: "Invalid command.", Kind: KindError}
	}

	var err error
	if len(args) < cmd.minArgs {
		err = fmt.Errorf("%w: %s", errUsage, cmd.usage)
	} else {
		reply, err = cmd.run(d, args)
	}
	if err != nil {
		d.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
		return Reply{Text: errorMessage(err, cmd.usage), Kind: KindError}
	}

	d.logger.Debug("command done", zap.String("command", name), zap.Int("args", len(args)))
	return reply
}

func okReply(format string, a ...any) (Reply, error) {
	return Reply{Text: fmt.Sprintf(format, a...), Kind: KindOK}, nil
}

func infoReply(format string, a ...any) (Reply, error) {
	return Reply{Text: fmt.Sprintf(format, a...), Kind: KindInfo}, nil
}

func defaultHelp() string {
	usages := make([]string, 0, len(commands))
	for _, name := range Names() {
		usages = append(usages, "  "+commands[name].usage)
	}
	return "Commands:\n" + strings.Join(usages, "\n")
}
