package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/command"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/repl"
	"github.com/smileynet/contactbook/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localDir holds project-level overrides: config.yaml and help.txt.
const localDir = ".contactbook"

// Globals are flags shared by every command.
type Globals struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	File     string           `help:"Snapshot file (overrides storage.path)." short:"f" type:"path"`
	Plain    bool             `help:"Force the line-based session even on a TTY."`
	LogLevel string           `help:"Log level: off, debug, info, warn, error." name:"log-level"`
}

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Repl      ReplCmd      `cmd:"" default:"1" help:"Start the interactive assistant (default)."`
	Birthdays BirthdaysCmd `cmd:"" help:"Print upcoming birthdays and exit."`
	List      ListCmd      `cmd:"" help:"Print all contacts and exit."`
	Config    ConfigCmd    `cmd:"" help:"Print an example config file."`
}

// app bundles the dependencies built from config and flags.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.FileStore
	book   *book.AddressBook
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		localDir+"/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves config, applies flag overrides, builds the logger and loads the book.
func setup(g *Globals) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return setupWith(g, cfg)
}

func setupWith(g *Globals, cfg *config.Config) (*app, error) {
	if g.File != "" {
		cfg.Storage.Path = g.File
	}
	if g.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(g.LogLevel)
	}
	if g.Plain {
		cfg.Display.Plain = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	st := store.NewFileStore(cfg.Storage.Path, store.WithLogger(logger))
	b, _, err := st.Load(book.WithWindow(cfg.Birthdays.WindowDays))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: st, book: b}, nil
}

// dispatcher builds the command dispatcher, reading help text from localDir or the binary.
func (a *app) dispatcher(opts ...command.Option) *command.Dispatcher {
	opts = append([]command.Option{command.WithLogger(a.logger)}, opts...)
	if help, err := contactbook.ReadTemplate(localDir, "help.txt"); err == nil {
		opts = append(opts, command.WithHelp(help))
	} else {
		a.logger.Warn("help text unavailable, using built-in list", zap.Error(err))
	}
	return command.New(a.book, opts...)
}

// --- Repl command ---

// ReplCmd runs the interactive assistant and saves the book on the way out.
type ReplCmd struct{}

// saver abstracts snapshot writing for testing.
type saver interface {
	Save(b *book.AddressBook) error
}

// errSave marks a failure to write the snapshot after the session ended.
var errSave = errors.New("saving address book")

// Run executes the repl command.
func (r *ReplCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer func() { _ = a.logger.Sync() }()

	session := repl.NewSession(a.dispatcher(), repl.Options{ForcePlain: a.cfg.Display.Plain})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, session, a.store, a.book, a.logger)
}

// run drives the session, then saves regardless of how the session ended.
func (r *ReplCmd) run(ctx context.Context, session repl.Session, st saver, b *book.AddressBook, logger *zap.Logger) error {
	runErr := session.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if runErr != nil {
		logger.Error("session ended with error", zap.Error(runErr))
	}

	if err := st.Save(b); err != nil {
		return fmt.Errorf("repl: %w: %w", errSave, err)
	}
	if runErr != nil {
		return fmt.Errorf("repl: %w", runErr)
	}
	return nil
}

// --- Birthdays command ---

// BirthdaysCmd prints upcoming birthdays once.
type BirthdaysCmd struct {
	Today string `help:"Count from this date (YYYY-MM-DD) instead of today."`
	Days  int    `help:"Days ahead to look (overrides birthdays.window_days)."`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer func() { _ = a.logger.Sync() }()
	return c.run(os.Stdout, a)
}

func (c *BirthdaysCmd) run(w io.Writer, a *app) error {
	now := time.Now
	if c.Today != "" {
		t, err := time.Parse(time.DateOnly, c.Today)
		if err != nil {
			return fmt.Errorf("birthdays: invalid --today %q: %w", c.Today, err)
		}
		now = func() time.Time { return t }
	}
	if c.Days != 0 {
		if c.Days < 1 || c.Days > config.MaxWindowDays {
			return fmt.Errorf("birthdays: --days must be between 1 and %d, got %d", config.MaxWindowDays, c.Days)
		}
		// Rebuild the book view with the requested window.
		b := book.New(book.WithWindow(c.Days))
		for _, r := range a.book.Records() {
			b.Add(r)
		}
		a = &app{cfg: a.cfg, logger: a.logger, store: a.store, book: b}
	}

	reply := a.dispatcher(command.WithClock(now)).Execute("birthdays")
	_, _ = fmt.Fprintln(w, reply.Text)
	return nil
}

// --- List command ---

// ListCmd prints every contact as a table.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = a.logger.Sync() }()
	return c.run(os.Stdout, a.book)
}

func (c *ListCmd) run(w io.Writer, b *book.AddressBook) error {
	records := b.Records()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "Address book is empty.")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Name", "Phones", "Birthday")
	for _, r := range records {
		bday := "-"
		if !r.Birthday.IsZero() {
			bday = r.Birthday.String()
		}
		t.Row(r.Name.String(), r.PhoneList(", "), bday)
	}
	_, _ = fmt.Fprintln(w, t.Render())
	return nil
}

// --- Config command ---

// ConfigCmd prints the example configuration.
type ConfigCmd struct{}

// Run executes the config command.
func (c *ConfigCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigCmd) run(w io.Writer) error {
	data, err := fs.ReadFile(contactbook.Templates, "config.yaml")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

const (
	exitSuccess = 0
	exitSave    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errSave) {
		return exitSave
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("A contact book that remembers phones and birthdays."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
