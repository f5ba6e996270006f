package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/contact"
)

// Names returns the command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// errorMessage maps an error to the user-facing message for it.
func errorMessage(err error, usage string) string {
	switch {
	case errors.Is(err, errUsage):
		return "Value error! Usage: " + usage
	case errors.Is(err, book.ErrNotFound):
		return "No such user in address book!"
	case errors.Is(err, contact.ErrInvalidBirthday):
		return "Invalid date format. Use DD.MM.YYYY"
	case errors.Is(err, contact.ErrEmptyName):
		return "Name cannot be empty."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func runHello(*Dispatcher, []string) (Reply, error) {
	return infoReply("How can I help you?")
}

// runAdd creates the contact when missing, otherwise appends the phone.
// An invalid or duplicate phone changes nothing.
func runAdd(d *Dispatcher, args []string) (Reply, error) {
	name, phone := args[0], args[1]
	if _, err := contact.ParsePhone(phone); err != nil {
		return infoReply("Nothing has changed!")
	}

	r, err := d.book.Find(name)
	if errors.Is(err, book.ErrNotFound) {
		r, err := contact.NewRecord(name)
		if err != nil {
			return Reply{}, err
		}
		if err := r.AddPhone(phone); err != nil {
			return Reply{}, err
		}
		d.book.Add(r)
		return okReply("Contact added.")
	}
	if err != nil {
		return Reply{}, err
	}

	if err := r.AddPhone(phone); err != nil {
		if errors.Is(err, contact.ErrDuplicatePhone) {
			return infoReply("Nothing has changed!")
		}
		return Reply{}, err
	}
	return okReply("Contact updated.")
}

func runChange(d *Dispatcher, args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, err
	}
	err = r.EditPhone(args[1], args[2])
	switch {
	case err == nil:
		return okReply("Number has changed.")
	case errors.Is(err, contact.ErrPhoneNotFound):
		return Reply{Text: "This user has not such number. Nothing to change!", Kind: KindError}, nil
	case errors.Is(err, contact.ErrInvalidPhone):
		return Reply{Text: "Invalid number to change phone!", Kind: KindError}, nil
	case errors.Is(err, contact.ErrDuplicatePhone):
		return infoReply("This user already has that number. Nothing to change!")
	default:
		return Reply{}, err
	}
}

func runPhone(d *Dispatcher, args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if len(r.Phones) == 0 {
		return infoReply("No phones on record.")
	}
	return infoReply("%s", r.PhoneList(", "))
}

func runRemovePhone(d *Dispatcher, args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		if errors.Is(err, contact.ErrPhoneNotFound) {
			return Reply{Text: "Phone not found. Nothing to delete!", Kind: KindError}, nil
		}
		return Reply{}, err
	}
	return okReply("Removed successfully.")
}

func runDelete(d *Dispatcher, args []string) (Reply, error) {
	if err := d.book.Delete(args[0]); err != nil {
		return Reply{}, err
	}
	return okReply("Contact deleted.")
}

func runAll(d *Dispatcher, _ []string) (Reply, error) {
	records := d.book.Records()
	if len(records) == 0 {
		return infoReply("Address book is empty.")
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return infoReply("%s", strings.Join(lines, "\n"))
}

func runAddBirthday(d *Dispatcher, args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if err := r.SetBirthday(args[1]); err != nil {
		return Reply{}, err
	}
	return okReply("Birthday was added.")
}

func runShowBirthday(d *Dispatcher, args []string) (Reply, error) {
	r, err := d.book.Find(args[0])
	if err != nil {
		return Reply{}, err
	}
	if r.Birthday.IsZero() {
		return infoReply("No birthday on record.")
	}
	return infoReply("%s", r.Birthday)
}

func runBirthdays(d *Dispatcher, _ []string) (Reply, error) {
	greetings := d.book.UpcomingBirthdays(d.now())
	if len(greetings) == 0 {
		return infoReply("No birthdays in the next %d days.", d.book.Window())
	}
	lines := make([]string, len(greetings))
	for i, g := range greetings {
		lines[i] = fmt.Sprintf("%s: %s", g.Name, g.DateString())
	}
	return infoReply("%s", strings.Join(lines, "\n"))
}

func runHelp(d *Dispatcher, _ []string) (Reply, error) {
	return infoReply("%s", d.help)
}

func runExit(*Dispatcher, []string) (Reply, error) {
	return Reply{Text: "Good bye!", Kind: KindInfo, Quit: true}, nil
}
