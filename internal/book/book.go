// Package book holds the contact collection keyed by name.
package book

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/smileynet/contactbook/internal/birthday"
	"github.com/smileynet/contactbook/internal/contact"
)

// ErrNotFound indicates no record exists for a name.
var ErrNotFound = errors.New("book: contact not found")

// AddressBook maps contact names to records. Names are unique.
type AddressBook struct {
	records map[contact.Name]*contact.Record
	window  int
}

// Option configures an AddressBook.
type Option func(*AddressBook)

// WithWindow sets how many days ahead UpcomingBirthdays looks.
// Non-positive values keep birthday.DefaultWindow.
func WithWindow(days int) Option {
	return func(b *AddressBook) {
		if days > 0 {
			b.window = days
		}
	}
}

// New creates an empty AddressBook.
func New(opts ...Option) *AddressBook {
	b := &AddressBook{
		records: make(map[contact.Name]*contact.Record),
		window:  birthday.DefaultWindow,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Add stores r under its name, replacing any record with the same name.
func (b *AddressBook) Add(r *contact.Record) {
	b.records[r.Name] = r
}

// Find returns the record for an exact name match.
func (b *AddressBook) Find(name string) (*contact.Record, error) {
	r, ok := b.records[contact.Name(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}

// Delete removes the record for name.
func (b *AddressBook) Delete(name string) error {
	key := contact.Name(name)
	if _, ok := b.records[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(b.records, key)
	return nil
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Window returns the birthday look-ahead in days.
func (b *AddressBook) Window() int { return b.window }

// Records returns all records sorted by name.
func (b *AddressBook) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(x, y *contact.Record) int {
		return cmp.Compare(x.Name, y.Name)
	})
	return out
}

// UpcomingBirthdays lists who to congratulate within the book's window after today.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []birthday.Greeting {
	entries := make([]birthday.Entry, 0, len(b.records))
	for _, r := range b.records {
		entries = append(entries, birthday.Entry{Name: r.Name.String(), Birthday: r.Birthday})
	}
	return birthday.Upcoming(today, b.window, entries)
}
