package book

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/contactbook/internal/contact"
)

func mustRecord(t *testing.T, name, phone, bday string) *contact.Record {
	t.Helper()
	r, err := contact.NewRecord(name)
	if err != nil {
		t.Fatal(err)
	}
	if phone != "" {
		if err := r.AddPhone(phone); err != nil {
			t.Fatal(err)
		}
	}
	if bday != "" {
		if err := r.SetBirthday(bday); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestAddressBook_AddFind(t *testing.T) {
	// Given a book with one contact
	b := New()
	b.Add(mustRecord(t, "John", "0501234567", ""))

	// When it is looked up by exact name
	r, err := b.Find("John")

	// Then the record is returned
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if r.Name != "John" {
		t.Errorf("Name = %q, want %q", r.Name, "John")
	}

	// And lookup is case sensitive
	if _, err := b.Find("john"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(john) error = %v, want ErrNotFound", err)
	}
}

func TestAddressBook_AddReplacesSameName(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "John", "0501234567", ""))
	b.Add(mustRecord(t, "John", "0671112233", ""))

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	r, _ := b.Find("John")
	if got := r.PhoneList(","); got != "0671112233" {
		t.Errorf("phones = %q, want replacement record", got)
	}
}

func TestAddressBook_Delete(t *testing.T) {
	b := New()
	b.Add(mustRecord(t, "John", "", ""))

	if err := b.Delete("John"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", b.Len())
	}
	if err := b.Delete("John"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestAddressBook_RecordsSorted(t *testing.T) {
	b := New()
	for _, n := range []string{"Carol", "alice", "Bob"} {
		b.Add(mustRecord(t, n, "", ""))
	}

	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name.String())
	}

	if diff := cmp.Diff([]string{"Bob", "Carol", "alice"}, names); diff != "" {
		t.Errorf("Records() order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressBook_UpcomingBirthdays(t *testing.T) {
	// Given contacts with and without birthdays, today Wednesday 2024-01-10
	b := New()
	b.Add(mustRecord(t, "Mid", "", "15.01.1990"))
	b.Add(mustRecord(t, "Sat", "", "13.01.1990"))
	b.Add(mustRecord(t, "None", "0501234567", ""))
	b.Add(mustRecord(t, "Later", "", "25.01.1990"))
	today := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	// When upcoming birthdays are requested
	got := b.UpcomingBirthdays(today)

	// Then the in-window contacts are listed with weekend roll-forward
	var pairs [][2]string
	for _, g := range got {
		pairs = append(pairs, [2]string{g.Name, g.DateString()})
	}
	want := [][2]string{{"Mid", "2024.01.15"}, {"Sat", "2024.01.15"}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("UpcomingBirthdays() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddressBook_WithWindow(t *testing.T) {
	b := New(WithWindow(30))
	b.Add(mustRecord(t, "Later", "", "25.01.1990"))

	got := b.UpcomingBirthdays(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	if len(got) != 1 {
		t.Fatalf("UpcomingBirthdays() len = %d, want 1", len(got))
	}
	if b.Window() != 30 {
		t.Errorf("Window() = %d, want 30", b.Window())
	}
	if New(WithWindow(0)).Window() != 7 {
		t.Error("WithWindow(0) should keep the default window")
	}
}
