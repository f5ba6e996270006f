// Package contact defines the validated fields of a contact and the Record
// that groups them.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for field validation and phone operations.
var (
	ErrEmptyName       = errors.New("contact: name cannot be empty")
	ErrInvalidPhone    = errors.New("contact: phone must contain exactly 10 digits")
	ErrInvalidBirthday = errors.New("contact: birthday must be a valid DD.MM.YYYY date")
	ErrPhoneNotFound   = errors.New("contact: phone not found")
	ErrDuplicatePhone  = errors.New("contact: phone already on record")
)

// BirthdayLayout is the accepted input and display layout for birthdays.
// Single-digit day and month are accepted on input.
const BirthdayLayout = "02.01.2006"

const birthdayParseLayout = "2.1.2006"

// PhoneDigits is the exact number of digits a phone must have.
const PhoneDigits = 10

var digitRun = regexp.MustCompile(`\d+`)

// Name is the unique key of a contact.
type Name string

// ParseName trims surrounding whitespace and rejects empty names.
func ParseName(raw string) (Name, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyName
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a 10-digit phone number. The zero value is an absent phone.
type Phone struct {
	digits string
}

// ParsePhone scans raw for runs of digits. It succeeds only when there is
// exactly one run and it is PhoneDigits long; "050 123 4567" has three runs
// and is rejected.
func ParsePhone(raw string) (Phone, error) {
	runs := digitRun.FindAllString(raw, -1)
	if len(runs) != 1 || len(runs[0]) != PhoneDigits {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return Phone{digits: runs[0]}, nil
}

// IsZero reports whether p is absent.
func (p Phone) IsZero() bool { return p.digits == "" }

func (p Phone) String() string { return p.digits }

// Birthday is a calendar date. The zero value is an absent birthday.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses raw as DD.MM.YYYY.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(birthdayParseLayout, strings.TrimSpace(raw))
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
	}
	return Birthday{date: t}, nil
}

// NewBirthday builds a Birthday from date components. Out-of-range days such
// as 31 February are rejected rather than normalized.
func NewBirthday(year int, month time.Month, day int) (Birthday, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Birthday{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidBirthday, year, month, day)
	}
	return Birthday{date: t}, nil
}

// IsZero reports whether b is absent.
func (b Birthday) IsZero() bool { return b.date.IsZero() }

// Month returns the birthday month.
func (b Birthday) Month() time.Month { return b.date.Month() }

// Day returns the day of month.
func (b Birthday) Day() int { return b.date.Day() }

// Date returns the full birth date (UTC midnight).
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string {
	if b.IsZero() {
		return ""
	}
	return b.date.Format(BirthdayLayout)
}
